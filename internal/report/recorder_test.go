package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sunr3d/smb-archiver/models"
)

func TestRecorder_Order(t *testing.T) {
	rec := NewRecorder(zaptest.NewLogger(t), "run-1")

	rec.Info(models.StageFetch, "первое")
	rec.Warning(models.StageCompare, "второе")
	rec.Error(models.StageUpload, "третье")

	events := rec.Events()
	require.Len(t, events, 3)
	assert.Equal(t, models.SeverityInfo, events[0].Severity)
	assert.Equal(t, "первое", events[0].Message)
	assert.Equal(t, models.SeverityWarning, events[1].Severity)
	assert.Equal(t, models.SeverityError, events[2].Severity)
	assert.Equal(t, models.StageUpload, events[2].Stage)
}

func TestRecorder_Counters(t *testing.T) {
	rec := NewRecorder(zaptest.NewLogger(t), "run-1")

	rec.Info(models.StageFetch, "ок")
	rec.Warning(models.StageCompare, "раз")
	rec.Warning(models.StageCompare, "два")
	rec.Error(models.StageUpload, "ошибка")

	assert.Equal(t, 2, rec.Warnings())
	assert.Equal(t, 1, rec.Errors())
}

func TestRecorder_Report(t *testing.T) {
	rec := NewRecorder(zaptest.NewLogger(t), "run-1")
	rec.Error(models.StageFetch, "ошибка")

	date := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	rep := rec.Report(date)

	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, date, rep.Date)
	assert.Equal(t, 1, rep.Errors)
	require.Len(t, rep.Events, 1)

	// отчет держит копию, дальнейшие события его не меняют
	rec.Info(models.StageRetention, "еще")
	assert.Len(t, rep.Events, 1)
}
