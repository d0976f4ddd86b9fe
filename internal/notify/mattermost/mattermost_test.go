package mattermost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/models"
)

func testReport(errors int) models.Report {
	return models.Report{
		RunID: "test-run",
		Date:  time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		Events: []models.StatusEvent{
			{Severity: models.SeverityInfo, Stage: models.StageFetch, Message: "файл дампа извлечен"},
			{Severity: models.SeverityError, Stage: models.StageUpload, Message: "нет соединения"},
		},
		Errors: errors,
	}
}

func TestSend_PostsTable(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	cfg := &config.Config{MattermostWebhook: srv.URL, NotifyMode: config.NotifyAlways}
	n := New(zaptest.NewLogger(t), cfg)

	require.NoError(t, n.Send(context.Background(), testReport(1)))

	assert.NotEmpty(t, got.IconURL)
	assert.Contains(t, got.Text, "Отчет архивации за 01.06.2024")
	assert.Contains(t, got.Text, ":white_check_mark:")
	assert.Contains(t, got.Text, ":x:")
	assert.Contains(t, got.Text, models.StageUpload)
}

func TestSend_ErrorModeGating(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := &config.Config{MattermostWebhook: srv.URL, NotifyMode: config.NotifyOnError}
	n := New(zaptest.NewLogger(t), cfg)
	ctx := context.Background()

	require.NoError(t, n.Send(ctx, testReport(0)))
	assert.Equal(t, int32(0), calls.Load())

	require.NoError(t, n.Send(ctx, testReport(2)))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSend_NeverMode(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := &config.Config{MattermostWebhook: srv.URL, NotifyMode: config.NotifyNever}
	n := New(zaptest.NewLogger(t), cfg)

	require.NoError(t, n.Send(context.Background(), testReport(3)))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := &config.Config{MattermostWebhook: srv.URL, NotifyMode: config.NotifyAlways}
	n := New(zaptest.NewLogger(t), cfg)

	err := n.Send(context.Background(), testReport(0))

	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSend_NoWebhook(t *testing.T) {
	cfg := &config.Config{NotifyMode: config.NotifyAlways}
	n := New(zaptest.NewLogger(t), cfg)

	err := n.Send(context.Background(), testReport(0))

	assert.ErrorIs(t, err, ErrNoWebhook)
}
