package report

import (
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/models"
)

// Recorder накапливает события прогона в порядке их появления и
// дублирует их в лог.
type Recorder struct {
	logger   *zap.Logger
	runID    string
	events   []models.StatusEvent
	warnings int
	errors   int
}

func NewRecorder(log *zap.Logger, runID string) *Recorder {
	return &Recorder{
		logger: log,
		runID:  runID,
		events: make([]models.StatusEvent, 0, 16),
	}
}

func (r *Recorder) Info(stage, message string) {
	r.append(models.SeverityInfo, stage, message)
	r.logger.Info(message, zap.String("stage", stage))
}

func (r *Recorder) Warning(stage, message string) {
	r.warnings++
	r.append(models.SeverityWarning, stage, message)
	r.logger.Warn(message, zap.String("stage", stage))
}

func (r *Recorder) Error(stage, message string) {
	r.errors++
	r.append(models.SeverityError, stage, message)
	r.logger.Error(message, zap.String("stage", stage))
}

func (r *Recorder) Events() []models.StatusEvent {
	out := make([]models.StatusEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Errors() int {
	return r.errors
}

func (r *Recorder) Warnings() int {
	return r.warnings
}

func (r *Recorder) Report(date time.Time) models.Report {
	return models.Report{
		RunID:    r.runID,
		Date:     date,
		Events:   r.Events(),
		Warnings: r.warnings,
		Errors:   r.errors,
	}
}

func (r *Recorder) append(severity models.Severity, stage, message string) {
	r.events = append(r.events, models.StatusEvent{
		Severity: severity,
		Stage:    stage,
		Message:  message,
	})
}
