package entrypoint

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/infra/memshare"
	"github.com/sunr3d/smb-archiver/internal/infra/smbshare"
	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/internal/notify/email"
	"github.com/sunr3d/smb-archiver/internal/notify/mattermost"
	"github.com/sunr3d/smb-archiver/internal/report"
	"github.com/sunr3d/smb-archiver/internal/services/pipeline_service"
	"github.com/sunr3d/smb-archiver/models"
)

// Run выполняет один прогон конвейера и рассылает итоговый отчет.
// Ошибки отдельных этапов не прерывают прогон, отчет уходит всегда.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	logger := log.With(zap.String("run_id", runID))
	rec := report.NewRecorder(logger, runID)

	errs, warns := cfg.Validate()
	for _, w := range warns {
		rec.Warning(models.StageConfig, w)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			rec.Error(models.StageConfig, e.Error())
		}
		logger.Error("конфигурация неполная, прогон не выполнен")
		sendReport(ctx, logger, cfg, rec.Report(time.Now()))
		return nil
	}

	var store infra.RemoteStore
	if cfg.DryRun {
		logger.Info("включен режим DRY_RUN, вместо SMB используется шара в памяти")
		store = memshare.New(logger)
	} else {
		store = smbshare.New(logger, cfg)
	}

	svc := pipeline_service.New(logger, cfg, store, rec)
	rep := svc.Run(ctx)

	sendReport(ctx, logger, cfg, rep)

	return nil
}

func sendReport(ctx context.Context, log *zap.Logger, cfg *config.Config, rep models.Report) {
	notifiers := make([]infra.Notifier, 0, 2)

	if cfg.SendEmail {
		if cfg.EmailHost == "" || cfg.EmailFrom == "" || len(cfg.EmailTo) == 0 {
			log.Warn("почтовый канал не настроен, письмо не будет отправлено")
		} else {
			notifiers = append(notifiers, email.New(log, cfg))
		}
	}

	if cfg.MattermostWebhook != "" {
		notifiers = append(notifiers, mattermost.New(log, cfg))
	}

	for _, n := range notifiers {
		if err := n.Send(ctx, rep); err != nil {
			log.Warn("не удалось отправить отчет", zap.Error(err))
		}
	}
}
