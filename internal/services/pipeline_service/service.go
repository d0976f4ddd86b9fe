package pipeline_service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/internal/interfaces/services"
	"github.com/sunr3d/smb-archiver/internal/report"
	"github.com/sunr3d/smb-archiver/models"
)

var _ services.Pipeline = (*pipelineService)(nil)

type pipelineService struct {
	logger     *zap.Logger
	cfg        *config.Config
	store      infra.RemoteStore
	rec        *report.Recorder
	httpClient *http.Client
	now        func() time.Time
}

func New(log *zap.Logger, cfg *config.Config, store infra.RemoteStore, rec *report.Recorder) services.Pipeline {
	return &pipelineService{
		logger:     log,
		cfg:        cfg,
		store:      store,
		rec:        rec,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		now:        time.Now,
	}
}

// Run выполняет один прогон конвейера. Любая ошибка превращается в событие
// отчета, прогон всегда доходит до конца и возвращает отчет ровно один раз.
func (s *pipelineService) Run(ctx context.Context) models.Report {
	extracted, err := s.downloadExtract(ctx)
	if err != nil {
		s.rec.Error(models.StageFetch, err.Error())
		s.sweepOnly(ctx)
		return s.finish()
	}

	changed, err := s.hasChanged(extracted)
	if err != nil {
		s.rec.Error(models.StageCompare, err.Error())
		s.sweepOnly(ctx)
		return s.finish()
	}

	if !changed {
		s.sweepOnly(ctx)
		return s.finish()
	}

	archivePath, err := s.buildArchive(extracted, s.now())
	s.rotate(extracted, err == nil)
	if err != nil {
		s.rec.Error(models.StageArchive, err.Error())
		s.sweepOnly(ctx)
		return s.finish()
	}

	s.transferAndSweep(ctx, archivePath)
	s.removeLocal(archivePath)

	return s.finish()
}

// transferAndSweep отправляет архив на шару, проверяет его наличие и
// запускает ротацию. Ошибки соединения не прерывают прогон.
func (s *pipelineService) transferAndSweep(ctx context.Context, archivePath string) {
	if err := s.store.Connect(ctx); err != nil {
		s.rec.Error(models.StageUpload, "не удалось подключиться к шаре: "+err.Error())
		return
	}
	defer s.store.Disconnect()

	if err := s.store.Upload(ctx, archivePath); err != nil {
		s.rec.Error(models.StageUpload, err.Error())
	} else {
		s.rec.Info(models.StageUpload, "архив отправлен на шару")
	}

	name := filepath.Base(archivePath)
	present, err := s.store.VerifyPresence(ctx, name)
	switch {
	case err != nil:
		s.rec.Error(models.StageVerify, err.Error())
	case !present:
		s.rec.Error(models.StageVerify, "архив не найден на шаре, загрузка не удалась")
	default:
		s.rec.Info(models.StageVerify, "архив найден на шаре, загрузка успешна")
	}

	s.evict(ctx)
}

// sweepOnly выполняет ротацию без загрузки: даже если архивировать нечего
// или не удалось, устаревшие файлы на шаре надо подчистить.
func (s *pipelineService) sweepOnly(ctx context.Context) {
	if err := s.store.Connect(ctx); err != nil {
		s.rec.Error(models.StageRetention, "не удалось подключиться к шаре: "+err.Error())
		return
	}
	defer s.store.Disconnect()

	s.evict(ctx)
}

func (s *pipelineService) evict(ctx context.Context) {
	deleted, err := s.store.EvictExpired(ctx, s.cfg.RetentionDays)
	if err != nil {
		s.rec.Error(models.StageRetention, err.Error())
		return
	}

	s.rec.Info(models.StageRetention, fmt.Sprintf("удалено файлов с шары: %d", deleted))
}

func (s *pipelineService) removeLocal(archivePath string) {
	if _, err := os.Stat(archivePath); err != nil {
		return
	}
	if err := os.Remove(archivePath); err != nil {
		s.logger.Warn("не удалось удалить локальный архив", zap.Error(err))
	}
}

func (s *pipelineService) finish() models.Report {
	rep := s.rec.Report(s.now())
	s.logger.Info("прогон завершен",
		zap.String("run_id", rep.RunID),
		zap.Int("errors", rep.Errors),
		zap.Int("warnings", rep.Warnings),
	)

	return rep
}
