package pipeline_service

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/models"
)

// buildArchive упаковывает извлеченный файл в tar.gz с именем по дате
// прогона. Повторный запуск в тот же день перезаписывает архив.
func (s *pipelineService) buildArchive(extracted string, date time.Time) (string, error) {
	name := models.ArchiveName(date)
	archivePath := filepath.Join(s.cfg.WorkDir, name)

	if err := s.writeTarGz(archivePath, extracted); err != nil {
		os.Remove(archivePath)
		return "", err
	}

	s.rec.Info(models.StageArchive, fmt.Sprintf("архив %s собран", name))
	return archivePath, nil
}

func (s *pipelineService) writeTarGz(archivePath, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	header, err := tar.FileInfoHeader(info, "")
	if err == nil {
		header.Name = filepath.Base(srcPath)
		if err = tw.WriteHeader(header); err == nil {
			_, err = io.Copy(tw, src)
		}
	}

	if closeErr := tw.Close(); err == nil {
		err = closeErr
	}
	if closeErr := gw.Close(); err == nil {
		err = closeErr
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveBuild, err)
	}

	return nil
}

// rotate заменяет предыдущую копию текущим файлом, чтобы следующий прогон
// сравнивался уже с этой версией. По умолчанию ротация выполняется и после
// неудачной сборки архива (поведение настраивается через ROTATE_ON_FAILURE).
func (s *pipelineService) rotate(extracted string, archived bool) {
	if !archived && !s.cfg.RotateOnFailure {
		s.rec.Warning(models.StageArchive, "ротация предыдущей копии пропущена после неудачной сборки архива")
		return
	}

	prev := filepath.Join(s.cfg.WorkDir, models.RetainedCopyName)

	if _, err := os.Stat(prev); err == nil {
		if err := os.Remove(prev); err != nil {
			s.logger.Warn("не удалось удалить предыдущую копию", zap.Error(err))
		}
	}

	if _, err := os.Stat(extracted); err == nil {
		if err := os.Rename(extracted, prev); err != nil {
			s.rec.Error(models.StageArchive, "не удалось обновить предыдущую копию: "+err.Error())
		}
	}
}
