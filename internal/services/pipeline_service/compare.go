package pipeline_service

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/models"
)

// hasChanged сравнивает содержимое извлеченного файла с предыдущей копией.
// Сравнение идет только по содержимому, размер и mtime не учитываются.
func (s *pipelineService) hasChanged(extracted string) (bool, error) {
	prev := filepath.Join(s.cfg.WorkDir, models.RetainedCopyName)

	if _, err := os.Stat(prev); err != nil {
		if os.IsNotExist(err) {
			s.rec.Info(models.StageCompare, "нет предыдущего файла для сравнения")
			return true, nil
		}
		return false, fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}

	prevSum, err := fingerprintFile(prev)
	if err != nil {
		return false, err
	}

	currSum, err := fingerprintFile(extracted)
	if err != nil {
		return false, err
	}

	if prevSum == currSum {
		s.rec.Warning(models.StageCompare, "файл совпадает с предыдущей версией")
		s.rec.Warning(models.StageArchive, "сборка архива пропущена (та же версия)")

		if err := os.Remove(extracted); err != nil {
			s.logger.Warn("не удалось удалить извлеченный файл", zap.Error(err))
		}

		return false, nil
	}

	s.rec.Info(models.StageCompare, "файл отличается от предыдущей версии")
	return true, nil
}
