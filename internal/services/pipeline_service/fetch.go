package pipeline_service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sunr3d/smb-archiver/models"
)

// downloadExtract скачивает zip архив и извлекает из него файл дампа в
// рабочую директорию. Любая ошибка здесь фатальна для прогона: без файла
// архивировать нечего.
func (s *pipelineService) downloadExtract(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ZipURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadURL, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: HTTP статус %d", ErrDownloadFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadZip, err)
	}

	var member *zip.File
	for _, f := range reader.File {
		if f.Name == s.cfg.DumpFile {
			member = f
			break
		}
	}
	if member == nil {
		return "", fmt.Errorf("%w: %s", ErrMemberNotFound, s.cfg.DumpFile)
	}
	s.rec.Info(models.StageFetch, "zip архив содержит файл дампа")

	dst := filepath.Join(s.cfg.WorkDir, s.cfg.DumpFile)
	if err := extractMember(member, dst); err != nil {
		return "", err
	}
	s.rec.Info(models.StageFetch, "файл дампа извлечен из zip архива")

	return dst, nil
}

// extractMember пишет содержимое записи архива в dst; при ошибке частично
// записанный файл удаляется.
func extractMember(member *zip.File, dst string) error {
	src, err := member.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	return nil
}
