package pipeline_service

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunr3d/smb-archiver/models"
)

func readTarGz(t *testing.T, path string) (string, []byte) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	tr := tar.NewReader(gr)
	header, err := tr.Next()
	require.NoError(t, err)

	content, err := io.ReadAll(tr)
	require.NoError(t, err)

	_, err = tr.Next()
	require.ErrorIs(t, err, io.EOF)

	return header.Name, content
}

func TestBuildArchive(t *testing.T) {
	svc, _ := setupTestService(t)
	dump := []byte("SELECT * FROM users;")
	src := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	require.NoError(t, os.WriteFile(src, dump, 0644))

	date := time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)
	archivePath, err := svc.buildArchive(src, date)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.cfg.WorkDir, "20240903.tgz"), archivePath)

	name, content := readTarGz(t, archivePath)
	assert.Equal(t, "dump.sql", name)
	assert.Equal(t, dump, content)
}

func TestBuildArchive_SameDayOverwrite(t *testing.T) {
	svc, _ := setupTestService(t)
	src := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	date := time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)

	require.NoError(t, os.WriteFile(src, []byte("версия 1"), 0644))
	first, err := svc.buildArchive(src, date)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("версия 2"), 0644))
	second, err := svc.buildArchive(src, date)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	_, content := readTarGz(t, second)
	assert.Equal(t, []byte("версия 2"), content)
}

func TestBuildArchive_MissingSource(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.buildArchive(filepath.Join(svc.cfg.WorkDir, "нет.sql"), time.Now())

	assert.ErrorIs(t, err, ErrArchiveBuild)

	// частично записанный архив не остается
	_, statErr := os.Stat(filepath.Join(svc.cfg.WorkDir, models.ArchiveName(time.Now())))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRotate_Success(t *testing.T) {
	svc, _ := setupTestService(t)
	prev := filepath.Join(svc.cfg.WorkDir, models.RetainedCopyName)
	extracted := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	require.NoError(t, os.WriteFile(prev, []byte("старая"), 0644))
	require.NoError(t, os.WriteFile(extracted, []byte("новая"), 0644))

	svc.rotate(extracted, true)

	content, err := os.ReadFile(prev)
	require.NoError(t, err)
	assert.Equal(t, []byte("новая"), content)

	_, err = os.Stat(extracted)
	assert.True(t, os.IsNotExist(err))
}

// исходное поведение: копия обновляется даже после неудачной сборки архива
func TestRotate_FailureDefault(t *testing.T) {
	svc, _ := setupTestService(t)
	prev := filepath.Join(svc.cfg.WorkDir, models.RetainedCopyName)
	extracted := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	require.NoError(t, os.WriteFile(prev, []byte("старая"), 0644))
	require.NoError(t, os.WriteFile(extracted, []byte("новая"), 0644))

	svc.rotate(extracted, false)

	content, err := os.ReadFile(prev)
	require.NoError(t, err)
	assert.Equal(t, []byte("новая"), content)
}

func TestRotate_FailureToggledOff(t *testing.T) {
	svc, _ := setupTestService(t)
	svc.cfg.RotateOnFailure = false
	prev := filepath.Join(svc.cfg.WorkDir, models.RetainedCopyName)
	extracted := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	require.NoError(t, os.WriteFile(prev, []byte("старая"), 0644))
	require.NoError(t, os.WriteFile(extracted, []byte("новая"), 0644))

	svc.rotate(extracted, false)

	content, err := os.ReadFile(prev)
	require.NoError(t, err)
	assert.Equal(t, []byte("старая"), content)

	_, err = os.Stat(extracted)
	assert.NoError(t, err)
}

func TestRotate_FirstRunNoPrev(t *testing.T) {
	svc, _ := setupTestService(t)
	extracted := filepath.Join(svc.cfg.WorkDir, "dump.sql")
	require.NoError(t, os.WriteFile(extracted, []byte("новая"), 0644))

	svc.rotate(extracted, true)

	content, err := os.ReadFile(filepath.Join(svc.cfg.WorkDir, models.RetainedCopyName))
	require.NoError(t, err)
	assert.Equal(t, []byte("новая"), content)
}
