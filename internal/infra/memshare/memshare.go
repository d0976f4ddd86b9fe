package memshare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/models"
)

var _ infra.RemoteStore = (*MemShare)(nil)

// MemShare хранит файлы шары в памяти. Используется в тестах и в режиме
// DRY_RUN, когда SMB сервер недоступен.
type MemShare struct {
	logger *zap.Logger
	files  map[string][]byte
	dirs   map[string]bool
	mu     sync.RWMutex

	connected   bool
	failConnect bool
	failList    bool
}

func New(log *zap.Logger) *MemShare {
	return &MemShare{
		logger: log,
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
	}
}

func (s *MemShare) Connect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failConnect {
		return ErrConnectTimeout
	}

	s.connected = true
	s.logger.Info("соединение с шарой в памяти установлено")

	return nil
}

func (s *MemShare) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	return nil
}

func (s *MemShare) Upload(ctx context.Context, localPath string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileReadFailed, err)
	}

	name := filepath.Base(localPath)
	s.files[name] = data
	s.logger.Info("файл сохранен на шаре в памяти", zap.String("name", name))

	return nil
}

func (s *MemShare) VerifyPresence(ctx context.Context, name string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return false, ErrNotConnected
	}
	if s.failList {
		return false, ErrListFailed
	}

	_, exists := s.files[name]
	return exists, nil
}

func (s *MemShare) EvictExpired(ctx context.Context, retentionDays int) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return 0, ErrNotConnected
	}
	if s.failList {
		return 0, ErrListFailed
	}

	cutoff := models.RetentionCutoff(time.Now(), retentionDays)

	deleted := 0
	for name := range s.files {
		if s.dirs[name] {
			continue
		}

		date, err := models.ParseArchiveDate(name)
		if err != nil {
			s.logger.Warn("имя файла на шаре не содержит даты, файл пропущен",
				zap.String("name", name),
			)
			continue
		}

		if date.Before(cutoff) {
			delete(s.files, name)
			deleted++
			s.logger.Info("устаревший файл удален с шары в памяти", zap.String("name", name))
		}
	}

	return deleted, nil
}

// Put кладет файл напрямую на шару, минуя Upload.
func (s *MemShare) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[name] = data
}

// PutDir добавляет запись-каталог, которую ротация должна пропускать.
func (s *MemShare) PutDir(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[name] = nil
	s.dirs[name] = true
}

func (s *MemShare) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.files[name]
	return exists
}

func (s *MemShare) SetFailConnect(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failConnect = fail
}

func (s *MemShare) SetFailList(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failList = fail
}
