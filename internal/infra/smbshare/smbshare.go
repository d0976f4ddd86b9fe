package smbshare

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"
	"go.uber.org/zap"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/interfaces/infra"
	"github.com/sunr3d/smb-archiver/models"
)

var _ infra.RemoteStore = (*smbShare)(nil)

type smbShare struct {
	logger *zap.Logger
	cfg    *config.Config

	conn    net.Conn
	session *smb2.Session
	share   *smb2.Share
}

func New(log *zap.Logger, cfg *config.Config) infra.RemoteStore {
	return &smbShare{
		logger: log,
		cfg:    cfg,
	}
}

func (s *smbShare) Connect(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	addr := net.JoinHostPort(s.cfg.SMBHost, strconv.Itoa(s.cfg.SMBPort))

	conn, err := net.DialTimeout("tcp", addr, s.cfg.SMBTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectTimeout, err)
	}

	dialer := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     s.cfg.SMBUser,
			Password: s.cfg.SMBPassword,
		},
	}

	session, err := dialer.DialContext(ctx, conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %v", ErrConnectTimeout, err)
	}

	share, err := session.Mount(s.cfg.SMBShare)
	if err != nil {
		session.Logoff()
		conn.Close()
		return fmt.Errorf("%w: %v", ErrMountFailed, err)
	}

	s.conn = conn
	s.session = session
	s.share = share
	s.logger.Info("соединение с SMB шарой установлено",
		zap.String("host", s.cfg.SMBHost),
		zap.String("share", s.cfg.SMBShare),
	)

	return nil
}

func (s *smbShare) Disconnect() error {
	if s.share != nil {
		if err := s.share.Umount(); err != nil {
			s.logger.Warn("не удалось отмонтировать SMB шару", zap.Error(err))
		}
		s.share = nil
	}
	if s.session != nil {
		if err := s.session.Logoff(); err != nil {
			s.logger.Warn("не удалось завершить SMB сессию", zap.Error(err))
		}
		s.session = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}

	return nil
}

func (s *smbShare) Upload(ctx context.Context, localPath string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if s.share == nil {
		return ErrNotConnected
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer src.Close()

	name := filepath.Base(localPath)

	dst, err := s.share.Create(s.remotePath(name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	s.logger.Info("файл отправлен на SMB шару", zap.String("name", name))

	return nil
}

func (s *smbShare) VerifyPresence(ctx context.Context, name string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if s.share == nil {
		return false, ErrNotConnected
	}

	entries, err := s.share.ReadDir(s.remoteDir())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrListFailed, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == name {
			return true, nil
		}
	}

	return false, nil
}

func (s *smbShare) EvictExpired(ctx context.Context, retentionDays int) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if s.share == nil {
		return 0, ErrNotConnected
	}

	entries, err := s.share.ReadDir(s.remoteDir())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrListFailed, err)
	}

	cutoff := models.RetentionCutoff(time.Now(), retentionDays)

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		date, err := models.ParseArchiveDate(entry.Name())
		if err != nil {
			s.logger.Warn("имя файла на шаре не содержит даты, файл пропущен",
				zap.String("name", entry.Name()),
			)
			continue
		}

		if !date.Before(cutoff) {
			continue
		}

		if err := s.share.Remove(s.remotePath(entry.Name())); err != nil {
			return deleted, fmt.Errorf("%w: %v", ErrRemoveFailed, err)
		}
		deleted++
		s.logger.Info("устаревший файл удален с SMB шары", zap.String("name", entry.Name()))
	}

	return deleted, nil
}

func (s *smbShare) remoteDir() string {
	dir := strings.TrimSuffix(s.cfg.SMBPath, "/")
	if dir == "" {
		return "."
	}
	return dir
}

func (s *smbShare) remotePath(name string) string {
	return path.Join(s.remoteDir(), name)
}
