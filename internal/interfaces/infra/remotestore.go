package infra

import "context"

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=RemoteStore --output=../../../mocks
type RemoteStore interface {
	Connect(ctx context.Context) error
	Upload(ctx context.Context, localPath string) error
	VerifyPresence(ctx context.Context, name string) (bool, error)
	EvictExpired(ctx context.Context, retentionDays int) (int, error)
	Disconnect() error
}
