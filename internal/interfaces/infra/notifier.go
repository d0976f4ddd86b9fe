package infra

import (
	"context"

	"github.com/sunr3d/smb-archiver/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=Notifier --output=../../../mocks
type Notifier interface {
	Send(ctx context.Context, report models.Report) error
}
