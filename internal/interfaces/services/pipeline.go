package services

import (
	"context"

	"github.com/sunr3d/smb-archiver/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=Pipeline --output=../../../mocks
type Pipeline interface {
	Run(ctx context.Context) models.Report
}
