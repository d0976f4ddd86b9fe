package smbshare

import "errors"

var (
	ErrContextDone    = errors.New("отмена контекста")
	ErrNotConnected   = errors.New("нет соединения с SMB шарой")
	ErrConnectTimeout = errors.New("не удалось подключиться к SMB шаре")
	ErrMountFailed    = errors.New("не удалось примонтировать SMB шару")
	ErrUploadFailed   = errors.New("не удалось отправить файл на SMB шару")
	ErrListFailed     = errors.New("не удалось получить список файлов на SMB шаре")
	ErrRemoveFailed   = errors.New("не удалось удалить файл с SMB шары")
)
