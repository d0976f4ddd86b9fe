package memshare

import "errors"

var (
	ErrContextDone    = errors.New("отмена контекста")
	ErrNotConnected   = errors.New("нет соединения с шарой")
	ErrConnectTimeout = errors.New("не удалось подключиться к шаре")
	ErrListFailed     = errors.New("не удалось получить список файлов")
	ErrFileReadFailed = errors.New("не удалось прочитать локальный файл")
)
