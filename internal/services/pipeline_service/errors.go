package pipeline_service

import "errors"

var (
	ErrBadURL         = errors.New("некорректный URL zip архива")
	ErrDownloadFailed = errors.New("не удалось загрузить zip архив")
	ErrBadZip         = errors.New("поврежденный zip архив")
	ErrMemberNotFound = errors.New("zip архив не содержит файла дампа")
	ErrExtractFailed  = errors.New("не удалось извлечь файл дампа")

	ErrFileOpenFailed = errors.New("не удалось открыть файл")
	ErrFileReadFailed = errors.New("не удалось прочитать файл")

	ErrArchiveBuild = errors.New("не удалось собрать tar архив")
)
