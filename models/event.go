package models

import "time"

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

const (
	StageConfig    = "чтение конфигурации"
	StageFetch     = "загрузка дампа"
	StageCompare   = "сравнение версий"
	StageArchive   = "сборка архива"
	StageUpload    = "отправка на SMB"
	StageVerify    = "проверка загрузки"
	StageRetention = "ротация на сервере"
)

type StatusEvent struct {
	Severity Severity `json:"severity"`
	Stage    string   `json:"stage"`
	Message  string   `json:"message"`
}

type Report struct {
	RunID    string        `json:"run_id"`
	Date     time.Time     `json:"date"`
	Events   []StatusEvent `json:"events"`
	Warnings int           `json:"warnings"`
	Errors   int           `json:"errors"`
}
