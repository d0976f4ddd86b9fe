package models

import (
	"strings"
	"time"
)

// ArchiveNameLayout задает порядок год-день-месяц, как в именах уже
// лежащих на шаре архивов.
const (
	ArchiveNameLayout = "20060201"
	ArchiveExt        = ".tgz"
	RetainedCopyName  = "prev_dump.sql"
)

func ArchiveName(date time.Time) string {
	return date.Format(ArchiveNameLayout) + ArchiveExt
}

func ParseArchiveDate(name string) (time.Time, error) {
	return time.Parse(ArchiveNameLayout, strings.TrimSuffix(name, ArchiveExt))
}

// RetentionCutoff возвращает границу хранения: файлы строго старше нее
// подлежат удалению, файл ровно на границе остается.
func RetentionCutoff(now time.Time, retentionDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -retentionDays)
}
