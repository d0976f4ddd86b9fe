package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	date := time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "20240903.tgz", ArchiveName(date))
	assert.Equal(t, ArchiveName(date), ArchiveName(date.Add(5*time.Hour)))
}

func TestParseArchiveDate(t *testing.T) {
	date, err := ParseArchiveDate("20241012.tgz")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC), date)
}

func TestParseArchiveDate_RoundTrip(t *testing.T) {
	orig := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	date, err := ParseArchiveDate(ArchiveName(orig))

	require.NoError(t, err)
	assert.Equal(t, orig, date)
}

func TestParseArchiveDate_BadName(t *testing.T) {
	_, err := ParseArchiveDate("notes.txt")
	assert.Error(t, err)

	_, err = ParseArchiveDate("202410.tgz")
	assert.Error(t, err)
}

func TestRetentionCutoff(t *testing.T) {
	now := time.Date(2024, time.May, 20, 13, 30, 0, 0, time.UTC)

	cutoff := RetentionCutoff(now, 7)

	assert.Equal(t, time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), cutoff)
}

func TestRetentionCutoff_BoundaryKept(t *testing.T) {
	now := time.Date(2024, time.May, 20, 23, 59, 0, 0, time.UTC)
	cutoff := RetentionCutoff(now, 7)

	boundary := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)

	assert.False(t, boundary.Before(cutoff))
	assert.True(t, older.Before(cutoff))
}
