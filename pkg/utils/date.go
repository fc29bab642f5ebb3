package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate interpreta uma data YYYY-MM-DD; string vazia retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return ""
	}
	return date.Format(DateLayout)
}
