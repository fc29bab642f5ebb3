package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// MonthLayout é o formato de rótulo dos meses (YYYY-MM)
const MonthLayout = "2006-01"

// Month representa um mês de calendário, sem dia nem fuso
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normaliza ano e mês (ex: mês 13 vira janeiro do ano seguinte)
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf retorna o mês de calendário de uma data
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth interpreta um rótulo no formato YYYY-MM
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// FirstDay retorna o primeiro dia do mês em UTC
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay retorna o último dia de calendário do mês em UTC
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

func (m Month) Next() Month {
	return NewMonth(m.Year, m.Month+1)
}

// Compare retorna -1, 0 ou 1 conforme m seja anterior, igual ou posterior a o
func (m Month) Compare(o Month) int {
	switch {
	case m.Year < o.Year:
		return -1
	case m.Year > o.Year:
		return 1
	case m.Month < o.Month:
		return -1
	case m.Month > o.Month:
		return 1
	}
	return 0
}

func (m Month) Before(o Month) bool {
	return m.Compare(o) < 0
}

func (m Month) After(o Month) bool {
	return m.Compare(o) > 0
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value grava o mês como texto YYYY-MM
func (m Month) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Month) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	case time.Time:
		*m = MonthOf(v)
		return nil
	case nil:
		*m = Month{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Month", src)
}
