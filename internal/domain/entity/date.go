package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat formato ISO-8601 con el que se escriben las fechas de transacción.
const DateFormat = "2006-01-02"

// Formato de lectura permisivo: acepta "2025-7-1".
const readDateFormat = "2006-1-2"

// Date fecha de calendario sin componente horario.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate devuelve una fecha normalizada.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// DateOf toma el día de calendario de t (en su propia zona horaria).
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// Today fecha actual.
func Today() Date { return DateOf(time.Now()) }

// ParseDate interpreta una fecha "AAAA-MM-DD".
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q, formato esperado %q: %w", str, DateFormat, err)
	}
	return DateOf(on), nil
}

// Time representación canónica del día (medianoche UTC).
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// IsZero indica si la fecha no fue asignada.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before indica si d es anterior a x.
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }

// After indica si d es posterior a x.
func (d Date) After(x Date) bool { return d.Time().After(x.Time()) }

func (d Date) String() string { return d.Time().Format(DateFormat) }

// UnmarshalJSON lee la fecha desde un string JSON.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

// MarshalJSON escribe la fecha como string "AAAA-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
