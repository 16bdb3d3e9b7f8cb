package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Date is a custom type for handling calendar dates (YYYY-MM-DD).
// It also accepts RFC 3339 timestamps on input, since browser clients
// tend to send full ISO strings for date fields.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to the calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Scan implements the Scanner interface
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return errors.New("failed to scan Date")
	}
	d.Time = t
	return nil
}

// Value implements the Valuer interface
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	// Trim quotes
	if len(str) > 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	var err error
	d.Time, err = time.Parse("2006-01-02", str)
	if err != nil {
		d.Time, err = time.Parse(time.RFC3339, str)
	}
	return err
}
