package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Timetoken серверная 64-битная метка времени, упорядочивающая события канала.
// На проводе передается строкой ("17000000000000000"), но числа тоже принимаются.
type Timetoken uint64

// ParseTimetoken разбирает десятичное строковое представление timetoken
func ParseTimetoken(s string) (Timetoken, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timetoken %q: %w", s, err)
	}
	return Timetoken(v), nil
}

// String возвращает десятичное представление timetoken
func (t Timetoken) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Ptr returns a pointer to a copy of t. Handy for optional page bounds.
func (t Timetoken) Ptr() *Timetoken {
	return &t
}

// MarshalJSON кодирует timetoken строкой, как это делает сервер
func (t Timetoken) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON принимает как строку, так и число; null оставляет значение без изменений
func (t *Timetoken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid timetoken: %w", err)
		}
		parsed, err := ParseTimetoken(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid timetoken: %w", err)
	}
	parsed, err := ParseTimetoken(n.String())
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Cursor identifies the next long-poll position: a timetoken plus the
// region (origin shard) that issued it. Cursor is a value type; the zero
// value is the "start from now" cursor used for the first subscribe request.
type Cursor struct {
	Timetoken Timetoken `json:"t"`
	Region    uint32    `json:"r"`
}

// IsZero сообщает, что курсор еще не получен от сервера
func (c Cursor) IsZero() bool {
	return c.Timetoken == 0 && c.Region == 0
}

// Advance returns the replacement cursor. Servers may move to another region
// without moving the timetoken forward, so the new cursor is taken as is.
func (c Cursor) Advance(next Cursor) Cursor {
	return next
}

// QueryValues renders the cursor as the tt/tr parameters of a subscribe request.
// Region is omitted for the initial (zero) cursor.
func (c Cursor) QueryValues() url.Values {
	values := url.Values{}
	c.AddTo(values)
	return values
}

// AddTo записывает tt/tr в существующий набор query-параметров
func (c Cursor) AddTo(values url.Values) {
	values.Set("tt", c.Timetoken.String())
	if !c.IsZero() {
		values.Set("tr", strconv.FormatUint(uint64(c.Region), 10))
	}
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d@%d", c.Timetoken, c.Region)
}
