// Package parser turns leaflet worksheets into normalized records.
package parser

import (
	"strconv"
	"strings"
	"time"
)

// Kind is the native kind of a stored cell value.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindDate
	KindBoolean
	KindText
)

// String returns the lower-case kind name used in raw cell captures.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a single cell value. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
	Bool   bool
}

// TextValue returns a text cell value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue returns a numeric cell value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// DateValue returns a date/time cell value.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// BoolValue returns a boolean cell value.
func BoolValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// isBlank reports whether v is empty or whitespace-only text.
func isBlank(v Value) bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	}
	return false
}

// render formats non-text kinds the way they are shown in records.
func (v Value) render() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindDate:
		return isoDate(v.Time)
	case KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	}
	return v.Text
}

// isoDate renders a timestamp as "2006-01-02 15:04:05", with microseconds
// appended only when they are non-zero.
func isoDate(t time.Time) string {
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02 15:04:05.000000")
	}
	return t.Format("2006-01-02 15:04:05")
}
