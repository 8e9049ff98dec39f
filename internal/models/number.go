package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an optional finite float. The zero value is null.
// It decodes JSON numbers, numeric strings and null; anything else,
// including NaN and infinities, decodes as null.
type Number struct {
	v  float64
	ok bool
}

// Some returns a Number holding v, or null when v is not finite.
func Some(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{v: v, ok: true}
}

// Null returns the null Number.
func Null() Number { return Number{} }

// Get returns the value and whether it is present.
func (n Number) Get() (float64, bool) { return n.v, n.ok }

// Valid reports whether n holds a finite value.
func (n Number) Valid() bool { return n.ok }

// Or returns the value, or def when n is null.
func (n Number) Or(def float64) float64 {
	if !n.ok {
		return def
	}
	return n.v
}

func (n Number) String() string {
	if !n.ok {
		return "null"
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.ok {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.v, 'f', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*n = Some(f)
	return nil
}
