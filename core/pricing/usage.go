package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnlimitedSentinel is the wire value for unlimited included usage.
const UnlimitedSentinel = "inf"

// Usage is an included-usage quantity: either a number or unlimited.
type Usage struct {
	Value     float64
	Unlimited bool
}

// Quantity returns a finite usage of n.
func Quantity(n float64) *Usage {
	return &Usage{Value: n}
}

// Unlimited returns an unlimited usage.
func Unlimited() *Usage {
	return &Usage{Unlimited: true}
}

// IsZero reports whether the usage is a finite zero.
func (u Usage) IsZero() bool {
	return !u.Unlimited && u.Value == 0
}

// MarshalJSON writes a number, or the unlimited sentinel string.
func (u Usage) MarshalJSON() ([]byte, error) {
	if u.Unlimited {
		return json.Marshal(UnlimitedSentinel)
	}
	return []byte(strconv.FormatFloat(u.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number, a numeric string, or the unlimited sentinel.
func (u *Usage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == UnlimitedSentinel {
			*u = Usage{Unlimited: true}
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("included_usage: %q is neither a number nor %q", s, UnlimitedSentinel)
		}
		*u = Usage{Value: f}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("included_usage: %w", err)
	}
	*u = Usage{Value: f}
	return nil
}
