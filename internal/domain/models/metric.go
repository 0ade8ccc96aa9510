package models

import (
	"encoding/json"
	"math"
)

// Metric is a derived figure that may be undefined, for example a per-kg
// cost when nothing is sold. Undefined metrics encode as JSON null.
type Metric struct {
	Value   float64 `bson:"value"`
	Defined bool    `bson:"defined"`
}

// Defined wraps v as a defined metric. NaN and infinities are rejected and
// produce an undefined metric instead.
func Defined(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Defined: true}
}

// Undefined is the zero Metric.
var Undefined = Metric{}

// Scale multiplies a defined metric; undefined stays undefined.
func (m Metric) Scale(factor float64) Metric {
	if !m.Defined {
		return m
	}
	return Defined(m.Value * factor)
}

// Or returns the value, or fallback when undefined.
func (m Metric) Or(fallback float64) float64 {
	if !m.Defined {
		return fallback
	}
	return m.Value
}

// MarshalJSON implements json.Marshaler.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}
