package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMetric_JSON(t *testing.T) {
	type payload struct {
		ROI Metric `json:"roi"`
	}

	b, err := json.Marshal(payload{ROI: Undefined})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"roi":null}` {
		t.Errorf("undefined metric encoded as %s", b)
	}

	b, err = json.Marshal(payload{ROI: Defined(12.5)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"roi":12.5}` {
		t.Errorf("defined metric encoded as %s", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"roi":null}`), &p); err != nil || p.ROI.Defined {
		t.Errorf("null decoded as %+v (err %v)", p.ROI, err)
	}
}

func TestDefined_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if Defined(v).Defined {
			t.Errorf("Defined(%v) should be undefined", v)
		}
	}
	if got := Defined(4).Scale(2.5); got.Value != 10 || !got.Defined {
		t.Errorf("Scale = %+v", got)
	}
	if got := Undefined.Or(-1); got != -1 {
		t.Errorf("Or = %v, want -1", got)
	}
}

func TestLivestockData_PriceUnitParts(t *testing.T) {
	tests := []struct {
		unit, currency, weight string
	}{
		{"", "", ""},
		{"COP/kg", "COP", "kg"},
		{"BRL / Arroba", "BRL", "arroba"},
		{"EUR", "EUR", ""},
	}
	for _, tt := range tests {
		c, w := LivestockData{PriceUnit: tt.unit}.PriceUnitParts()
		if c != tt.currency || w != tt.weight {
			t.Errorf("%q: got %q/%q, want %q/%q", tt.unit, c, w, tt.currency, tt.weight)
		}
	}
}
