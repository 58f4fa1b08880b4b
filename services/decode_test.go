package services

import (
	"testing"

	"realestate-agent/models"
)

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"plain float", 350000.0, 0, 350000},
		{"int", 4, 0, 4},
		{"string with comma and plus", "350,000+", 0, 350000},
		{"currency string", "$1,200.50", 0, 1200.50},
		{"trailing plus", "4+", 0, 4},
		{"nil", nil, -1, -1},
		{"non-numeric text", "call for price", 0, 0},
		{"empty string", "", 7, 7},
		{"unknown marker", "N/A", 0, 0},
		{"bool", true, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFloat(tt.in, tt.def); got != tt.want {
				t.Errorf("SafeFloat(%v, %v) = %v; want %v", tt.in, tt.def, got, tt.want)
			}
		})
	}
}

func TestSafeInt(t *testing.T) {
	if got := SafeInt("3", 0); got != 3 {
		t.Errorf("SafeInt(\"3\") = %d; want 3", got)
	}
	if got := SafeInt(nil, 0); got != 0 {
		t.Errorf("SafeInt(nil) = %d; want 0", got)
	}
	if got := SafeInt(2.0, 0); got != 2 {
		t.Errorf("SafeInt(2.0) = %d; want 2", got)
	}
}

func TestSafeString(t *testing.T) {
	if got := SafeString(nil); got != models.Unknown {
		t.Errorf("SafeString(nil) = %q; want %q", got, models.Unknown)
	}
	if got := SafeString("  "); got != models.Unknown {
		t.Errorf("SafeString(blank) = %q; want %q", got, models.Unknown)
	}
	if got := SafeString(" 123 Main St "); got != "123 Main St" {
		t.Errorf("SafeString = %q; want trimmed text", got)
	}
	if got := SafeString(1995.0); got != "1995" {
		t.Errorf("SafeString(1995.0) = %q; want \"1995\"", got)
	}
}

func TestNestedMapMissingLevels(t *testing.T) {
	m := map[string]any{
		"location": map[string]any{
			"address": map[string]any{"city": "Austin"},
		},
	}

	if got := NestedMap(m, "location", "address")["city"]; got != "Austin" {
		t.Errorf("NestedMap city = %v; want Austin", got)
	}
	if got := NestedMap(m, "location", "missing"); len(got) != 0 {
		t.Errorf("missing level should yield empty map, got %v", got)
	}
	if got := NestedMap(nil, "anything"); len(got) != 0 {
		t.Errorf("nil map should yield empty map, got %v", got)
	}
}
