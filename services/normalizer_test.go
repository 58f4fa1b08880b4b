package services

import "testing"

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input     string
		wantCity  string
		wantState string
	}{
		{"Austin, TX", "Austin", "TX"},
		{"Austin", "Austin", ""},
		{"San Antonio, tx", "San Antonio", "TX"},
		{"  Miami ,  FL  ", "Miami", "FL"},
		{"New York, NY, USA", "New York", "NY, USA"},
		{"", "", ""},
	}

	for _, tt := range tests {
		city, state := ParseLocation(tt.input)
		if city != tt.wantCity || state != tt.wantState {
			t.Errorf("ParseLocation(%q) = (%q, %q); want (%q, %q)",
				tt.input, city, state, tt.wantCity, tt.wantState)
		}
	}
}

func TestLocationSlug(t *testing.T) {
	tests := []struct {
		city  string
		state string
		want  string
	}{
		{"Austin", "TX", "austin-tx"},
		{"San Antonio", "TX", "san-antonio-tx"},
		{"Austin", "", "austin"},
		{"New York", "NY", "new-york-ny"},
	}

	for _, tt := range tests {
		if got := LocationSlug(tt.city, tt.state); got != tt.want {
			t.Errorf("LocationSlug(%q, %q) = %q; want %q", tt.city, tt.state, got, tt.want)
		}
	}
}
