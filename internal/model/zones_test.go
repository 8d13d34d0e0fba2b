package model

import "testing"

func TestZoneCode_AcceptedCombinations(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"AB", 11},
		{"ABC", 12},
		{"ABCD", 13},
		{"BC", 21},
		{"BCD", 22},
		{"CD", 31},
		{"D", 40},
		{"ab", 11},
		{"aBc", 12},
		{"d", 40},
	}
	for _, tt := range tests {
		got, err := ZoneCode(tt.letters)
		if err != nil {
			t.Errorf("ZoneCode(%q) unexpected error: %v", tt.letters, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ZoneCode(%q) = %d, want %d", tt.letters, got, tt.want)
		}
	}
}

func TestZoneCode_Bijection(t *testing.T) {
	seen := make(map[int]string)
	for _, letters := range ZoneLetterOptions() {
		code, err := ZoneCode(letters)
		if err != nil {
			t.Fatalf("ZoneCode(%q): %v", letters, err)
		}
		if prev, dup := seen[code]; dup {
			t.Errorf("code %d mapped from both %q and %q", code, prev, letters)
		}
		seen[code] = letters
	}
	if len(seen) != 7 {
		t.Errorf("expected 7 distinct codes, got %d", len(seen))
	}
}

func TestZoneCode_Rejected(t *testing.T) {
	for _, letters := range []string{"", "A", "B", "C", "AD", "ABCDE", "AC", "BD", "XYZ", " AB"} {
		if _, err := ZoneCode(letters); err == nil {
			t.Errorf("ZoneCode(%q) expected error, got none", letters)
		}
	}
}
