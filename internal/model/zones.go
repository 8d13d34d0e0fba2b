package model

import (
	"fmt"
	"strings"
)

// zoneCodes maps accepted travel-zone letter combinations to the
// numeric codes the upstream fare API expects.
var zoneCodes = map[string]int{
	"AB":   11,
	"ABC":  12,
	"ABCD": 13,
	"BC":   21,
	"BCD":  22,
	"CD":   31,
	"D":    40,
}

// ZoneCode translates zone letters (case-insensitive) into the
// upstream zone code. An unrecognized combination is an input
// validation error, not a network error.
func ZoneCode(letters string) (int, error) {
	code, ok := zoneCodes[strings.ToUpper(letters)]
	if !ok {
		return 0, fmt.Errorf("unknown zone combination %q", letters)
	}
	return code, nil
}

// ZoneLetterOptions lists every accepted letter combination.
func ZoneLetterOptions() []string {
	return []string{"AB", "ABC", "ABCD", "BC", "BCD", "CD", "D"}
}
