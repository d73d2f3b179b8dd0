// Package reviews holds the presentation rules for product reviews.
package reviews

import (
	"math"
	"strings"
)

// AnonymousName is shown when the reviewer's customer record is missing.
const AnonymousName = "익명"

// MaskName hides a reviewer's display name: first character kept, one
// asterisk per remaining character. Counting is by codepoint, so multi-byte
// names mask the same as ASCII ones.
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return AnonymousName
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// AverageScore is the arithmetic mean rounded to one decimal place.
// No reviews means 0.
func AverageScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum int
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))
	return math.Round(mean*10) / 10
}
