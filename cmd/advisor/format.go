// cmd/advisor/format.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// formatGBP renders whole pounds with thousands separators, e.g. £3,139,500.
func formatGBP(v float64) string {
	n := int64(math.Floor(math.Abs(v) + 0.5))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if v < 0 && n != 0 {
		b.WriteByte('-')
	}
	b.WriteString("£")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// formatChange renders a signed delta with the given precision and suffix.
func formatChange(v float64, precision int, suffix string) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if v > 0 {
		s = "+" + s
	}
	return s + suffix
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
