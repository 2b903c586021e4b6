package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/paulmach/orb"
)

const (
	MinLocalsQueryLen = 3
	MinTagsQueryLen   = 2
	MaxQueryLen       = 64

	DefaultListLimit = 50
	MaxListLimit     = 100
	DefaultMapLimit  = 500
	MaxMapLimit      = 2000
)

// ParseBBox parses "minLon,minLat,maxLon,maxLat". Anything that is not
// exactly four finite numbers disables the filter (nil), it is never an error.
func ParseBBox(raw string) *orb.Bound {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		v[i] = f
	}
	return &orb.Bound{
		Min: orb.Point{v[0], v[1]},
		Max: orb.Point{v[2], v[3]},
	}
}

// NormalizeTags drops blank slugs and duplicates, keeping first-seen order.
// A nil result disables the tag filter.
func NormalizeTags(raw []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeText trims the input and caps it at MaxQueryLen characters.
// Inputs shorter than minLen characters disable the text filter ("").
func NormalizeText(raw string, minLen int) string {
	s := strings.TrimSpace(raw)
	if utf8.RuneCountInString(s) > MaxQueryLen {
		s = strings.TrimSpace(string([]rune(s)[:MaxQueryLen]))
	}
	if utf8.RuneCountInString(s) < minLen {
		return ""
	}
	return s
}

// ClampLimit parses a limit and clamps it to [1, max]. Empty or unparseable
// input yields def.
func ClampLimit(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// ClampOffset parses an offset. Negative or unparseable input yields 0.
func ClampOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
