package assistant

import (
	"errors"
	"sort"
	"strings"
)

type TipCategory string

const (
	TipGeneral      TipCategory = "general"
	TipNutrition    TipCategory = "nutrition"
	TipExercise     TipCategory = "exercise"
	TipMentalHealth TipCategory = "mental_health"
	TipHygiene      TipCategory = "hygiene"
	TipDengue       TipCategory = "dengue"
)

var ErrUnknownTipCategory = errors.New("unknown health tip category")

var tipPrompts = map[TipCategory]string{
	TipGeneral:      "Give me one practical general health tip for today, in two or three sentences.",
	TipNutrition:    "Give me a simple nutrition tip using food that is easy to find in a Bicol market.",
	TipExercise:     "Suggest a short exercise routine I can do at home without equipment.",
	TipMentalHealth: "Share one tip for managing stress, and tell me where I can ask for mental health support in Naga City.",
	TipHygiene:      "Give me a hygiene tip that helps prevent common infections in the family.",
	TipDengue:       "How can my household prevent dengue during the rainy season, and which warning signs need a hospital visit?",
}

// ParseTipCategory normalizes s and reports whether it names a known category.
func ParseTipCategory(s string) (TipCategory, error) {
	c := TipCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tipPrompts[c]; !ok {
		return "", ErrUnknownTipCategory
	}
	return c, nil
}

// TipCategories lists the known categories in a stable order.
func TipCategories() []TipCategory {
	out := make([]TipCategory, 0, len(tipPrompts))
	for c := range tipPrompts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
