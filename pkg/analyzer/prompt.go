package analyzer

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/errors"
)

// DefaultFood is used when the request carries no food name.
const DefaultFood = "apple"

// Style selects the prompt wording.
type Style string

const (
	// StyleFocus asks for the one most basic benefit, explained clearly.
	StyleFocus Style = "focus"
	// StyleKid asks for an explanation a child would follow.
	StyleKid Style = "kid"
	// StyleScience asks for the benefit and the nutrient behind it.
	StyleScience Style = "science"
)

var promptTemplates = map[Style]string{
	StyleFocus: "In one or two short sentences, what is the single most basic health benefit of eating %s? " +
		"Explain it clearly for a general audience without medical jargon.",
	StyleKid: "Explain to a curious eight-year-old, in two short sentences, the single most important way " +
		"eating %s helps their body.",
	StyleScience: "Name the single most basic health benefit of eating %s and the nutrient mainly responsible " +
		"for it. Answer in two sentences.",
}

// Styles returns the supported style names, sorted.
func Styles() []string {
	out := make([]string, 0, len(promptTemplates))
	for s := range promptTemplates {
		out = append(out, string(s))
	}
	slices.Sort(out)
	return out
}

// ParseStyle validates a style name. Matching is case-insensitive.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := promptTemplates[style]; !ok {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown style %q", s),
			map[string]any{"supported": Styles()})
	}
	return style, nil
}

// NormalizeFood trims raw and substitutes DefaultFood when it is empty.
// Names longer than defaults.MaxFoodLength runes or containing control
// characters are rejected.
func NormalizeFood(raw string) (string, error) {
	food := strings.Join(strings.Fields(raw), " ")
	if food == "" {
		return DefaultFood, nil
	}

	if n := utf8.RuneCountInString(food); n > defaults.MaxFoodLength {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("food must be at most %d characters", defaults.MaxFoodLength),
			map[string]any{"length": n, "max": defaults.MaxFoodLength})
	}

	if !utf8.ValidString(food) || strings.IndexFunc(food, unicode.IsControl) >= 0 {
		return "", errors.New(errors.ErrCodeInvalidRequest, "food contains invalid characters")
	}

	return food, nil
}

// BuildPrompt renders the prompt for style about food. The food is used as
// given; call NormalizeFood first.
func BuildPrompt(style Style, food string) (string, error) {
	tmpl, ok := promptTemplates[style]
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown style %q", style),
			map[string]any{"supported": Styles()})
	}
	return fmt.Sprintf(tmpl, food), nil
}
