package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusengine/dietitian-focus/pkg/errors"
)

func TestNormalizeFood(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "kale", "kale", false},
		{"trimmed", "  kale \n", "kale", false},
		{"inner spaces collapsed", "sweet    potato", "sweet potato", false},
		{"empty uses placeholder", "", DefaultFood, false},
		{"blank uses placeholder", "   \t ", DefaultFood, false},
		{"unicode", "crème fraîche", "crème fraîche", false},
		{"max length", strings.Repeat("é", 100), strings.Repeat("é", 100), false},
		{"too long", strings.Repeat("a", 101), "", true},
		{"control char", "kale\x00", "", true},
		{"bell", "ka\x07le", "", true},
		{"invalid utf8", "kale\xff", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFood(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	for _, name := range Styles() {
		t.Run(name, func(t *testing.T) {
			p, err := BuildPrompt(Style(name), "blueberries")
			require.NoError(t, err)
			assert.Contains(t, p, "blueberries")
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		_, err := BuildPrompt("poetic", "kale")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	})
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"focus", StyleFocus, false},
		{"KID", StyleKid, false},
		{" science ", StyleScience, false},
		{"", "", true},
		{"poetic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyles(t *testing.T) {
	assert.Equal(t, []string{"focus", "kid", "science"}, Styles())
}
