package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/focusengine/dietitian-focus/pkg/cache"
	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/gemini"
)

// TextGenerator produces text for a prompt. *gemini.Client implements it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// credentialChecker is implemented by generators that can report a missing
// credential without doing I/O.
type credentialChecker interface {
	HasAPIKey() bool
}

// Result is the outcome of one Analyze call.
type Result struct {
	Food   string `json:"food" yaml:"food"`
	Style  Style  `json:"style" yaml:"style"`
	Text   string `json:"text" yaml:"text"`
	Cached bool   `json:"cached" yaml:"cached"`
}

// String returns the generated text.
func (r *Result) String() string {
	return r.Text
}

// Option configures a Service.
type Option func(*Service)

// WithCache stores generated answers in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
			s.cacheEnabled = true
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDefaultStyle sets the style used when a request names none.
func WithDefaultStyle(style Style) Option {
	return func(s *Service) {
		if style != "" {
			s.defaultStyle = style
		}
	}
}

// Service turns food names into generated health-benefit answers.
// It is safe for concurrent use.
type Service struct {
	generator    TextGenerator
	cache        cache.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
	defaultStyle Style
}

// NewService returns a Service backed by generator.
func NewService(generator TextGenerator, opts ...Option) *Service {
	s := &Service{
		generator:    generator,
		cache:        cache.Noop{},
		cacheTTL:     defaults.CacheTTL,
		defaultStyle: StyleFocus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheEnabled reports whether a response cache was configured.
func (s *Service) CacheEnabled() bool {
	return s.cacheEnabled
}

// DefaultStyle returns the style used when none is requested.
func (s *Service) DefaultStyle() Style {
	return s.defaultStyle
}

// Prompt validates the inputs and returns the resolved food, style and prompt.
func (s *Service) Prompt(food, style string) (string, Style, string, error) {
	normalized, err := NormalizeFood(food)
	if err != nil {
		return "", "", "", err
	}

	st := s.defaultStyle
	if style != "" {
		if st, err = ParseStyle(style); err != nil {
			return "", "", "", err
		}
	}

	prompt, err := BuildPrompt(st, normalized)
	if err != nil {
		return "", "", "", err
	}
	return normalized, st, prompt, nil
}

// Analyze returns the generated answer for food. An empty style uses the
// default. Cache failures are logged and treated as a miss.
func (s *Service) Analyze(ctx context.Context, food, style string) (*Result, error) {
	normalized, st, prompt, err := s.Prompt(food, style)
	if err != nil {
		return nil, err
	}

	if cc, ok := s.generator.(credentialChecker); ok && !cc.HasAPIKey() {
		return nil, gemini.ErrMissingAPIKey
	}

	res := &Result{Food: normalized, Style: st}
	key := cache.Key(string(st), normalized)

	if s.cacheEnabled {
		text, hit, cerr := s.cache.Get(ctx, key)
		if cerr != nil {
			slog.Warn("cache lookup failed", "key", key, "error", cerr)
		}
		if hit {
			res.Text = text
			res.Cached = true
			return res, nil
		}
	}

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer for %q: %w", normalized, err)
	}
	res.Text = text

	if s.cacheEnabled && text != gemini.FallbackText {
		if cerr := s.cache.Set(ctx, key, text, s.cacheTTL); cerr != nil {
			slog.Warn("cache store failed", "key", key, "error", cerr)
		}
	}

	return res, nil
}
