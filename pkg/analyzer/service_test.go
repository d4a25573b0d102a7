package analyzer

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusengine/dietitian-focus/pkg/errors"
	"github.com/focusengine/dietitian-focus/pkg/gemini"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	noKey   bool
	prompts []string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func (g *stubGenerator) HasAPIKey() bool { return !g.noKey }

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type memCache struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Close() error { return nil }

func TestService_Analyze(t *testing.T) {
	gen := &stubGenerator{text: "Kale supports healthy blood clotting."}
	svc := NewService(gen)

	res, err := svc.Analyze(context.Background(), "  Kale ", "")
	require.NoError(t, err)

	assert.Equal(t, "Kale supports healthy blood clotting.", res.Text)
	assert.Equal(t, "Kale", res.Food)
	assert.Equal(t, StyleFocus, res.Style)
	assert.False(t, res.Cached)
	assert.Equal(t, res.Text, res.String())
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Kale")
}

func TestService_DefaultFood(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	svc := NewService(gen)

	res, err := svc.Analyze(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultFood, res.Food)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], DefaultFood)
}

func TestService_Styles(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	svc := NewService(gen, WithDefaultStyle(StyleScience))
	assert.Equal(t, StyleScience, svc.DefaultStyle())

	res, err := svc.Analyze(context.Background(), "kale", "")
	require.NoError(t, err)
	assert.Equal(t, StyleScience, res.Style)

	res, err = svc.Analyze(context.Background(), "kale", "kid")
	require.NoError(t, err)
	assert.Equal(t, StyleKid, res.Style)

	_, err = svc.Analyze(context.Background(), "kale", "poetic")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Equal(t, 2, gen.calls())
}

func TestService_MissingKeySkipsGenerator(t *testing.T) {
	gen := &stubGenerator{noKey: true}
	c := newMemCache()
	svc := NewService(gen, WithCache(c, time.Hour))

	_, err := svc.Analyze(context.Background(), "kale", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
	assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))
	assert.Zero(t, gen.calls())
}

func TestService_GeneratorErrorKeepsCode(t *testing.T) {
	gen := &stubGenerator{err: errors.New(errors.ErrCodeUpstream, "gemini returned status 500")}
	svc := NewService(gen)

	_, err := svc.Analyze(context.Background(), "kale", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUpstream, errors.CodeOf(err))
}

func TestService_Cache(t *testing.T) {
	gen := &stubGenerator{text: "Vitamin K."}
	c := newMemCache()
	svc := NewService(gen, WithCache(c, time.Minute))
	require.True(t, svc.CacheEnabled())

	first, err := svc.Analyze(context.Background(), "Kale", "")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, time.Minute, c.ttls["focus:v1:focus:kale"])

	second, err := svc.Analyze(context.Background(), "KALE", "")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "Vitamin K.", second.Text)
	assert.Equal(t, 1, gen.calls())
}

func TestService_CacheErrorsAreMisses(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	c := newMemCache()
	c.getErr = stderrors.New("connection refused")
	c.setErr = stderrors.New("connection refused")
	svc := NewService(gen, WithCache(c, time.Minute))

	res, err := svc.Analyze(context.Background(), "kale", "")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
	assert.Equal(t, 1, gen.calls())
}

func TestService_FallbackNotCached(t *testing.T) {
	gen := &stubGenerator{text: gemini.FallbackText}
	c := newMemCache()
	svc := NewService(gen, WithCache(c, time.Minute))

	res, err := svc.Analyze(context.Background(), "kale", "")
	require.NoError(t, err)
	assert.Equal(t, gemini.FallbackText, res.Text)
	assert.Empty(t, c.data)
}

func TestService_NoCacheByDefault(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	svc := NewService(gen)
	assert.False(t, svc.CacheEnabled())

	for range 3 {
		_, err := svc.Analyze(context.Background(), "kale", "")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, gen.calls())
}

func TestService_Prompt(t *testing.T) {
	gen := &stubGenerator{text: "unused"}
	svc := NewService(gen, WithDefaultStyle(StyleKid))

	food, style, prompt, err := svc.Prompt("  sweet   potato ", "")
	require.NoError(t, err)
	assert.Equal(t, "sweet potato", food)
	assert.Equal(t, StyleKid, style)
	assert.Contains(t, prompt, "sweet potato")
	assert.Zero(t, gen.calls())

	_, style, _, err = svc.Prompt("kale", "SCIENCE")
	require.NoError(t, err)
	assert.Equal(t, StyleScience, style)

	_, _, _, err = svc.Prompt("kale", "poetry")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}
