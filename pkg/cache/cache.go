// Package cache stores generated answers so repeated questions about the same
// food do not hit the upstream API again.
//
// The cache is optional. When no Redis URL is configured the Noop cache is
// used and every lookup is a miss.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/cases"
)

const keyPrefix = "focus:v1"

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "focus_cache_lookups_total",
		Help: "Total number of response cache lookups by result",
	},
	[]string{"result"},
)

// Cache is a string key/value store with per-entry TTL.
type Cache interface {
	// Get returns the cached value and true on a hit.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Close releases the underlying connection.
	Close() error
}

// Key builds the cache key for a prompt style and food name. Food names are
// case-folded and whitespace-collapsed so "Kale", "kale " and "KALE" share
// one entry.
func Key(style, food string) string {
	folded := cases.Fold().String(strings.Join(strings.Fields(food), " "))
	return keyPrefix + ":" + style + ":" + folded
}

// Noop is a Cache that never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

// Set discards the value.
func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
