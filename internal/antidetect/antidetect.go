// internal/antidetect/antidetect.go
//
// Package antidetect reduces the automation footprint of the browser
// session: a realistic user-agent pool, jittered delays so the pump does
// not tick with machine regularity, and a script that masks the most
// common headless-detection probes.
package antidetect

import (
	"math/rand"
	"sync"
	"time"
)

// defaultUserAgents are current desktop Chrome strings. Headless Chrome's
// own user agent advertises "HeadlessChrome" and is an instant tell.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
}

// UserAgentRotator hands out user agents round-robin. Safe for concurrent
// use.
type UserAgentRotator struct {
	agents []string
	mu     sync.Mutex
	index  int
}

// NewUserAgentRotator creates a rotator over the given pool, falling back
// to the built-in desktop pool when empty.
func NewUserAgentRotator(agents []string) *UserAgentRotator {
	if len(agents) == 0 {
		agents = defaultUserAgents
	}
	return &UserAgentRotator{agents: agents}
}

// Next returns the next user agent in rotation.
func (r *UserAgentRotator) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent := r.agents[r.index]
	r.index = (r.index + 1) % len(r.agents)
	return agent
}

// Random returns a random user agent from the pool.
func (r *UserAgentRotator) Random() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.agents[rand.Intn(len(r.agents))]
}

// RandomUserAgent picks from the built-in pool.
func RandomUserAgent() string {
	return defaultUserAgents[rand.Intn(len(defaultUserAgents))]
}

// jitterFraction bounds how far Jitter strays from the base delay.
const jitterFraction = 0.25

// Jitter perturbs a delay by up to ±25% so repeated waits do not form a
// perfectly regular rhythm.
func Jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	span := float64(base) * jitterFraction
	offset := (rand.Float64()*2 - 1) * span
	return time.Duration(float64(base) + offset)
}
