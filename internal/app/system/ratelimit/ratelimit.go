// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Limiter is a fixed-window counter keyed by string. It is safe for
// concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit hits per key per duration. Expired
// keys are swept every 2×duration until Close is called.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.sweepLoop(duration * 2)
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many hits key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Close stops the sweep goroutine. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// trustedProxies holds the networks whose forwarding headers ClientIP
// believes. Nil means none.
var trustedProxies atomic.Pointer[[]netip.Prefix]

// ParseTrustedProxies parses a comma-separated list of CIDR blocks or bare
// addresses, e.g. "10.0.0.0/8, 127.0.0.1".
func ParseTrustedProxies(s string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

// SetTrustedProxies replaces the trusted proxy networks. With none set,
// ClientIP ignores X-Forwarded-For and X-Real-IP entirely.
func SetTrustedProxies(prefixes []netip.Prefix) {
	if len(prefixes) == 0 {
		trustedProxies.Store(nil)
		return
	}
	cp := append([]netip.Prefix(nil), prefixes...)
	trustedProxies.Store(&cp)
}

func isTrustedProxy(ip string) bool {
	list := trustedProxies.Load()
	if list == nil {
		return false
	}
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range *list {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP returns the caller's address. Forwarding headers are honoured
// only when the connection comes from a trusted proxy: X-Forwarded-For is
// walked from the right past trusted hops, so a client cannot choose the
// address by prepending entries; X-Real-IP is used when there is no
// X-Forwarded-For.
func ClientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !isTrustedProxy(remote) {
		return remote
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hops = append(hops, h)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if _, err := netip.ParseAddr(hops[i]); err != nil {
			return remote
		}
		if !isTrustedProxy(hops[i]) || i == 0 {
			return hops[i]
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if _, err := netip.ParseAddr(xri); err == nil {
			return xri
		}
	}
	return remote
}

// Config sets the login limits. Zero fields fall back to DefaultConfig.
type Config struct {
	PerIP       int
	IPWindow    time.Duration
	PerEmail    int
	EmailWindow time.Duration
}

// DefaultConfig allows 10 attempts per IP per minute and 5 per email per
// 5 minutes.
func DefaultConfig() Config {
	return Config{PerIP: 10, IPWindow: time.Minute, PerEmail: 5, EmailWindow: 5 * time.Minute}
}

// LoginLimiter throttles sign-in attempts by client IP and by email.
type LoginLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewLoginLimiter uses DefaultConfig.
func NewLoginLimiter() *LoginLimiter { return NewLoginLimiterWithConfig(Config{}) }

// NewLoginLimiterWithConfig builds a LoginLimiter from cfg.
func NewLoginLimiterWithConfig(cfg Config) *LoginLimiter {
	def := DefaultConfig()
	if cfg.PerIP <= 0 {
		cfg.PerIP = def.PerIP
	}
	if cfg.IPWindow <= 0 {
		cfg.IPWindow = def.IPWindow
	}
	if cfg.PerEmail <= 0 {
		cfg.PerEmail = def.PerEmail
	}
	if cfg.EmailWindow <= 0 {
		cfg.EmailWindow = def.EmailWindow
	}
	return &LoginLimiter{
		ip:    New(cfg.PerIP, cfg.IPWindow),
		email: New(cfg.PerEmail, cfg.EmailWindow),
	}
}

// Check records an attempt and reports whether it may proceed. When it may
// not, reason is a message fit for the login form.
func (ll *LoginLimiter) Check(r *http.Request, email string) (ok bool, reason string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, "Too many sign-in attempts. Please wait a minute before trying again."
	}
	if key := emailKey(email); key != "" && !ll.email.Allow(key) {
		return false, "Too many sign-in attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the per-email counter after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if key := emailKey(email); key != "" {
		ll.email.Reset(key)
	}
}

// Close stops both sweepers.
func (ll *LoginLimiter) Close() {
	ll.ip.Close()
	ll.email.Close()
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
