package rule

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"mercator-hq/ganymede/pkg/machine"
)

// Registry is a thread-safe in-memory store of named rules. It is the
// compile-time registration boundary for programmatic rules: packages
// register Rule implementations here (typically from init or from main
// wiring) and definition loading looks them up by name. Registered
// keys are unique even though transition labels are not required to
// be.
type Registry struct {
	mu       sync.RWMutex
	rules    map[string]Rule
	version  string
	loadTime time.Time
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[string]Rule),
		loadTime: time.Now(),
	}
}

// Register adds a rule under the given key, replacing any previous
// rule with the same key.
func (r *Registry) Register(key string, rl Rule) error {
	if key == "" {
		return &machine.ArgumentError{Name: "key", Message: "registry key cannot be empty"}
	}
	if rl == nil {
		return &machine.ArgumentError{Name: "rule", Message: "rule cannot be nil"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[key] = rl
	r.updateVersion()
	return nil
}

// Get returns the rule registered under key.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rl, ok := r.rules[key]
	return rl, ok
}

// Names returns all registered keys in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for key := range r.rules {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the registered rules in sorted key order. The
// returned slice is independent of the registry, so a build can run
// against it while registrations continue.
func (r *Registry) Snapshot() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for key := range r.rules {
		names = append(names, key)
	}
	sort.Strings(names)

	out := make([]Rule, 0, len(names))
	for _, key := range names {
		out = append(out, r.rules[key])
	}
	return out
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Version returns a digest over the registered keys. It changes
// whenever the rule set changes, which lets callers detect a stale
// snapshot.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// updateVersion recomputes the registry digest. Caller must hold the
// write lock.
func (r *Registry) updateVersion() {
	names := make([]string, 0, len(r.rules))
	for key := range r.rules {
		names = append(names, key)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		fmt.Fprintln(h, name)
	}
	r.version = fmt.Sprintf("%x", h.Sum(nil))
	r.loadTime = time.Now()
}
