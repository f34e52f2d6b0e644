package guard

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/Tedomi2525/My-project/types"
)

// maxRedirects bounds how many redirects a single navigation follows. Any
// path settles in at most two.
const maxRedirects = 4

// IdentitySource reports the current identity. *session.Store satisfies it.
type IdentitySource interface {
	Identity() (types.Identity, bool)
}

// Router applies Decide to every navigation and records where the client
// ended up.
type Router struct {
	mu      sync.Mutex
	source  IdentitySource
	current string
	history []string
	logger  *slog.Logger
}

func NewRouter(source IdentitySource, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{source: source, logger: logger}
}

// Resolve follows redirects from path without recording anything.
func (r *Router) Resolve(path string) string {
	var identity *types.Identity
	if id, ok := r.source.Identity(); ok {
		identity = &id
	}

	for range maxRedirects {
		d := Decide(identity, path)
		if d.Allow {
			return path
		}
		r.logger.Debug("route redirected", "from", path, "to", d.Redirect)
		path = d.Redirect
	}
	return path
}

// Navigate resolves path and makes the result the current location.
func (r *Router) Navigate(path string) string {
	dest := r.Resolve(path)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = dest
	r.history = append(r.history, dest)
	return dest
}

// Current returns the last location navigated to, or "" before the first
// navigation.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history)
}
