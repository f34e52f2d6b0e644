// Package guard decides which routes the current identity may visit.
package guard

import (
	"strings"

	"github.com/Tedomi2525/My-project/types"
)

const (
	LoginPath = "/login"
	RootPath  = "/"
)

// Decision is the outcome of a navigation check. When Allow is false,
// Redirect holds the route to go to instead.
type Decision struct {
	Allow    bool
	Redirect string
}

// Decide evaluates the routing rules for identity (nil when logged out)
// navigating to path. It has no side effects.
func Decide(identity *types.Identity, path string) Decision {
	if path == "" {
		path = RootPath
	}

	if identity == nil || !identity.Role.Valid() {
		if path == LoginPath {
			return Decision{Allow: true}
		}
		return Decision{Redirect: LoginPath}
	}

	home := identity.Role.Home()
	if path == RootPath || path == LoginPath {
		return Decision{Redirect: home}
	}

	// Plain prefix match: "/administrator" is treated as the admin namespace.
	for _, role := range types.Roles {
		if role != identity.Role && strings.HasPrefix(path, role.Home()) {
			return Decision{Redirect: home}
		}
	}
	return Decision{Allow: true}
}
