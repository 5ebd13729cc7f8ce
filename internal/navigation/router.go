// AngelaMos | 2026
// router.go

package navigation

import (
	"strings"

	"github.com/carterperez-dev/talenthub/internal/profile"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

type Route string

const (
	RouteRegistration      Route = "/auth"
	RouteEmailVerification Route = "/auth/verify-email"
	RouteWelcome           Route = "/welcome"
	RouteOnboarding        Route = "/onboarding"
	RouteDashboard         Route = "/dashboard"
	RouteBusinessDashboard Route = "/business/dashboard"
	RouteAdminConsole      Route = "/admin"
)

var recoveryPrefixes = []string{
	"/auth/reset-password",
	"/auth/recover",
}

type FlowState string

const (
	FlowRegistration      FlowState = "REGISTRATION"
	FlowEmailVerification FlowState = "EMAIL_VERIFICATION"
	FlowWelcome           FlowState = "WELCOME"
	FlowOnboarding        FlowState = "ONBOARDING"
	FlowDashboard         FlowState = "DASHBOARD"
)

// Session is everything routing needs to know about the caller. The zero
// value is an anonymous visitor.
type Session struct {
	Authenticated  bool
	Role           tier.RoleTier
	EmailConfirmed bool
}

type Guards struct {
	RecoveryInProgress bool
	ProtectedPrefixes  []string
}

// FlowFromPath infers the flow state the current route belongs to.
func FlowFromPath(path string) FlowState {
	switch {
	case hasPathPrefix(path, string(RouteEmailVerification)):
		return FlowEmailVerification
	case hasPathPrefix(path, string(RouteRegistration)):
		return FlowRegistration
	case hasPathPrefix(path, string(RouteWelcome)):
		return FlowWelcome
	case hasPathPrefix(path, string(RouteOnboarding)):
		return FlowOnboarding
	default:
		return FlowDashboard
	}
}

func CanonicalRoute(s Session, state profile.State) Route {
	switch {
	case !s.Authenticated:
		return RouteRegistration
	case !s.EmailConfirmed:
		return RouteEmailVerification
	case s.Role.IsAdmin():
		return RouteAdminConsole
	case s.Role.IsBusiness():
		return RouteBusinessDashboard
	case state == profile.StateNew:
		return RouteOnboarding
	default:
		return RouteDashboard
	}
}

// ShouldAutoRedirect is the loop breaker: it is consulted on every
// navigation and any matching guard suppresses the redirect.
func ShouldAutoRedirect(currentPath string, canonical Route, g Guards) bool {
	if g.RecoveryInProgress || matchesAny(currentPath, recoveryPrefixes) {
		return false
	}
	if matchesAny(currentPath, g.ProtectedPrefixes) {
		return false
	}
	return normalize(currentPath) != string(canonical)
}

type Decision struct {
	FlowState      FlowState `json:"flow_state"`
	CanonicalRoute Route     `json:"canonical_route"`
	Redirect       bool      `json:"redirect"`
}

func Decide(s Session, state profile.State, currentPath string, g Guards) Decision {
	canonical := CanonicalRoute(s, state)
	return Decision{
		FlowState:      FlowFromPath(currentPath),
		CanonicalRoute: canonical,
		Redirect:       ShouldAutoRedirect(currentPath, canonical, g),
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole segments, so /settings matches /settings/billing
// but not /settingsx.
func hasPathPrefix(path, prefix string) bool {
	path = normalize(path)
	prefix = normalize(prefix)
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}
