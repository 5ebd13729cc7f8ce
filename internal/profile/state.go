// AngelaMos | 2026
// state.go

package profile

import (
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/config"
)

// State is ordered: a later state is never less capable than an earlier one.
type State int

const (
	StateNew State = iota
	StateInProgress
	StateEstablished
	StateComplete
)

var stateNames = map[State]string{
	StateNew:         "NEW",
	StateInProgress:  "IN_PROGRESS",
	StateEstablished: "ESTABLISHED",
	StateComplete:    "COMPLETE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown profile state %d", int(s))
	}
	return []byte(name), nil
}

func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return StateNew, fmt.Errorf("unknown profile state %q", name)
}

// Signals are read from the profile's underlying records.
type Signals struct {
	CompletenessPct int `db:"completeness_pct" json:"completeness_pct"`
	PortfolioItems  int `db:"portfolio_items"  json:"portfolio_items"`
	Experiences     int `db:"experiences"      json:"experiences"`
	Educations      int `db:"educations"       json:"educations"`
	SocialLinks     int `db:"social_links"     json:"social_links"`
}

func (s Signals) HasPortfolio() bool  { return s.PortfolioItems > 0 }
func (s Signals) HasExperience() bool { return s.Experiences > 0 }
func (s Signals) HasEducation() bool  { return s.Educations > 0 }

func (s Signals) any() bool {
	return s.HasPortfolio() || s.HasExperience() || s.HasEducation() || s.SocialLinks > 0
}

type Thresholds struct {
	InProgressPct       int
	EstablishedPct      int
	CompletePct         int
	CompleteSocialLinks int
}

func ThresholdsFromConfig(cfg config.ProfileConfig) Thresholds {
	return Thresholds{
		InProgressPct:       cfg.InProgressPct,
		EstablishedPct:      cfg.EstablishedPct,
		CompletePct:         cfg.CompletePct,
		CompleteSocialLinks: cfg.CompleteSocialLinks,
	}
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		InProgressPct:       20,
		EstablishedPct:      60,
		CompletePct:         90,
		CompleteSocialLinks: 2,
	}
}

// Derive maps signals to exactly one state. It is pure and total.
func Derive(s Signals, t Thresholds) State {
	switch {
	case s.CompletenessPct >= t.CompletePct &&
		s.HasPortfolio() && s.HasExperience() && s.HasEducation() &&
		s.SocialLinks >= t.CompleteSocialLinks:
		return StateComplete
	case s.CompletenessPct >= t.EstablishedPct &&
		(s.HasPortfolio() || s.HasExperience()):
		return StateEstablished
	case (t.InProgressPct > 0 && s.CompletenessPct >= t.InProgressPct) || s.any():
		return StateInProgress
	default:
		return StateNew
	}
}
