// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"fmt"
)

type Evaluation struct {
	State      State      `json:"state"`
	Disclosure Disclosure `json:"disclosure"`
	NextSteps  []Step     `json:"next_steps"`
	Signals    Signals    `json:"signals"`
}

type Service struct {
	signals    SignalSource
	thresholds Thresholds
}

func NewService(signals SignalSource, thresholds Thresholds) *Service {
	return &Service{signals: signals, thresholds: thresholds}
}

func (s *Service) Evaluate(ctx context.Context, userID string) (*Evaluation, error) {
	sig, err := s.signals.Signals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("evaluate profile: %w", err)
	}

	state := Derive(sig, s.thresholds)

	return &Evaluation{
		State:      state,
		Disclosure: DisclosureFor(state),
		NextSteps:  NextSteps(sig, s.thresholds),
		Signals:    sig,
	}, nil
}

// State is the lighter call used by navigation.
func (s *Service) State(ctx context.Context, userID string) (State, error) {
	sig, err := s.signals.Signals(ctx, userID)
	if err != nil {
		return StateNew, fmt.Errorf("profile state: %w", err)
	}
	return Derive(sig, s.thresholds), nil
}
