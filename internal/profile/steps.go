// AngelaMos | 2026
// steps.go

package profile

type Step struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// NextSteps lists what is still missing, most valuable first.
func NextSteps(s Signals, t Thresholds) []Step {
	steps := make([]Step, 0, 5)

	if !s.HasExperience() {
		steps = append(steps, Step{Key: "add_experience", Label: "Add your work experience"})
	}
	if !s.HasPortfolio() {
		steps = append(steps, Step{Key: "add_portfolio_item", Label: "Showcase a portfolio project"})
	}
	if !s.HasEducation() {
		steps = append(steps, Step{Key: "add_education", Label: "Add your education"})
	}
	if s.SocialLinks < t.CompleteSocialLinks {
		steps = append(steps, Step{Key: "add_social_links", Label: "Link your professional profiles"})
	}
	if s.CompletenessPct < t.CompletePct {
		steps = append(steps, Step{Key: "complete_profile_details", Label: "Fill in the remaining profile details"})
	}

	return steps
}
