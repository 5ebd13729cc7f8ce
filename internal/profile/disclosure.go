// AngelaMos | 2026
// disclosure.go

package profile

import (
	"slices"
)

type Feature string

const (
	FeatureProfileEditor       Feature = "profile_editor"
	FeatureOnboarding          Feature = "onboarding"
	FeatureBrowseOpportunities Feature = "browse_opportunities"
	FeatureSettings            Feature = "settings"
	FeatureMessaging           Feature = "messaging"
	FeatureApply               Feature = "apply_to_opportunities"
	FeatureMarketplace         Feature = "marketplace"
	FeaturePortfolioShowcase   Feature = "portfolio_showcase"
	FeatureFeaturedListing     Feature = "featured_listing"
	FeatureAnalytics           Feature = "analytics"
)

// unlocks lists what each state adds on top of every earlier state.
var unlocks = []struct {
	state    State
	features []Feature
}{
	{StateNew, []Feature{FeatureProfileEditor, FeatureOnboarding}},
	{StateInProgress, []Feature{FeatureBrowseOpportunities, FeatureSettings, FeatureMessaging}},
	{StateEstablished, []Feature{FeatureApply, FeatureMarketplace, FeaturePortfolioShowcase}},
	{StateComplete, []Feature{FeatureFeaturedListing, FeatureAnalytics}},
}

type Disclosure struct {
	State    State     `json:"state"`
	Features []Feature `json:"features"`
}

func DisclosureFor(s State) Disclosure {
	var features []Feature
	for _, u := range unlocks {
		if u.state > s {
			break
		}
		features = append(features, u.features...)
	}
	return Disclosure{State: s, Features: features}
}

func (d Disclosure) Allows(f Feature) bool {
	return slices.Contains(d.Features, f)
}
