// AngelaMos | 2026
// tier.go

package tier

import (
	"fmt"
	"strings"
)

// RoleTier is the single entitlement level a principal holds at any time.
type RoleTier string

const (
	FreemiumTalent   RoleTier = "freemium_talent"
	PremiumTalent    RoleTier = "premium_talent"
	FreemiumBusiness RoleTier = "freemium_business"
	PremiumBusiness  RoleTier = "premium_business"
	AcademyPremium   RoleTier = "academy_premium"
	Admin            RoleTier = "admin"
)

type PrincipalKind string

const (
	KindTalent   PrincipalKind = "talent"
	KindBusiness PrincipalKind = "business"
)

// Level is the coarse freemium/premium split used to key configuration.
type Level string

const (
	LevelFreemium Level = "freemium"
	LevelPremium  Level = "premium"
)

var all = []RoleTier{
	FreemiumTalent,
	PremiumTalent,
	FreemiumBusiness,
	PremiumBusiness,
	AcademyPremium,
	Admin,
}

// Resolve maps a principal's subscription facts to its canonical tier.
// It never returns Admin; callers special-case admins before calling.
func Resolve(kind PrincipalKind, isPremium, isAcademy bool) RoleTier {
	if kind == KindTalent {
		if isPremium {
			return PremiumTalent
		}
		return FreemiumTalent
	}

	switch {
	case isPremium && isAcademy:
		return AcademyPremium
	case isPremium:
		return PremiumBusiness
	default:
		return FreemiumBusiness
	}
}

func Parse(s string) (RoleTier, error) {
	candidate := RoleTier(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range all {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown role tier %q", s)
}

func (t RoleTier) String() string {
	return string(t)
}

func (t RoleTier) IsAdmin() bool {
	return t == Admin
}

func (t RoleTier) IsTalent() bool {
	return t == FreemiumTalent || t == PremiumTalent
}

func (t RoleTier) IsBusiness() bool {
	return t == FreemiumBusiness || t == PremiumBusiness || t == AcademyPremium
}

func (t RoleTier) IsPremium() bool {
	return t == PremiumTalent || t == PremiumBusiness || t == AcademyPremium
}

// Kind reports the principal kind a tier belongs to. Admin has none.
func (t RoleTier) Kind() (PrincipalKind, bool) {
	switch {
	case t.IsTalent():
		return KindTalent, true
	case t.IsBusiness():
		return KindBusiness, true
	default:
		return "", false
	}
}

// LevelOf derives the configuration level for a possibly unknown role string.
// Unknown roles fall back to freemium unless they plainly name a premium tier.
func LevelOf(role string) Level {
	if t, err := Parse(role); err == nil {
		if t.IsPremium() {
			return LevelPremium
		}
		return LevelFreemium
	}

	if strings.Contains(strings.ToLower(role), "premium") {
		return LevelPremium
	}
	return LevelFreemium
}
