// AngelaMos | 2026
// tier_test.go

package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		kind      PrincipalKind
		isPremium bool
		isAcademy bool
		want      RoleTier
	}{
		{KindBusiness, true, true, AcademyPremium},
		{KindBusiness, true, false, PremiumBusiness},
		{KindBusiness, false, true, FreemiumBusiness},
		{KindBusiness, false, false, FreemiumBusiness},
		{KindTalent, true, false, PremiumTalent},
		{KindTalent, true, true, PremiumTalent},
		{KindTalent, false, false, FreemiumTalent},
		{KindTalent, false, true, FreemiumTalent},
	}

	for _, tt := range tests {
		got := Resolve(tt.kind, tt.isPremium, tt.isAcademy)
		assert.Equal(t, tt.want, got,
			"Resolve(%s, premium=%v, academy=%v)", tt.kind, tt.isPremium, tt.isAcademy)
		assert.NotEqual(t, Admin, got)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(" Premium_Business ")
	require.NoError(t, err)
	assert.Equal(t, PremiumBusiness, got)

	_, err = Parse("superuser")
	assert.Error(t, err)
}

func TestPredicates(t *testing.T) {
	assert.True(t, FreemiumTalent.IsTalent())
	assert.False(t, FreemiumTalent.IsBusiness())
	assert.True(t, AcademyPremium.IsBusiness())
	assert.True(t, AcademyPremium.IsPremium())
	assert.False(t, Admin.IsTalent())
	assert.False(t, Admin.IsBusiness())
	assert.True(t, Admin.IsAdmin())

	_, ok := Admin.Kind()
	assert.False(t, ok)

	kind, ok := PremiumTalent.Kind()
	require.True(t, ok)
	assert.Equal(t, KindTalent, kind)
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, LevelFreemium, LevelOf("freemium_talent"))
	assert.Equal(t, LevelPremium, LevelOf("academy_premium"))
	assert.Equal(t, LevelFreemium, LevelOf("admin"))
	assert.Equal(t, LevelFreemium, LevelOf(""))
	assert.Equal(t, LevelPremium, LevelOf("legacy_premium_plus"))
	assert.Equal(t, LevelFreemium, LevelOf("student"))
}
