// AngelaMos | 2026
// engine_test.go

package cascade

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

const actorID = "admin-1"

type fakeCompanies struct {
	companies map[string]*company.Company
	members   map[string][]string
	students  map[string][]string
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{
		companies: map[string]*company.Company{},
		members:   map[string][]string{},
		students:  map[string][]string{},
	}
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCompanies) UpdateStatus(_ context.Context, id string, status company.Status) error {
	f.companies[id].Status = status
	return nil
}

func (f *fakeCompanies) ListAcceptedMemberIDs(_ context.Context, id string) ([]string, error) {
	return f.members[id], nil
}

func (f *fakeCompanies) ListActiveStudentEmails(_ context.Context, id string) ([]string, error) {
	return f.students[id], nil
}

type fakeRoles struct {
	roles   map[string]tier.RoleTier
	emails  map[string]string
	entries []audit.Entry
	failOn  map[string]bool
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{
		roles:  map[string]tier.RoleTier{},
		emails: map[string]string{},
		failOn: map[string]bool{},
	}
}

func (f *fakeRoles) add(id, email string, role tier.RoleTier) {
	f.roles[id] = role
	if email != "" {
		f.emails[email] = id
	}
}

func (f *fakeRoles) GetRole(_ context.Context, userID string) (tier.RoleTier, error) {
	r, ok := f.roles[userID]
	if !ok {
		return "", fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return r, nil
}

func (f *fakeRoles) FindByEmail(ctx context.Context, email string) (string, tier.RoleTier, error) {
	id, ok := f.emails[email]
	if !ok {
		return "", "", fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	role, err := f.GetRole(ctx, id)
	return id, role, err
}

func (f *fakeRoles) ChangeRole(_ context.Context, entry *audit.Entry) error {
	if f.failOn[entry.UserID] {
		return errors.New("connection reset")
	}
	f.roles[entry.UserID] = entry.NewRole
	f.entries = append(f.entries, *entry)
	return nil
}

func newEngine(companies *fakeCompanies, roles *fakeRoles) *Engine {
	return NewEngine(companies, roles, nil)
}

func TestApplySubscriptionChangeUpgrade(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["c1"] = &company.Company{
		ID:           "c1",
		Name:         "Acme",
		BusinessType: company.BusinessTypeCompany,
		Status:       company.StatusActive,
	}
	companies.members["c1"] = []string{"user-a", "user-b"}

	roles := newFakeRoles()
	roles.add("user-a", "", tier.FreemiumBusiness)
	roles.add("user-b", "", tier.Admin)

	res, err := newEngine(companies, roles).ApplySubscriptionChange(
		context.Background(),
		SubscriptionChange{CompanyID: "c1", Subscription: SubscriptionPremium, ActorID: actorID},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"user-a"}, res.Succeeded)
	assert.Empty(t, res.Failed)
	assert.Equal(t, []string{"user-b"}, res.Skipped)
	assert.Equal(t, SkipAdmin, res.Skips[0].Reason)

	assert.Equal(t, tier.PremiumBusiness, roles.roles["user-a"])
	assert.Equal(t, tier.Admin, roles.roles["user-b"])

	require.Len(t, roles.entries, 1)
	entry := roles.entries[0]
	assert.Equal(t, "user-a", entry.UserID)
	assert.Equal(t, actorID, entry.ChangedBy)
	assert.Equal(t, tier.FreemiumBusiness, entry.OldRole)
	assert.Equal(t, tier.PremiumBusiness, entry.NewRole)
	assert.Equal(t, audit.ReasonSubscriptionChange, entry.Reason)

	assert.Equal(t, company.StatusPremium, companies.companies["c1"].Status)
	assert.Equal(t, company.StatusActive, res.Company.OldStatus)
	assert.Equal(t, company.StatusPremium, res.Company.NewStatus)
	assert.Equal(t, tier.PremiumBusiness, res.Company.NewMemberRole)
}

func TestApplySubscriptionChangeIsIdempotent(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["c1"] = &company.Company{
		ID:           "c1",
		BusinessType: company.BusinessTypeCompany,
		Status:       company.StatusActive,
	}
	companies.members["c1"] = []string{"user-a", "user-b"}

	roles := newFakeRoles()
	roles.add("user-a", "", tier.FreemiumBusiness)
	roles.add("user-b", "", tier.FreemiumBusiness)

	engine := newEngine(companies, roles)
	change := SubscriptionChange{CompanyID: "c1", Subscription: SubscriptionPremium, ActorID: actorID}

	first, err := engine.ApplySubscriptionChange(context.Background(), change)
	require.NoError(t, err)
	assert.Len(t, first.Succeeded, 2)

	second, err := engine.ApplySubscriptionChange(context.Background(), change)
	require.NoError(t, err)
	assert.Empty(t, second.Succeeded)
	assert.Len(t, second.Skipped, 2)
	assert.Len(t, roles.entries, 2, "re-run must not write audit entries")
}

func TestApplySubscriptionChangeAcademyDowngrade(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["a1"] = &company.Company{
		ID:           "a1",
		BusinessType: company.BusinessTypeAcademy,
		Status:       company.StatusPremium,
	}
	companies.members["a1"] = []string{"staff-1"}

	roles := newFakeRoles()
	roles.add("staff-1", "", tier.AcademyPremium)

	res, err := newEngine(companies, roles).ApplySubscriptionChange(
		context.Background(),
		SubscriptionChange{CompanyID: "a1", Subscription: SubscriptionFreemium, ActorID: actorID},
	)
	require.NoError(t, err)

	assert.Equal(t, tier.FreemiumBusiness, res.Company.NewMemberRole)
	assert.Equal(t, company.StatusActive, res.Company.NewStatus)
	assert.Equal(t, tier.FreemiumBusiness, roles.roles["staff-1"])
}

func TestApplySubscriptionChangeIsolatesFailures(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["c1"] = &company.Company{
		ID:           "c1",
		BusinessType: company.BusinessTypeCompany,
		Status:       company.StatusActive,
	}
	companies.members["c1"] = []string{"user-a", "user-b", "ghost", "user-c"}

	roles := newFakeRoles()
	roles.add("user-a", "", tier.FreemiumBusiness)
	roles.add("user-b", "", tier.FreemiumBusiness)
	roles.add("user-c", "", tier.FreemiumBusiness)
	roles.failOn["user-b"] = true

	res, err := newEngine(companies, roles).ApplySubscriptionChange(
		context.Background(),
		SubscriptionChange{CompanyID: "c1", Subscription: SubscriptionPremium, ActorID: actorID},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"user-a", "user-c"}, res.Succeeded)
	assert.Equal(t, []string{"user-b", "ghost"}, res.Failed)
	assert.Equal(t, 4, res.Total())
	require.Len(t, res.Failures, 2)
	assert.ErrorIs(t, res.Failures[1].Err, core.ErrNotFound)

	assert.Equal(t, tier.FreemiumBusiness, roles.roles["user-b"])
	assert.Equal(t, tier.PremiumBusiness, roles.roles["user-c"])
}

func TestApplySubscriptionChangeRejects(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["c1"] = &company.Company{ID: "c1", Status: company.StatusActive}
	engine := newEngine(companies, newFakeRoles())

	tests := []struct {
		name    string
		change  SubscriptionChange
		wantErr error
	}{
		{
			name:    "unknown subscription",
			change:  SubscriptionChange{CompanyID: "c1", Subscription: "gold", ActorID: actorID},
			wantErr: ErrInvalidSubscription,
		},
		{
			name:    "missing actor",
			change:  SubscriptionChange{CompanyID: "c1", Subscription: SubscriptionPremium},
			wantErr: ErrMissingActor,
		},
		{
			name:    "unknown company",
			change:  SubscriptionChange{CompanyID: "nope", Subscription: SubscriptionPremium, ActorID: actorID},
			wantErr: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ApplySubscriptionChange(context.Background(), tt.change)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, company.StatusActive, companies.companies["c1"].Status)
}

func TestApplyAcademyStudentPremiumToggle(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["a1"] = &company.Company{
		ID:           "a1",
		BusinessType: company.BusinessTypeAcademy,
		Status:       company.StatusPremium,
	}
	companies.students["a1"] = []string{
		"ana@example.com",
		"ben@example.com",
		"staff@example.com",
		"root@example.com",
		"missing@example.com",
		"flaky@example.com",
	}

	roles := newFakeRoles()
	roles.add("ana", "ana@example.com", tier.FreemiumTalent)
	roles.add("ben", "ben@example.com", tier.PremiumTalent)
	roles.add("staff", "staff@example.com", tier.FreemiumBusiness)
	roles.add("root", "root@example.com", tier.Admin)
	roles.add("flaky", "flaky@example.com", tier.FreemiumTalent)
	roles.failOn["flaky"] = true

	res, err := newEngine(companies, roles).ApplyAcademyStudentPremiumToggle(
		context.Background(),
		AcademyToggle{AcademyID: "a1", EnablePremium: true, ActorID: actorID},
	)
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalStudents)
	assert.Equal(t, tier.PremiumTalent, res.TargetRole)
	assert.Equal(t, []string{"ana@example.com"}, res.Succeeded)
	assert.Equal(t, []string{"flaky@example.com"}, res.Failed)
	assert.Equal(t, []string{
		"ben@example.com",
		"staff@example.com",
		"root@example.com",
		"missing@example.com",
	}, res.Skipped)
	assert.Equal(t, res.TotalStudents, res.Total())

	assert.Equal(t, tier.PremiumTalent, roles.roles["ana"])
	assert.Equal(t, tier.FreemiumBusiness, roles.roles["staff"])
	assert.Equal(t, tier.Admin, roles.roles["root"])

	require.Len(t, roles.entries, 1)
	assert.Equal(t, audit.ReasonAcademyToggle, roles.entries[0].Reason)

	reasons := map[string]SkipReason{}
	for _, s := range res.Skips {
		reasons[s.Member] = s.Reason
	}
	assert.Equal(t, SkipAlreadyTarget, reasons["ben@example.com"])
	assert.Equal(t, SkipNotTalent, reasons["staff@example.com"])
	assert.Equal(t, SkipAdmin, reasons["root@example.com"])
	assert.Equal(t, SkipNoAccount, reasons["missing@example.com"])
}

func TestApplyAcademyStudentPremiumToggleDisable(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["a1"] = &company.Company{ID: "a1", BusinessType: company.BusinessTypeAcademy}
	companies.students["a1"] = []string{"ana@example.com"}

	roles := newFakeRoles()
	roles.add("ana", "ana@example.com", tier.PremiumTalent)

	res, err := newEngine(companies, roles).ApplyAcademyStudentPremiumToggle(
		context.Background(),
		AcademyToggle{AcademyID: "a1", EnablePremium: false, ActorID: actorID},
	)
	require.NoError(t, err)

	assert.Equal(t, tier.FreemiumTalent, res.TargetRole)
	assert.Equal(t, []string{"ana@example.com"}, res.Succeeded)
	assert.Equal(t, tier.FreemiumTalent, roles.roles["ana"])
}

func TestApplyAcademyStudentPremiumToggleRequiresAcademy(t *testing.T) {
	companies := newFakeCompanies()
	companies.companies["c1"] = &company.Company{ID: "c1", BusinessType: company.BusinessTypeCompany}
	engine := newEngine(companies, newFakeRoles())

	_, err := engine.ApplyAcademyStudentPremiumToggle(
		context.Background(),
		AcademyToggle{AcademyID: "c1", EnablePremium: true, ActorID: actorID},
	)
	assert.ErrorIs(t, err, ErrNotAcademy)

	_, err = engine.ApplyAcademyStudentPremiumToggle(
		context.Background(),
		AcademyToggle{AcademyID: "missing", EnablePremium: true, ActorID: actorID},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestParseSubscription(t *testing.T) {
	s, err := ParseSubscription("premium")
	require.NoError(t, err)
	assert.Equal(t, company.StatusPremium, s.Status())

	s, err = ParseSubscription("freemium")
	require.NoError(t, err)
	assert.Equal(t, company.StatusActive, s.Status())

	_, err = ParseSubscription("PREMIUM")
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}
