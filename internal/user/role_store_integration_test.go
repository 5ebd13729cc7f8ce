// AngelaMos | 2026
// role_store_integration_test.go

//go:build integration

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/testutil"
	"github.com/carterperez-dev/talenthub/internal/tier"
)

func TestRoleStoreChangeRole(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewPostgres(t)
	fx := testutil.NewFixtures(t, db)

	adminID := fx.User("ops@example.com", "admin")
	userID := fx.User("dev@example.com", "freemium_talent")

	auditRepo := audit.NewRepository(db)
	store := NewRoleStore(db, NewRepository(db), auditRepo)

	err := store.ChangeRole(ctx, &audit.Entry{
		UserID:    userID,
		ChangedBy: adminID,
		OldRole:   tier.FreemiumTalent,
		NewRole:   tier.PremiumTalent,
		Reason:    audit.ReasonAcademyToggle,
	})
	require.NoError(t, err)

	role, err := store.GetRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, tier.PremiumTalent, role)

	id, role, err := store.FindByEmail(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, tier.PremiumTalent, role)

	entries, total, err := auditRepo.ListByUser(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, audit.ReasonAcademyToggle, entries[0].Reason)
}

func TestRoleStoreStaleOldRoleRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewPostgres(t)
	fx := testutil.NewFixtures(t, db)

	adminID := fx.User("ops@example.com", "admin")
	userID := fx.User("dev@example.com", "premium_talent")

	auditRepo := audit.NewRepository(db)
	store := NewRoleStore(db, NewRepository(db), auditRepo)

	err := store.ChangeRole(ctx, &audit.Entry{
		UserID:    userID,
		ChangedBy: adminID,
		OldRole:   tier.FreemiumTalent,
		NewRole:   tier.PremiumTalent,
		Reason:    audit.ReasonAcademyToggle,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoleChanged))

	_, total, err := auditRepo.ListByUser(ctx, userID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRoleStoreFindByEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewPostgres(t)
	fx := testutil.NewFixtures(t, db)

	userID := fx.User("Ana.Lima@School.test", "freemium_talent")
	store := NewRoleStore(db, NewRepository(db), audit.NewRepository(db))

	for _, email := range []string{"Ana.Lima@School.test", "ana.lima@school.test", " ANA.LIMA@SCHOOL.TEST "} {
		id, role, err := store.FindByEmail(ctx, email)
		require.NoError(t, err, email)
		assert.Equal(t, userID, id)
		assert.Equal(t, tier.FreemiumTalent, role)
	}
}

func TestRoleStoreUnknownUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewPostgres(t)

	store := NewRoleStore(db, NewRepository(db), audit.NewRepository(db))

	_, _, err := store.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
