// AngelaMos | 2026
// postgres.go

//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/migrations"
)

// NewPostgres returns a migrated database. TEST_DATABASE_URL reuses an
// existing server instead of starting a container.
func NewPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("talenthub"),
			postgres.WithUsername("talenthub"),
			postgres.WithPassword("talenthub"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = container.Terminate(context.Background()) //nolint:errcheck // test teardown
		})

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, core.ApplyMigrations(ctx, db, migrations.FS))
	return db
}

type Fixtures struct {
	t  *testing.T
	db *sqlx.DB
}

func NewFixtures(t *testing.T, db *sqlx.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) User(email, role string) string {
	f.t.Helper()

	var id string
	require.NoError(f.t, f.db.GetContext(context.Background(), &id,
		`INSERT INTO users (email, role, email_confirmed) VALUES ($1, $2, TRUE) RETURNING id`,
		email, role))
	return id
}

func (f *Fixtures) Company(name, businessType, status string) string {
	f.t.Helper()

	var id string
	require.NoError(f.t, f.db.GetContext(context.Background(), &id,
		`INSERT INTO companies (name, business_type, status) VALUES ($1, $2, $3) RETURNING id`,
		name, businessType, status))
	return id
}

func (f *Fixtures) Member(companyID, userID, status string) string {
	f.t.Helper()

	var id string
	require.NoError(f.t, f.db.GetContext(context.Background(), &id,
		`INSERT INTO company_members (company_id, user_id, status) VALUES ($1, $2, $3) RETURNING id`,
		companyID, userID, status))
	return id
}

func (f *Fixtures) Student(academyID, email, status string) {
	f.t.Helper()

	_, err := f.db.ExecContext(context.Background(),
		`INSERT INTO academy_students (academy_id, email, status) VALUES ($1, $2, $3)`,
		academyID, email, status)
	require.NoError(f.t, err)
}

func (f *Fixtures) Setting(key, value string) {
	f.t.Helper()

	_, err := f.db.ExecContext(context.Background(),
		`INSERT INTO system_settings (category, key, value) VALUES ('system', $1, $2)
		 ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	require.NoError(f.t, err)
}

func (f *Fixtures) Application(talentUserID, companyID any) {
	f.t.Helper()

	_, err := f.db.ExecContext(context.Background(),
		`INSERT INTO applications (talent_user_id, company_id) VALUES ($1, $2)`,
		talentUserID, companyID)
	require.NoError(f.t, err)
}
