// AngelaMos | 2026
// repository.go

package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/talenthub/internal/core"
)

const settingsCategory = "system"

var ErrInvalidLimit = errors.New("limit must be a non-negative integer")

// SettingsRepository reads monthly limits from system_settings.
type SettingsRepository struct {
	db core.DBTX
}

func NewSettingsRepository(db core.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) MonthlyLimit(ctx context.Context, key string) (int, error) {
	query := `
		SELECT value
		FROM system_settings
		WHERE category = $1 AND key = $2`

	var raw string
	err := r.db.GetContext(ctx, &raw, query, settingsCategory, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get setting %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get setting %s: %w", key, err)
	}

	return parseLimit(raw)
}

func (r *SettingsRepository) SetMonthlyLimit(ctx context.Context, key string, limit int) error {
	if limit < 0 {
		return fmt.Errorf("set setting %s: %w", key, ErrInvalidLimit)
	}

	query := `
		INSERT INTO system_settings (category, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.ExecContext(ctx, query, settingsCategory, key, strconv.Itoa(limit)); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("parse limit %q: %w", raw, ErrInvalidLimit)
	}
	return n, nil
}

type ApplicationRepository struct {
	db core.DBTX
}

func NewApplicationRepository(db core.DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) CountTalentApplications(
	ctx context.Context,
	userID string,
	since time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM applications
		WHERE talent_user_id = $1 AND created_at >= $2`

	var n int
	if err := r.db.GetContext(ctx, &n, query, userID, since); err != nil {
		return 0, fmt.Errorf("count talent applications: %w", err)
	}
	return n, nil
}

func (r *ApplicationRepository) CountCompanyApplications(
	ctx context.Context,
	companyID string,
	since time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM applications
		WHERE company_id = $1 AND created_at >= $2`

	var n int
	if err := r.db.GetContext(ctx, &n, query, companyID, since); err != nil {
		return 0, fmt.Errorf("count company applications: %w", err)
	}
	return n, nil
}
