// AngelaMos | 2026
// repository.go

package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Repository interface {
	// Append writes through db so callers can include it in a transaction.
	Append(ctx context.Context, db core.DBTX, entry *Entry) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Entry, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, db core.DBTX, entry *Entry) error {
	if db == nil {
		db = r.db
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO role_change_audit (id, user_id, changed_by, old_role, new_role, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID,
		entry.UserID,
		entry.ChangedBy,
		entry.OldRole,
		entry.NewRole,
		entry.Reason,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]Entry, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM role_change_audit WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	query := `
		SELECT id, user_id, changed_by, old_role, new_role, reason, created_at
		FROM role_change_audit
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, total, nil
}
