// AngelaMos | 2026
// repository.go

package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListAcceptedMemberIDs(ctx context.Context, companyID string) ([]string, error)
	ListActiveStudentEmails(ctx context.Context, academyID string) ([]string, error)
	GetMembership(ctx context.Context, companyID, userID string) (*Membership, error)
	UpdateMembershipStatus(ctx context.Context, id string, status MembershipStatus) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	query := `
		SELECT id, name, business_type, status, created_at, updated_at
		FROM companies
		WHERE id = $1`

	var c Company
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &c, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `
		UPDATE companies
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update company status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update company status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update company status: %w", core.ErrNotFound)
	}

	return nil
}

// ListAcceptedMemberIDs returns members in a stable order so cascade audit
// rows are written deterministically.
func (r *repository) ListAcceptedMemberIDs(
	ctx context.Context,
	companyID string,
) ([]string, error) {
	query := `
		SELECT user_id
		FROM company_members
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at, user_id`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, companyID, MembershipAccepted); err != nil {
		return nil, fmt.Errorf("list accepted members: %w", err)
	}

	return ids, nil
}

func (r *repository) ListActiveStudentEmails(
	ctx context.Context,
	academyID string,
) ([]string, error) {
	query, args, err := sqlx.In(`
		SELECT email
		FROM academy_students
		WHERE academy_id = ? AND status IN (?)
		ORDER BY created_at, email`,
		academyID, ActiveStudentStatuses)
	if err != nil {
		return nil, fmt.Errorf("build student query: %w", err)
	}

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list academy students: %w", err)
	}

	return emails, nil
}

func (r *repository) GetMembership(
	ctx context.Context,
	companyID, userID string,
) (*Membership, error) {
	query := `
		SELECT id, company_id, user_id, status, role_in_company, created_at, updated_at
		FROM company_members
		WHERE company_id = $1 AND user_id = $2`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, companyID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get membership: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	return &m, nil
}

func (r *repository) UpdateMembershipStatus(
	ctx context.Context,
	id string,
	status MembershipStatus,
) error {
	query := `
		UPDATE company_members
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update membership status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update membership status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update membership status: %w", core.ErrNotFound)
	}

	return nil
}
