// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/talenthub/internal/core"
)

type SignalSource interface {
	Signals(ctx context.Context, userID string) (Signals, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) SignalSource {
	return &repository{db: db}
}

// Signals returns zero counts for a user with no profile rows yet.
func (r *repository) Signals(ctx context.Context, userID string) (Signals, error) {
	query := `
		SELECT
			COALESCE((SELECT completeness_pct FROM talent_profiles WHERE user_id = $1), 0) AS completeness_pct,
			(SELECT COUNT(*) FROM portfolio_items WHERE user_id = $1) AS portfolio_items,
			(SELECT COUNT(*) FROM experiences WHERE user_id = $1) AS experiences,
			(SELECT COUNT(*) FROM educations WHERE user_id = $1) AS educations,
			(SELECT COUNT(*) FROM social_links WHERE user_id = $1) AS social_links`

	var s Signals
	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		return Signals{}, fmt.Errorf("read profile signals: %w", err)
	}

	return s, nil
}
