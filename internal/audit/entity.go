// AngelaMos | 2026
// entity.go

package audit

import (
	"time"

	"github.com/carterperez-dev/talenthub/internal/tier"
)

const (
	ReasonSubscriptionChange = "subscription change"
	ReasonAcademyToggle      = "academy premium toggle"
	ReasonMembershipApproval = "membership approved"
	ReasonAdminOverride      = "admin override"
)

// Entry is one effective role change. Entries are append-only.
type Entry struct {
	ID        string        `db:"id"`
	UserID    string        `db:"user_id"`
	ChangedBy string        `db:"changed_by"`
	OldRole   tier.RoleTier `db:"old_role"`
	NewRole   tier.RoleTier `db:"new_role"`
	Reason    string        `db:"reason"`
	CreatedAt time.Time     `db:"created_at"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ChangedBy string    `json:"changed_by"`
	OldRole   string    `json:"old_role"`
	NewRole   string    `json:"new_role"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		ChangedBy: e.ChangedBy,
		OldRole:   e.OldRole.String(),
		NewRole:   e.NewRole.String(),
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToEntryResponse(&entries[i]))
	}
	return out
}
