// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/talenthub/internal/tier"
)

type User struct {
	ID             string        `db:"id"`
	Email          string        `db:"email"`
	Name           string        `db:"name"`
	Role           tier.RoleTier `db:"role"`
	EmailConfirmed bool          `db:"email_confirmed"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
