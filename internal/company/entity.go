// AngelaMos | 2026
// entity.go

package company

import (
	"time"
)

type BusinessType string

const (
	BusinessTypeCompany BusinessType = "company"
	BusinessTypeAcademy BusinessType = "academy"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPremium   Status = "premium"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
)

type Company struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	BusinessType BusinessType `db:"business_type"`
	Status       Status       `db:"status"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (c *Company) IsAcademy() bool {
	return c.BusinessType == BusinessTypeAcademy
}

func (c *Company) IsPremium() bool {
	return c.Status == StatusPremium
}

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
	MembershipRejected MembershipStatus = "rejected"
)

type Membership struct {
	ID            string           `db:"id"`
	CompanyID     string           `db:"company_id"`
	UserID        string           `db:"user_id"`
	Status        MembershipStatus `db:"status"`
	RoleInCompany string           `db:"role_in_company"`
	CreatedAt     time.Time        `db:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at"`
}

// ActiveStudentStatuses are the academy enrolment states that receive
// academy-granted entitlements.
var ActiveStudentStatuses = []string{"enrolled", "graduated", "active"}
