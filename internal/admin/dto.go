// AngelaMos | 2026
// dto.go

package admin

import (
	"github.com/carterperez-dev/talenthub/internal/cascade"
	"github.com/carterperez-dev/talenthub/internal/company"
)

// Admin endpoints keep the camelCase field names existing console clients
// already send and read.

type ChangeSubscriptionRequest struct {
	CompanyID       string `json:"companyId"       validate:"required,uuid"`
	NewSubscription string `json:"newSubscription" validate:"required,oneof=freemium premium"`
}

type CompanySummaryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OldStatus     string `json:"oldStatus"`
	NewStatus     string `json:"newStatus"`
	NewMemberRole string `json:"newMemberRole"`
}

type FailedMember struct {
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

type ChangeSubscriptionResponse struct {
	Company        CompanySummaryResponse `json:"company"`
	MembersUpdated int                    `json:"membersUpdated"`
	MembersFailed  int                    `json:"membersFailed"`
	MembersSkipped int                    `json:"membersSkipped"`
	FailedMembers  []FailedMember         `json:"failedMembers,omitempty"`
}

func ToChangeSubscriptionResponse(res *cascade.SubscriptionResult) ChangeSubscriptionResponse {
	out := ChangeSubscriptionResponse{
		Company: CompanySummaryResponse{
			ID:            res.Company.ID,
			Name:          res.Company.Name,
			OldStatus:     string(res.Company.OldStatus),
			NewStatus:     string(res.Company.NewStatus),
			NewMemberRole: res.Company.NewMemberRole.String(),
		},
		MembersUpdated: len(res.Succeeded),
		MembersFailed:  len(res.Failed),
		MembersSkipped: len(res.Skipped),
	}

	for _, f := range res.Failures {
		out.FailedMembers = append(out.FailedMembers, FailedMember{
			UserID: f.Member,
			Error:  f.Err.Error(),
		})
	}

	return out
}

type BulkAcademyRequest struct {
	AcademyID     string `json:"academyId"     validate:"required,uuid"`
	EnablePremium *bool  `json:"enablePremium" validate:"required"`
}

type BulkAcademyResponse struct {
	StudentsUpdated int      `json:"studentsUpdated"`
	StudentsFailed  int      `json:"studentsFailed"`
	StudentsSkipped int      `json:"studentsSkipped"`
	TotalStudents   int      `json:"totalStudents"`
	EnablePremium   bool     `json:"enablePremium"`
	Errors          []string `json:"errors,omitempty"`
}

func ToBulkAcademyResponse(res *cascade.AcademyResult) BulkAcademyResponse {
	out := BulkAcademyResponse{
		StudentsUpdated: len(res.Succeeded),
		StudentsFailed:  len(res.Failed),
		StudentsSkipped: len(res.Skipped),
		TotalStudents:   res.TotalStudents,
		EnablePremium:   res.EnablePremium,
	}

	for _, f := range res.Failures {
		out.Errors = append(out.Errors, f.Member+": "+f.Err.Error())
	}

	return out
}

type ApprovalResponse struct {
	MembershipID string `json:"membershipId"`
	CompanyID    string `json:"companyId"`
	UserID       string `json:"userId"`
	Status       string `json:"status"`
	OldRole      string `json:"oldRole"`
	NewRole      string `json:"newRole"`
	RoleChanged  bool   `json:"roleChanged"`
}

func ToApprovalResponse(a *company.Approval) ApprovalResponse {
	return ApprovalResponse{
		MembershipID: a.Membership.ID,
		CompanyID:    a.Membership.CompanyID,
		UserID:       a.Membership.UserID,
		Status:       string(a.Membership.Status),
		OldRole:      a.OldRole.String(),
		NewRole:      a.NewRole.String(),
		RoleChanged:  a.RoleChanged,
	}
}
