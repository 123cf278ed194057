package handler

import (
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type updateProfileRequest struct {
	FirstName          *string `json:"first_name" validate:"omitempty,max=150"`
	LastName           *string `json:"last_name" validate:"omitempty,max=150"`
	Bio                *string `json:"bio" validate:"omitempty,max=500"`
	Location           *string `json:"location" validate:"omitempty,max=200"`
	PhoneNumber        *string `json:"phone_number" validate:"omitempty,max=17"`
	LinkedinProfile    *string `json:"linkedin_profile" validate:"omitempty,url,max=200"`
	CurrentPosition    *string `json:"current_position" validate:"omitempty,max=200"`
	Company            *string `json:"company" validate:"omitempty,max=200"`
	GraduationYear     *int    `json:"graduation_year"`
	Department         *string `json:"department" validate:"omitempty,max=100"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
}

func (r updateProfileRequest) toPatch() ports.ProfilePatch {
	return ports.ProfilePatch{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Bio:                r.Bio,
		Location:           r.Location,
		PhoneNumber:        r.PhoneNumber,
		LinkedinProfile:    r.LinkedinProfile,
		CurrentPosition:    r.CurrentPosition,
		Company:            r.Company,
		GraduationYear:     r.GraduationYear,
		Department:         r.Department,
		EmailNotifications: r.EmailNotifications,
		PushNotifications:  r.PushNotifications,
	}
}

type listUsersQuery struct {
	PageQuery
	Search         string `query:"search"`
	Status         string `query:"status" validate:"omitempty,oneof=active pending suspended under_review"`
	UserType       string `query:"user_type" validate:"omitempty,oneof=student alumni faculty admin recruiter"`
	Department     string `query:"department"`
	GraduationYear int    `query:"graduation_year"`
}

func (q listUsersQuery) toFilter() ports.ListUsersFilter {
	return ports.ListUsersFilter{
		Search:         q.Search,
		Status:         q.Status,
		UserType:       q.UserType,
		Department:     q.Department,
		GraduationYear: q.GraduationYear,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending suspended under_review"`
}

type interestSelection struct {
	InterestID       uint `json:"interest_id" validate:"required"`
	ProficiencyLevel int  `json:"proficiency_level" validate:"gte=1,lte=5"`
}

type setInterestsRequest struct {
	Interests []interestSelection `json:"interests" validate:"dive"`
}

func (r setInterestsRequest) toInputs() []ports.InterestInput {
	out := make([]ports.InterestInput, 0, len(r.Interests))
	for _, i := range r.Interests {
		out = append(out, ports.InterestInput{InterestID: i.InterestID, ProficiencyLevel: i.ProficiencyLevel})
	}
	return out
}

type activityQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=200"`
}

type profileResponse struct {
	*domain.User
	FullName string `json:"full_name"`
}

func toProfile(u *domain.User) profileResponse {
	return profileResponse{User: u, FullName: u.FullName()}
}
