package handler

import (
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type mentorProfileRequest struct {
	Bio               string   `json:"bio" validate:"required,max=2000"`
	ExpertiseAreas    []string `json:"expertise_areas" validate:"required,min=1,max=20,dive,required,max=100"`
	YearsOfExperience int      `json:"years_of_experience" validate:"gte=0,lte=80"`
	CurrentCompany    string   `json:"current_company" validate:"max=200"`
	CurrentPosition   string   `json:"current_position" validate:"max=200"`
	Availability      string   `json:"availability_status" validate:"omitempty,oneof=available busy unavailable"`
	MaxMentees        int      `json:"max_mentees" validate:"gte=0,lte=50"`
	Timezone          string   `json:"timezone" validate:"max=50"`
}

func (r mentorProfileRequest) toInput() ports.MentorProfileInput {
	return ports.MentorProfileInput{
		Bio:               r.Bio,
		ExpertiseAreas:    r.ExpertiseAreas,
		YearsOfExperience: r.YearsOfExperience,
		CurrentCompany:    r.CurrentCompany,
		CurrentPosition:   r.CurrentPosition,
		Availability:      domain.Availability(r.Availability),
		MaxMentees:        r.MaxMentees,
		Timezone:          r.Timezone,
	}
}

type listMentorsQuery struct {
	PageQuery
	Expertise    string `query:"expertise"`
	Availability string `query:"availability" validate:"omitempty,oneof=available busy unavailable"`
}

func (q listMentorsQuery) toFilter() ports.ListMentorsFilter {
	return ports.ListMentorsFilter{
		Expertise:    q.Expertise,
		Availability: q.Availability,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
}

type mentorshipRequestBody struct {
	MentorID uint   `json:"mentor_id" validate:"required"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Goals    string `json:"goals" validate:"max=5000"`
}

func (r mentorshipRequestBody) toInput() ports.MentorshipRequestInput {
	return ports.MentorshipRequestInput{MentorID: r.MentorID, Subject: r.Subject, Message: r.Message, Goals: r.Goals}
}

type mentorshipRespondRequest struct {
	Action   string `json:"action" validate:"required,oneof=accept reject"`
	Response string `json:"response" validate:"max=2000"`
}

type listMentorshipsQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=mentor mentee"`
}

type scheduleSessionRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	SessionType     string    `json:"session_type" validate:"required,oneof=video_call phone_call in_person chat"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0,lte=480"`
	MeetingLink     string    `json:"meeting_link" validate:"omitempty,url"`
}

func (r scheduleSessionRequest) toInput() ports.ScheduleSessionInput {
	return ports.ScheduleSessionInput{
		Title:           r.Title,
		Description:     r.Description,
		SessionType:     domain.SessionType(r.SessionType),
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		MeetingLink:     r.MeetingLink,
	}
}
