package handler

import (
	"time"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type createClubRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	ShortDescription string   `json:"short_description" validate:"max=500"`
	Category         string   `json:"category" validate:"required,max=20"`
	Tags             []string `json:"tags" validate:"max=20,dive,max=50"`
	Visibility       string   `json:"visibility" validate:"omitempty,oneof=public private invite_only"`
}

func (r createClubRequest) toInput() ports.CreateClubInput {
	return ports.CreateClubInput{
		Name:             r.Name,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Tags:             r.Tags,
		Visibility:       domain.ClubVisibility(r.Visibility),
	}
}

type updateClubRequest struct {
	Name             *string  `json:"name" validate:"omitempty,max=200"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description" validate:"omitempty,max=500"`
	Category         *string  `json:"category" validate:"omitempty,max=20"`
	Tags             []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Visibility       *string  `json:"visibility" validate:"omitempty,oneof=public private invite_only"`
}

func (r updateClubRequest) toInput() ports.UpdateClubInput {
	in := ports.UpdateClubInput{
		Name:             r.Name,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Category:         r.Category,
		Tags:             r.Tags,
	}
	if r.Visibility != nil {
		v := domain.ClubVisibility(*r.Visibility)
		in.Visibility = &v
	}
	return in
}

type listClubsQuery struct {
	PageQuery
	Search   string `query:"search"`
	Category string `query:"category"`
}

func (q listClubsQuery) toFilter() ports.ListClubsFilter {
	return ports.ListClubsFilter{Search: q.Search, Category: q.Category, Limit: q.Limit, Offset: q.Offset}
}

type clubPostRequest struct {
	PostType string `json:"post_type" validate:"omitempty,oneof=general announcement event discussion resource"`
	Title    string `json:"title" validate:"max=200"`
	Content  string `json:"content" validate:"required,max=5000"`
	IsPinned bool   `json:"is_pinned"`
}

func (r clubPostRequest) toInput() ports.CreateClubPostInput {
	return ports.CreateClubPostInput{
		PostType: domain.ClubPostType(r.PostType),
		Title:    r.Title,
		Content:  r.Content,
		IsPinned: r.IsPinned,
	}
}

type createEventRequest struct {
	Title                string    `json:"title" validate:"required,max=200"`
	Description          string    `json:"description" validate:"required"`
	EventType            string    `json:"event_type" validate:"omitempty,oneof=meeting workshop social conference networking other"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	Timezone             string    `json:"timezone" validate:"max=50"`
	LocationType         string    `json:"location_type" validate:"omitempty,oneof=physical virtual hybrid"`
	Location             string    `json:"location" validate:"max=200"`
	MeetingLink          string    `json:"meeting_link" validate:"omitempty,url,max=500"`
	MaxAttendees         *int      `json:"max_attendees" validate:"omitempty,min=1"`
	RegistrationRequired bool      `json:"registration_required"`
	Status               string    `json:"status" validate:"omitempty,oneof=draft published"`
	IsPublic             *bool     `json:"is_public"`
}

func (r createEventRequest) toInput() ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:                r.Title,
		Description:          r.Description,
		EventType:            domain.EventType(r.EventType),
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Timezone:             r.Timezone,
		LocationType:         domain.LocationType(r.LocationType),
		Location:             r.Location,
		MeetingLink:          r.MeetingLink,
		MaxAttendees:         r.MaxAttendees,
		RegistrationRequired: r.RegistrationRequired,
		Status:               domain.EventStatus(r.Status),
		IsPublic:             r.IsPublic,
	}
}

type updateEventRequest struct {
	Title        *string    `json:"title" validate:"omitempty,max=200"`
	Description  *string    `json:"description"`
	EventType    *string    `json:"event_type" validate:"omitempty,oneof=meeting workshop social conference networking other"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	LocationType *string    `json:"location_type" validate:"omitempty,oneof=physical virtual hybrid"`
	Location     *string    `json:"location" validate:"omitempty,max=200"`
	MeetingLink  *string    `json:"meeting_link" validate:"omitempty,url,max=500"`
	MaxAttendees *int       `json:"max_attendees" validate:"omitempty,min=1"`
	Status       *string    `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
	IsPublic     *bool      `json:"is_public"`
}

func (r updateEventRequest) toInput() ports.UpdateEventInput {
	in := ports.UpdateEventInput{
		Title:        r.Title,
		Description:  r.Description,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Location:     r.Location,
		MeetingLink:  r.MeetingLink,
		MaxAttendees: r.MaxAttendees,
		IsPublic:     r.IsPublic,
	}
	if r.EventType != nil {
		t := domain.EventType(*r.EventType)
		in.EventType = &t
	}
	if r.LocationType != nil {
		l := domain.LocationType(*r.LocationType)
		in.LocationType = &l
	}
	if r.Status != nil {
		s := domain.EventStatus(*r.Status)
		in.Status = &s
	}
	return in
}
