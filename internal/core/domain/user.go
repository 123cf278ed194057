package domain

import "time"

// UserType is the kind of account a member holds.
type UserType string

const (
	UserTypeStudent   UserType = "student"
	UserTypeAlumni    UserType = "alumni"
	UserTypeFaculty   UserType = "faculty"
	UserTypeAdmin     UserType = "admin"
	UserTypeRecruiter UserType = "recruiter"
)

// UserStatus is the moderation state of an account.
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusPending     UserStatus = "pending"
	UserStatusSuspended   UserStatus = "suspended"
	UserStatusUnderReview UserStatus = "under_review"
)

// User models a registered member of the network.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FirstName    string     `json:"first_name" gorm:"size:150"`
	LastName     string     `json:"last_name" gorm:"size:150"`
	UserType     UserType   `json:"user_type" gorm:"size:20;index;not null"`
	Status       UserStatus `json:"status" gorm:"size:20;index;not null;default:pending"`

	Bio             string `json:"bio" gorm:"size:500"`
	Location        string `json:"location" gorm:"size:200"`
	PhoneNumber     string `json:"phone_number" gorm:"size:17"`
	LinkedinProfile string `json:"linkedin_profile" gorm:"size:200"`
	CurrentPosition string `json:"current_position" gorm:"size:200"`
	Company         string `json:"company" gorm:"size:200"`
	GraduationYear  *int   `json:"graduation_year" gorm:"index"`
	Department      string `json:"department" gorm:"size:100;index"`

	IsVerified bool       `json:"is_verified"`
	VerifiedAt *time.Time `json:"verified_at"`
	VerifiedBy *uint      `json:"verified_by"`

	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`

	LastActive time.Time `json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Interest is a topic members can attach to their profile.
type Interest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Category    string    `json:"category" gorm:"size:50"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserInterest links a user to an interest with a 1-5 proficiency.
type UserInterest struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_interest"`
	InterestID       uint      `json:"interest_id" gorm:"not null;uniqueIndex:idx_user_interest"`
	Interest         Interest  `json:"interest" gorm:"foreignKey:InterestID"`
	ProficiencyLevel int       `json:"proficiency_level" gorm:"not null;default:1"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserStats summarises a member's footprint across the platform.
type UserStats struct {
	Connections   int64 `json:"connections"`
	Posts         int64 `json:"posts"`
	Clubs         int64 `json:"clubs"`
	Projects      int64 `json:"projects"`
	Contributions int64 `json:"contributions"`
}
