package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID    string `gorm:"primaryKey;size:10" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	PasswordHash string    `json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Role         Role      `gorm:"type:text;not null" json:"role"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Profile      Profile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

type Profile struct {
	UserID            string            `gorm:"primaryKey;size:10" json:"user_id"`
	Headline          string            `json:"headline"`
	Company           string            `json:"company"`
	GraduationYear    int               `json:"graduation_year"`
	Major             string            `json:"major"`
	CGPA              *float64          `json:"cgpa,omitempty"`
	Category          string            `json:"category"`
	Bio               string            `gorm:"type:text" json:"bio"`
	ProfilePictureURL string            `json:"profile_picture_url"`
	AdditionalInfo    datatypes.JSONMap `gorm:"type:jsonb" json:"additional_info"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:10" json:"user_id"`
	TokenHash string    `gorm:"not null" json:"-"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

type Opportunity struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	PosterID     string          `gorm:"index;size:10;not null" json:"poster_id"`
	Title        string          `gorm:"not null" json:"title"`
	Company      string          `gorm:"not null" json:"company"`
	Type         OpportunityType `gorm:"type:text;not null" json:"type"`
	Location     string          `json:"location"`
	Description  string          `gorm:"type:text" json:"description"`
	Requirements datatypes.JSON  `gorm:"type:jsonb" json:"requirements"` // array of strings
	Active       bool            `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Application rows carry a composite unique index so a student cannot apply to
// the same opportunity twice; the store translates the constraint violation
// into a conflict.
type Application struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	ApplicantID   string    `gorm:"size:10;not null;uniqueIndex:idx_applicant_opportunity" json:"applicant_id"`
	OpportunityID string    `gorm:"size:36;not null;uniqueIndex:idx_applicant_opportunity" json:"opportunity_id"`
	CoverLetter   string    `gorm:"type:text" json:"cover_letter"`
	CreatedAt     time.Time `json:"created_at"`
}

type Story struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	AuthorID  string        `gorm:"index;size:10;not null" json:"author_id"`
	Title     string        `gorm:"not null" json:"title"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	Category  StoryCategory `gorm:"type:text;not null" json:"category"`
	CreatedAt time.Time     `json:"created_at"`
}

type Scholarship struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedBy           string     `gorm:"index;size:10;not null" json:"created_by"`
	Title               string     `gorm:"not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	EligibilityCriteria string     `gorm:"type:text" json:"eligibility_criteria"`
	CGPARequirement     *float64   `json:"cgpa_requirement,omitempty"`
	CategoryRequirement string     `json:"category_requirement"`
	Amount              float64    `gorm:"not null" json:"amount"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	Active              bool       `gorm:"default:true;index" json:"active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ScholarshipApplication carries the same composite unique index as
// Application: one submission per student per scholarship.
type ScholarshipApplication struct {
	ID             string                       `gorm:"primaryKey;size:36" json:"id"`
	StudentID      string                       `gorm:"size:10;not null;uniqueIndex:idx_student_scholarship" json:"student_id"`
	ScholarshipID  string                       `gorm:"size:36;not null;uniqueIndex:idx_student_scholarship" json:"scholarship_id"`
	CoverLetter    string                       `gorm:"type:text" json:"cover_letter"`
	AdditionalInfo string                       `gorm:"type:text" json:"additional_info"`
	Status         ScholarshipApplicationStatus `gorm:"type:text;not null;default:submitted" json:"status"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"index;size:10;not null" json:"sender_id"`
	ReceiverID string    `gorm:"index;size:10;not null" json:"receiver_id"`
	Subject    string    `json:"subject"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type MentorshipRequest struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	StudentID  string        `gorm:"index;size:10;not null" json:"student_id"`
	MentorID   string        `gorm:"index;size:10;not null" json:"mentor_id"`
	Subject    string        `gorm:"not null" json:"subject"`
	Message    string        `gorm:"type:text" json:"message"`
	Status     RequestStatus `gorm:"type:text;not null;default:pending" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
}
