package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the review statuses in dashboard order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusPending, StatusReviewing, StatusApproved, StatusRejected}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SourceCareersPortal tags records created by the public wizard.
const SourceCareersPortal = "careers-portal"

// Application is a submitted application. The wizard writes it once; afterwards
// only the review dashboard touches status and notes.
type Application struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	FirstName   string `gorm:"type:varchar(120)" json:"first_name"`
	LastName    string `gorm:"type:varchar(120)" json:"last_name"`
	Email       string `gorm:"type:varchar(255);index" json:"email"`
	PhoneNumber string `gorm:"type:varchar(40)" json:"phone_number"`
	HouseNumber string `gorm:"type:varchar(40)" json:"house_number"`
	StreetName  string `gorm:"type:varchar(255)" json:"street_name"`
	City        string `gorm:"type:varchar(120)" json:"city"`
	ZipCode     string `gorm:"type:varchar(20)" json:"zip_code"`
	Country     string `gorm:"type:varchar(120)" json:"country"`

	Experiences datatypes.JSONSlice[WorkExperience] `json:"experiences"`
	Educations  datatypes.JSONSlice[Education]      `json:"educations"`
	Languages   datatypes.JSONSlice[LanguageEntry]  `json:"languages"`

	CVFileURL           *string `gorm:"type:text" json:"cv_file_url"`
	CVFileName          *string `gorm:"type:text" json:"cv_file_name"`
	CVFilePath          *string `gorm:"type:text" json:"cv_file_path"`
	CoverLetterFileURL  *string `gorm:"type:text" json:"cover_letter_file_url"`
	CoverLetterFileName *string `gorm:"type:text" json:"cover_letter_file_name"`
	CoverLetterFilePath *string `gorm:"type:text" json:"cover_letter_file_path"`

	Status    ApplicationStatus `gorm:"type:varchar(20);default:pending;index" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	Source    string            `gorm:"type:varchar(50)" json:"source"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}
