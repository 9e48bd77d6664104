package dto

import (
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/google/uuid"
)

type ApplicationListQuery struct {
	Status string `query:"status"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func (q ApplicationListQuery) Filter() model.ApplicationFilter {
	return model.ApplicationFilter{
		Status: model.ApplicationStatus(q.Status),
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	}.Normalized()
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ApplicationDTO is an application as the dashboard sees it. Storage paths
// stay server side.
type ApplicationDTO struct {
	ID                  uuid.UUID               `json:"id"`
	UserID              *uuid.UUID              `json:"user_id"`
	FirstName           string                  `json:"first_name"`
	LastName            string                  `json:"last_name"`
	Email               string                  `json:"email"`
	PhoneNumber         string                  `json:"phone_number"`
	HouseNumber         string                  `json:"house_number"`
	StreetName          string                  `json:"street_name"`
	City                string                  `json:"city"`
	ZipCode             string                  `json:"zip_code"`
	Country             string                  `json:"country"`
	Experiences         []model.WorkExperience  `json:"experiences"`
	Educations          []model.Education       `json:"educations"`
	Languages           []model.LanguageEntry   `json:"languages"`
	CVFileURL           *string                 `json:"cv_file_url"`
	CVFileName          *string                 `json:"cv_file_name"`
	CoverLetterFileURL  *string                 `json:"cover_letter_file_url"`
	CoverLetterFileName *string                 `json:"cover_letter_file_name"`
	Status              model.ApplicationStatus `json:"status"`
	Notes               string                  `json:"notes"`
	Source              string                  `json:"source"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

func NewApplicationDTO(app *model.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:                  app.ID,
		UserID:              app.UserID,
		FirstName:           app.FirstName,
		LastName:            app.LastName,
		Email:               app.Email,
		PhoneNumber:         app.PhoneNumber,
		HouseNumber:         app.HouseNumber,
		StreetName:          app.StreetName,
		City:                app.City,
		ZipCode:             app.ZipCode,
		Country:             app.Country,
		Experiences:         app.Experiences,
		Educations:          app.Educations,
		Languages:           app.Languages,
		CVFileURL:           app.CVFileURL,
		CVFileName:          app.CVFileName,
		CoverLetterFileURL:  app.CoverLetterFileURL,
		CoverLetterFileName: app.CoverLetterFileName,
		Status:              app.Status,
		Notes:               app.Notes,
		Source:              app.Source,
		CreatedAt:           app.CreatedAt,
		UpdatedAt:           app.UpdatedAt,
	}
}

func NewApplicationDTOs(apps []model.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationDTO(&apps[i]))
	}
	return out
}
