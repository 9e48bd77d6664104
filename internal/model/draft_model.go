package model

import "strings"

// ApplicationDraft is the in-progress application held while the wizard is open.
// Every repeatable sequence keeps at least one entry.
type ApplicationDraft struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	HouseNumber string `json:"houseNumber"`
	StreetName  string `json:"streetName"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`

	Experiences []WorkExperience `json:"experiences"`
	Educations  []Education      `json:"educations"`
	Languages   []LanguageEntry  `json:"languages"`

	CV          *FileAttachment `json:"cv"`
	CoverLetter *FileAttachment `json:"coverLetter"`
}

type WorkExperience struct {
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	Location     string `json:"location,omitempty"`
	Current      bool   `json:"current,omitempty"`
}

type Education struct {
	EducationType   string `json:"educationType,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`
	InstitutionName string `json:"institutionName,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	Degree          string `json:"degree,omitempty"`
	FieldOfStudy    string `json:"fieldOfStudy,omitempty"`
	Grade           string `json:"grade,omitempty"`
	Major           string `json:"major,omitempty"`
	AdditionalInfo  string `json:"additionalInfo,omitempty"`
}

type LanguageEntry struct {
	Language    string `json:"language,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
	Speaking    string `json:"speaking,omitempty"`
	Reading     string `json:"reading,omitempty"`
	Writing     string `json:"writing,omitempty"`
	Listening   string `json:"listening,omitempty"`
}

// FileAttachment is a user-selected document. File only lives for the session;
// snapshots always carry it as null.
type FileAttachment struct {
	File         []byte `json:"file"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified int64  `json:"lastModified"`
}

// HasPayload reports whether the binary content is still attached.
func (f *FileAttachment) HasPayload() bool {
	return f != nil && f.File != nil
}

func (f *FileAttachment) withoutPayload() *FileAttachment {
	if f == nil {
		return nil
	}
	c := *f
	c.File = nil
	return &c
}

// NewDraft returns the empty draft with one placeholder per sequence.
func NewDraft() ApplicationDraft {
	return ApplicationDraft{
		Experiences: []WorkExperience{{}},
		Educations:  []Education{{}},
		Languages:   []LanguageEntry{{}},
	}
}

// Normalize restores the structural invariants: non-empty sequences and no end
// date on a current position.
func (d *ApplicationDraft) Normalize() {
	if len(d.Experiences) == 0 {
		d.Experiences = []WorkExperience{{}}
	}
	if len(d.Educations) == 0 {
		d.Educations = []Education{{}}
	}
	if len(d.Languages) == 0 {
		d.Languages = []LanguageEntry{{}}
	}
	for i := range d.Experiences {
		if d.Experiences[i].Current {
			d.Experiences[i].EndDate = ""
		}
	}
}

// Clone copies the draft so callers cannot alias its sequences. Attachment
// payload bytes are shared.
func (d ApplicationDraft) Clone() ApplicationDraft {
	c := d
	c.Experiences = append([]WorkExperience(nil), d.Experiences...)
	c.Educations = append([]Education(nil), d.Educations...)
	c.Languages = append([]LanguageEntry(nil), d.Languages...)
	if d.CV != nil {
		cv := *d.CV
		c.CV = &cv
	}
	if d.CoverLetter != nil {
		cl := *d.CoverLetter
		c.CoverLetter = &cl
	}
	return c
}

// Sanitized is the snapshot form of the draft: attachment metadata is kept,
// binary payloads are dropped.
func (d ApplicationDraft) Sanitized() ApplicationDraft {
	c := d.Clone()
	c.CV = d.CV.withoutPayload()
	c.CoverLetter = d.CoverLetter.withoutPayload()
	return c
}

func (d ApplicationDraft) ApplicantName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// DraftPatch is a shallow merge over the draft. Nil fields are left untouched.
// Attachments are not patchable; they go through Attach and Detach.
type DraftPatch struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	HouseNumber *string `json:"houseNumber,omitempty"`
	StreetName  *string `json:"streetName,omitempty"`
	City        *string `json:"city,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
	Country     *string `json:"country,omitempty"`

	Experiences *[]WorkExperience `json:"experiences,omitempty"`
	Educations  *[]Education      `json:"educations,omitempty"`
	Languages   *[]LanguageEntry  `json:"languages,omitempty"`
}

// Apply merges p into d and re-normalizes.
func (p DraftPatch) Apply(d *ApplicationDraft) {
	setString(&d.FirstName, p.FirstName)
	setString(&d.LastName, p.LastName)
	setString(&d.Email, p.Email)
	setString(&d.PhoneNumber, p.PhoneNumber)
	setString(&d.HouseNumber, p.HouseNumber)
	setString(&d.StreetName, p.StreetName)
	setString(&d.City, p.City)
	setString(&d.ZipCode, p.ZipCode)
	setString(&d.Country, p.Country)
	if p.Experiences != nil {
		d.Experiences = append([]WorkExperience(nil), (*p.Experiences)...)
	}
	if p.Educations != nil {
		d.Educations = append([]Education(nil), (*p.Educations)...)
	}
	if p.Languages != nil {
		d.Languages = append([]LanguageEntry(nil), (*p.Languages)...)
	}
	d.Normalize()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
