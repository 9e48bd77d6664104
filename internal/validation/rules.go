// Package validation holds the per-step rules of the application wizard.
// Errors are returned as data shaped like the step they describe; nothing here
// returns a Go error.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

const (
	MsgFirstNameRequired   = "First name is required"
	MsgLastNameRequired    = "Last name is required"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgPhoneRequired       = "Phone number is required"
	MsgPhoneInvalid        = "Please enter a valid phone number"
	MsgCityRequired        = "City is required"
	MsgCountryRequired     = "Country is required"
	MsgExperienceRequired  = "At least one work experience is required"
	MsgStartDateRequired   = "Start date is required"
	MsgEndDateRequired     = "End date is required for non-current positions"
	MsgEndBeforeStart      = "End date must be after start date"
	MsgCompanyRequired     = "Company name is required"
	MsgJobTitleRequired    = "Job title is required"
	MsgEducationRequired   = "At least one education entry is required"
	MsgInstitutionRequired = "Institution name is required"
	MsgLanguagesRequired   = "At least one language is required"
	MsgLanguageRequired    = "Language selection is required"
	MsgProficiencyRequired = "Proficiency level is required"
	MsgCVRequired          = "CV upload is required"
	MsgCVReattach          = "Please re-attach your CV"
	MsgCoverLetterReattach = "Please re-attach your cover letter or remove it"
)

// ValidateStep runs the rules for the step the data belongs to.
func ValidateStep(data model.StepData) StepErrors {
	switch d := data.(type) {
	case model.ProfileStep:
		return validateProfile(d)
	case model.ExperienceStep:
		return validateExperience(d)
	case model.EducationStep:
		return validateEducation(d)
	case model.LanguageStep:
		return validateLanguages(d)
	case model.DocumentStep:
		return validateDocuments(d)
	}
	return StepErrors{}
}

// ValidateDraftStep projects the draft onto step and validates it.
func ValidateDraftStep(d model.ApplicationDraft, step model.Step) StepErrors {
	data, err := d.StepData(step)
	if err != nil {
		return StepErrors{}
	}
	return ValidateStep(data)
}

// ValidateAll validates every step and keeps only the ones with errors.
func ValidateAll(d model.ApplicationDraft) map[model.Step]StepErrors {
	all := make(map[model.Step]StepErrors)
	for _, step := range model.Steps() {
		errs := ValidateDraftStep(d, step)
		if HasErrors(errs) {
			all[step] = errs
		}
	}
	return all
}

func validateProfile(d model.ProfileStep) StepErrors {
	errs := StepErrors{}
	if blank(d.FirstName) {
		errs.set("firstName", MsgFirstNameRequired)
	}
	if blank(d.LastName) {
		errs.set("lastName", MsgLastNameRequired)
	}
	if blank(d.Email) {
		errs.set("email", MsgEmailRequired)
	} else if !emailPattern.MatchString(d.Email) {
		errs.set("email", MsgEmailInvalid)
	}
	if blank(d.PhoneNumber) {
		errs.set("phoneNumber", MsgPhoneRequired)
	} else if !phonePattern.MatchString(d.PhoneNumber) {
		errs.set("phoneNumber", MsgPhoneInvalid)
	}
	if blank(d.City) {
		errs.set("city", MsgCityRequired)
	}
	if blank(d.Country) {
		errs.set("country", MsgCountryRequired)
	}
	return errs
}

func validateExperience(d model.ExperienceStep) StepErrors {
	errs := StepErrors{}
	if len(d.Experiences) == 0 {
		errs.general(string(model.SequenceExperiences), MsgExperienceRequired)
		return errs
	}
	entries := make([]FieldErrors, len(d.Experiences))
	for i, exp := range d.Experiences {
		e := FieldErrors{}
		if exp.StartDate == "" {
			e["startDate"] = MsgStartDateRequired
		}
		if !exp.Current && exp.EndDate == "" {
			e["endDate"] = MsgEndDateRequired
		}
		if endBeforeStart(exp.StartDate, exp.EndDate) {
			e["endDate"] = MsgEndBeforeStart
		}
		if blank(exp.CompanyName) {
			e["companyName"] = MsgCompanyRequired
		}
		if blank(exp.JobTitle) {
			e["jobTitle"] = MsgJobTitleRequired
		}
		entries[i] = e
	}
	errs.entries(string(model.SequenceExperiences), entries)
	return errs
}

func validateEducation(d model.EducationStep) StepErrors {
	errs := StepErrors{}
	if len(d.Educations) == 0 {
		errs.general(string(model.SequenceEducations), MsgEducationRequired)
		return errs
	}
	entries := make([]FieldErrors, len(d.Educations))
	for i, edu := range d.Educations {
		e := FieldErrors{}
		if blank(edu.InstitutionName) {
			e["institutionName"] = MsgInstitutionRequired
		}
		if endBeforeStart(edu.StartDate, edu.EndDate) {
			e["endDate"] = MsgEndBeforeStart
		}
		entries[i] = e
	}
	errs.entries(string(model.SequenceEducations), entries)
	return errs
}

func validateLanguages(d model.LanguageStep) StepErrors {
	errs := StepErrors{}
	if len(d.Languages) == 0 {
		errs.general(string(model.SequenceLanguages), MsgLanguagesRequired)
		return errs
	}
	entries := make([]FieldErrors, len(d.Languages))
	for i, lang := range d.Languages {
		e := FieldErrors{}
		if lang.Language == "" {
			e["language"] = MsgLanguageRequired
		}
		if lang.Proficiency == "" {
			e["proficiency"] = MsgProficiencyRequired
		}
		entries[i] = e
	}
	errs.entries(string(model.SequenceLanguages), entries)
	return errs
}

func validateDocuments(d model.DocumentStep) StepErrors {
	errs := StepErrors{}
	switch {
	case d.CV == nil:
		errs.set("cv", MsgCVRequired)
	case !d.CV.HasPayload():
		errs.set("cv", MsgCVReattach)
	}
	if d.CoverLetter != nil && !d.CoverLetter.HasPayload() {
		errs.set("coverLetter", MsgCoverLetterReattach)
	}
	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

var dateLayouts = []string{"2006-01-02", "2006-01", time.RFC3339}

// endBeforeStart is false unless both dates are present. Unparseable dates
// fall back to comparing the raw strings.
func endBeforeStart(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	s, sok := parseDate(start)
	e, eok := parseDate(end)
	if sok && eok {
		return e.Before(s)
	}
	return start > end
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
