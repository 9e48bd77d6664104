package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one of the five wizard pages.
type Step int

const (
	StepProfile Step = iota + 1
	StepExperience
	StepEducation
	StepLanguages
	StepDocuments
)

const (
	FirstStep = StepProfile
	LastStep  = StepDocuments
)

var stepNames = map[Step]string{
	StepProfile:    "profile",
	StepExperience: "experience",
	StepEducation:  "education",
	StepLanguages:  "languages",
	StepDocuments:  "documents",
}

// Steps lists every step in order.
func Steps() []Step {
	return []Step{StepProfile, StepExperience, StepEducation, StepLanguages, StepDocuments}
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// ParseStep accepts either the step number or its name.
func ParseStep(raw string) (Step, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		if s := Step(n); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("step %d out of range", n)
	}
	for s, name := range stepNames {
		if name == raw {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", raw)
}

// StepData is the slice of the draft a single step edits and validates.
type StepData interface {
	Step() Step
}

type ProfileStep struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	HouseNumber string `json:"houseNumber"`
	StreetName  string `json:"streetName"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
}

type ExperienceStep struct {
	Experiences []WorkExperience `json:"experiences"`
}

type EducationStep struct {
	Educations []Education `json:"educations"`
}

type LanguageStep struct {
	Languages []LanguageEntry `json:"languages"`
}

type DocumentStep struct {
	CV          *FileAttachment `json:"cv"`
	CoverLetter *FileAttachment `json:"coverLetter"`
}

func (ProfileStep) Step() Step    { return StepProfile }
func (ExperienceStep) Step() Step { return StepExperience }
func (EducationStep) Step() Step  { return StepEducation }
func (LanguageStep) Step() Step   { return StepLanguages }
func (DocumentStep) Step() Step   { return StepDocuments }

// StepData projects the draft onto a single step.
func (d ApplicationDraft) StepData(step Step) (StepData, error) {
	switch step {
	case StepProfile:
		return ProfileStep{
			FirstName:   d.FirstName,
			LastName:    d.LastName,
			Email:       d.Email,
			PhoneNumber: d.PhoneNumber,
			HouseNumber: d.HouseNumber,
			StreetName:  d.StreetName,
			City:        d.City,
			ZipCode:     d.ZipCode,
			Country:     d.Country,
		}, nil
	case StepExperience:
		return ExperienceStep{Experiences: d.Experiences}, nil
	case StepEducation:
		return EducationStep{Educations: d.Educations}, nil
	case StepLanguages:
		return LanguageStep{Languages: d.Languages}, nil
	case StepDocuments:
		return DocumentStep{CV: d.CV, CoverLetter: d.CoverLetter}, nil
	default:
		return nil, fmt.Errorf("unknown step %d", step)
	}
}

// Sequence names a repeatable part of the draft.
type Sequence string

const (
	SequenceExperiences Sequence = "experiences"
	SequenceEducations  Sequence = "educations"
	SequenceLanguages   Sequence = "languages"
)

func ParseSequence(raw string) (Sequence, error) {
	switch s := Sequence(strings.ToLower(raw)); s {
	case SequenceExperiences, SequenceEducations, SequenceLanguages:
		return s, nil
	}
	return "", fmt.Errorf("unknown sequence %q", raw)
}

// DocumentKind names an attachment slot.
type DocumentKind string

const (
	DocumentCV          DocumentKind = "cv"
	DocumentCoverLetter DocumentKind = "coverLetter"
)

func ParseDocumentKind(raw string) (DocumentKind, error) {
	switch strings.ToLower(raw) {
	case "cv":
		return DocumentCV, nil
	case "coverletter", "cover-letter", "cover_letter":
		return DocumentCoverLetter, nil
	}
	return "", fmt.Errorf("unknown document %q", raw)
}

// Folder is the storage folder uploads of this kind land in.
func (k DocumentKind) Folder() string {
	if k == DocumentCoverLetter {
		return "cover-letters"
	}
	return "cvs"
}

// Sanitized drops the binary payloads, keeping the file metadata.
func (s DocumentStep) Sanitized() DocumentStep {
	return DocumentStep{CV: s.CV.withoutPayload(), CoverLetter: s.CoverLetter.withoutPayload()}
}
