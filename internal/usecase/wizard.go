package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/store"
	"github.com/fadilmartias/careers-portal/internal/validation"
	"github.com/google/uuid"
)

// Submitter turns a complete draft into a stored application.
type Submitter interface {
	Submit(ctx context.Context, d model.ApplicationDraft, userID *uuid.UUID) (uuid.UUID, error)
}

// WizardState is a read-only view of a wizard. The draft is sanitized.
type WizardState struct {
	DraftID             string                               `json:"draftId"`
	CurrentStep         model.Step                           `json:"currentStep"`
	Errors              map[model.Step]validation.StepErrors `json:"errors"`
	IsSubmitting        bool                                 `json:"isSubmitting"`
	Draft               model.ApplicationDraft               `json:"draft"`
	CVAttached          bool                                 `json:"cvAttached"`
	CoverLetterAttached bool                                 `json:"coverLetterAttached"`
}

// Submission is the outcome of a successful SubmitAll.
type Submission struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	ApplicantName string    `json:"applicantName"`
}

// Wizard is the step state machine of one draft session. All methods are safe
// for concurrent use; edits are rejected while a submission is running.
type Wizard struct {
	mu          sync.Mutex
	id          string
	store       *store.DraftStore
	submitter   Submitter
	currentStep model.Step
	errors      map[model.Step]validation.StepErrors
	submitting  bool
}

func NewWizard(id string, drafts *store.DraftStore, submitter Submitter) *Wizard {
	return &Wizard{id: id, store: drafts, submitter: submitter, currentStep: model.FirstStep}
}

func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.store.Draft()
	return WizardState{
		DraftID:             w.id,
		CurrentStep:         w.currentStep,
		Errors:              w.errors,
		IsSubmitting:        w.submitting,
		Draft:               d.Sanitized(),
		CVAttached:          d.CV.HasPayload(),
		CoverLetterAttached: d.CoverLetter.HasPayload(),
	}
}

func (w *Wizard) CurrentStep() model.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentStep
}

func (w *Wizard) IsSubmitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

func (w *Wizard) Errors() map[model.Step]validation.StepErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errors
}

func (w *Wizard) StepData(step model.Step) (model.StepData, error) {
	if !step.Valid() {
		return nil, ErrInvalidStep
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.StepData(step)
}

// GoTo jumps to step; only the current step and those before it are reachable.
func (w *Wizard) GoTo(step model.Step) error {
	if !step.Valid() {
		return ErrInvalidStep
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if step > w.currentStep {
		return ErrStepLocked
	}
	w.currentStep = step
	w.errors = nil
	return nil
}

// Next validates the current step and advances when it is clean. It reports
// whether the step passed validation.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := validation.ValidateDraftStep(w.store.Draft(), w.currentStep)
	if validation.HasErrors(errs) {
		w.errors = map[model.Step]validation.StepErrors{w.currentStep: errs}
		return false
	}
	w.errors = nil
	if w.currentStep < model.LastStep {
		w.currentStep++
	}
	return true
}

func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.currentStep > model.FirstStep {
		w.currentStep--
	}
	w.errors = nil
}

// SubmitAll validates every step and, when all pass, hands the draft to the
// submitter. On validation failure it moves to the first failing step and
// returns ErrValidationFailed. On success the draft is cleared.
func (w *Wizard) SubmitAll(ctx context.Context, userID *uuid.UUID) (*Submission, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	d := w.store.Draft()
	all := validation.ValidateAll(d)
	if len(all) > 0 {
		w.errors = all
		for _, step := range model.Steps() {
			if _, ok := all[step]; ok {
				w.currentStep = step
				break
			}
		}
		w.mu.Unlock()
		return nil, ErrValidationFailed
	}
	w.errors = nil
	w.submitting = true
	w.mu.Unlock()

	id, err := w.submitter.Submit(ctx, d, userID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return nil, err
	}
	w.store.Clear()
	w.currentStep = model.FirstStep
	return &Submission{ApplicationID: id, ApplicantName: d.ApplicantName()}, nil
}

// Reset discards the draft and returns to the first step.
func (w *Wizard) Reset() error {
	return w.edit(func() error {
		w.store.Clear()
		w.currentStep = model.FirstStep
		w.errors = nil
		return nil
	})
}

// Update shallow-merges p into the draft.
func (w *Wizard) Update(p model.DraftPatch) error {
	return w.edit(func() error {
		w.store.Update(p)
		return nil
	})
}

// AddEntry appends an empty placeholder to seq.
func (w *Wizard) AddEntry(seq model.Sequence) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		switch seq {
		case model.SequenceExperiences:
			d.Experiences = append(d.Experiences, model.WorkExperience{})
		case model.SequenceEducations:
			d.Educations = append(d.Educations, model.Education{})
		case model.SequenceLanguages:
			d.Languages = append(d.Languages, model.LanguageEntry{})
		default:
			return ErrEntryNotFound
		}
		return nil
	})
}

// RemoveEntry drops entry i of seq. Removing the last remaining entry, or an
// index out of range, leaves the draft unchanged.
func (w *Wizard) RemoveEntry(seq model.Sequence, i int) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		switch seq {
		case model.SequenceExperiences:
			d.Experiences = removeAt(d.Experiences, i)
		case model.SequenceEducations:
			d.Educations = removeAt(d.Educations, i)
		case model.SequenceLanguages:
			d.Languages = removeAt(d.Languages, i)
		default:
			return ErrEntryNotFound
		}
		return nil
	})
}

func removeAt[T any](list []T, i int) []T {
	if len(list) <= 1 || i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// SetExperience replaces entry i. A current position never keeps an end date.
func (w *Wizard) SetExperience(i int, exp model.WorkExperience) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		if i < 0 || i >= len(d.Experiences) {
			return ErrEntryNotFound
		}
		if exp.Current {
			exp.EndDate = ""
		}
		d.Experiences[i] = exp
		return nil
	})
}

// SetExperienceCurrent is the "current position" checkbox; checking it clears
// the end date.
func (w *Wizard) SetExperienceCurrent(i int, current bool) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		if i < 0 || i >= len(d.Experiences) {
			return ErrEntryNotFound
		}
		d.Experiences[i].Current = current
		if current {
			d.Experiences[i].EndDate = ""
		}
		return nil
	})
}

func (w *Wizard) SetEducation(i int, edu model.Education) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		if i < 0 || i >= len(d.Educations) {
			return ErrEntryNotFound
		}
		d.Educations[i] = edu
		return nil
	})
}

func (w *Wizard) SetLanguage(i int, lang model.LanguageEntry) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		if i < 0 || i >= len(d.Languages) {
			return ErrEntryNotFound
		}
		d.Languages[i] = lang
		return nil
	})
}

// Attach stores f in the given document slot.
func (w *Wizard) Attach(kind model.DocumentKind, f model.FileAttachment) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		switch kind {
		case model.DocumentCV:
			d.CV = &f
		case model.DocumentCoverLetter:
			d.CoverLetter = &f
		default:
			return ErrDocumentNotFound
		}
		return nil
	})
}

func (w *Wizard) Detach(kind model.DocumentKind) error {
	return w.mutate(func(d *model.ApplicationDraft) error {
		switch kind {
		case model.DocumentCV:
			d.CV = nil
		case model.DocumentCoverLetter:
			d.CoverLetter = nil
		default:
			return ErrDocumentNotFound
		}
		return nil
	})
}

func (w *Wizard) edit(fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return ErrSubmissionInProgress
	}
	return fn()
}

// mutate runs fn on a working copy and commits it only when fn succeeds.
func (w *Wizard) mutate(fn func(d *model.ApplicationDraft) error) error {
	return w.edit(func() error {
		d := w.store.Draft()
		if err := fn(&d); err != nil {
			return err
		}
		w.store.Mutate(func(current *model.ApplicationDraft) {
			*current = d
		})
		return nil
	})
}
