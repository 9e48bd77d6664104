package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStep          = errors.New("invalid step")
	ErrStepLocked           = errors.New("step not reached yet")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrValidationFailed     = errors.New("application has validation errors")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("admin access required")
)

type SubmissionStage string

const (
	StageUpload SubmissionStage = "upload"
	StageInsert SubmissionStage = "insert"
)

// SubmissionError is the single failure outcome of a submission. Stage is kept
// for logs; users see the same message for every stage.
type SubmissionError struct {
	Stage SubmissionStage
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
