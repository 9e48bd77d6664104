package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ApplicationStore is the datastore the portal writes and reviews applications in.
type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context, f model.ApplicationFilter) ([]model.Application, int64, error)
	UpdateReview(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string, at time.Time) (*model.Application, error)
	CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type SubmissionUsecase struct {
	storage service.StorageServiceInterface
	repo    ApplicationStore
	bucket  string
	now     func() time.Time
	newID   func() uuid.UUID
}

func NewSubmissionUsecase(storage service.StorageServiceInterface, repo ApplicationStore, bucket string) *SubmissionUsecase {
	return &SubmissionUsecase{storage: storage, repo: repo, bucket: bucket, now: time.Now, newID: uuid.New}
}

type uploadedFile struct {
	URL  string
	Name string
	Path string
}

// Submit uploads the attachments, then inserts the application record. Uploads
// run concurrently and any failure aborts before the insert. Objects already
// uploaded are not removed when a later stage fails.
func (uc *SubmissionUsecase) Submit(ctx context.Context, d model.ApplicationDraft, userID *uuid.UUID) (uuid.UUID, error) {
	id := uc.newID()

	var cv, coverLetter *uploadedFile
	g, gctx := errgroup.WithContext(ctx)
	if d.CV.HasPayload() {
		g.Go(func() error {
			f, err := uc.upload(gctx, id, model.DocumentCV, d.CV)
			cv = f
			return err
		})
	}
	if d.CoverLetter.HasPayload() {
		g.Go(func() error {
			f, err := uc.upload(gctx, id, model.DocumentCoverLetter, d.CoverLetter)
			coverLetter = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("submission %s: upload: %v", id, err)
		return uuid.Nil, &SubmissionError{Stage: StageUpload, Err: err}
	}

	app := uc.record(id, d, userID, cv, coverLetter)
	if err := uc.repo.Create(ctx, app); err != nil {
		log.Errorf("submission %s: insert: %v", id, err)
		return uuid.Nil, &SubmissionError{Stage: StageInsert, Err: fmt.Errorf("failed to save application: %w", err)}
	}

	log.Infof("application %s submitted", id)
	return id, nil
}

func (uc *SubmissionUsecase) upload(ctx context.Context, id uuid.UUID, kind model.DocumentKind, f *model.FileAttachment) (*uploadedFile, error) {
	path := fmt.Sprintf("%s/%s_%d.%s", kind.Folder(), id, uc.now().UnixMilli(), fileExt(f.Name))
	if err := uc.storage.Upload(ctx, uc.bucket, path, f.File, f.Type); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind.Folder(), err)
	}
	return &uploadedFile{
		URL:  uc.storage.PublicURL(uc.bucket, path),
		Name: f.Name,
		Path: path,
	}, nil
}

func (uc *SubmissionUsecase) record(id uuid.UUID, d model.ApplicationDraft, userID *uuid.UUID, cv, coverLetter *uploadedFile) *model.Application {
	now := uc.now()
	app := &model.Application{
		ID:          id,
		UserID:      userID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		HouseNumber: d.HouseNumber,
		StreetName:  d.StreetName,
		City:        d.City,
		ZipCode:     d.ZipCode,
		Country:     d.Country,
		Experiences: d.Experiences,
		Educations:  d.Educations,
		Languages:   d.Languages,
		Status:      model.StatusPending,
		Source:      model.SourceCareersPortal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cv != nil {
		app.CVFileURL, app.CVFileName, app.CVFilePath = &cv.URL, &cv.Name, &cv.Path
	}
	if coverLetter != nil {
		app.CoverLetterFileURL, app.CoverLetterFileName, app.CoverLetterFilePath = &coverLetter.URL, &coverLetter.Name, &coverLetter.Path
	}
	return app
}

// fileExt is whatever follows the last dot; a name without one is used whole.
func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
