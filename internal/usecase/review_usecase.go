package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/repository"
	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/google/uuid"
)

const recentWindow = 7 * 24 * time.Hour

// ReviewUsecase backs the admin dashboard.
type ReviewUsecase struct {
	repo    ApplicationStore
	storage service.StorageServiceInterface
	bucket  string
	now     func() time.Time
}

func NewReviewUsecase(repo ApplicationStore, storage service.StorageServiceInterface, bucket string) *ReviewUsecase {
	return &ReviewUsecase{repo: repo, storage: storage, bucket: bucket, now: time.Now}
}

func (uc *ReviewUsecase) List(ctx context.Context, f model.ApplicationFilter) ([]model.Application, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return uc.repo.List(ctx, f.Normalized())
}

func (uc *ReviewUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	app, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	return app, err
}

func (uc *ReviewUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string) (*model.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	app, err := uc.repo.UpdateReview(ctx, id, status, notes, uc.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	return app, err
}

func (uc *ReviewUsecase) Stats(ctx context.Context) (*model.ApplicationStats, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.repo.CountSince(ctx, uc.now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	stats := &model.ApplicationStats{
		Pending:   counts[model.StatusPending],
		Reviewing: counts[model.StatusReviewing],
		Approved:  counts[model.StatusApproved],
		Rejected:  counts[model.StatusRejected],
		Recent:    recent,
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

var csvHeader = []string{"Name", "Email", "Phone", "Location", "Status", "Date"}

// ExportFileName is the download name of a CSV export made at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("applications-%s.csv", t.Format("2006-01-02"))
}

// ExportCSV writes every application matching f, page by page.
func (uc *ReviewUsecase) ExportCSV(ctx context.Context, w io.Writer, f model.ApplicationFilter) error {
	if f.Status != "" && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f.Page, f.Limit = 1, model.MaxPageSize
	for {
		apps, total, err := uc.repo.List(ctx, f)
		if err != nil {
			return err
		}
		for _, app := range apps {
			row := []string{
				app.FullName(),
				app.Email,
				app.PhoneNumber,
				app.City + ", " + app.Country,
				string(app.Status),
				app.CreatedAt.Format("Jan 2, 2006, 03:04 PM"),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		if len(apps) == 0 || int64(f.Page*f.Limit) >= total {
			break
		}
		f.Page++
	}
	cw.Flush()
	return cw.Error()
}

// Document is a stored attachment ready to send.
type Document struct {
	Name string
	Body []byte
}

func (uc *ReviewUsecase) Document(ctx context.Context, id uuid.UUID, kind model.DocumentKind) (*Document, error) {
	app, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var path, name *string
	switch kind {
	case model.DocumentCV:
		path, name = app.CVFilePath, app.CVFileName
	case model.DocumentCoverLetter:
		path, name = app.CoverLetterFilePath, app.CoverLetterFileName
	}
	if path == nil || *path == "" {
		return nil, ErrDocumentNotFound
	}
	body, err := uc.storage.Download(ctx, uc.bucket, *path)
	if err != nil {
		return nil, err
	}
	doc := &Document{Name: *path, Body: body}
	if name != nil && *name != "" {
		doc.Name = *name
	}
	return doc, nil
}
