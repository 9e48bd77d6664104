package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns one page of applications, newest first, plus the total match count.
func (r *ApplicationRepository) List(ctx context.Context, f model.ApplicationFilter) ([]model.Application, int64, error) {
	f = f.Normalized()
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&model.Application{})
		if f.Status != "" {
			query = query.Where("status = ?", f.Status)
		}
		if term := strings.TrimSpace(f.Search); term != "" {
			like := "%" + strings.ToLower(term) + "%"
			query = query.Where(
				"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?",
				like, like, like, "%"+term+"%",
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []model.Application
	err := filtered().Order("created_at DESC").Offset(f.Offset()).Limit(f.Limit).Find(&apps).Error
	return apps, total, err
}

// UpdateReview sets the reviewer-owned fields and returns the updated row.
func (r *ApplicationRepository) UpdateReview(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string, at time.Time) (*model.Application, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"notes":      notes,
		"updated_at": at,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error) {
	var rows []struct {
		Status model.ApplicationStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ApplicationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}
