package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/repository"
	"github.com/google/uuid"
)

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	failPaths string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) Upload(ctx context.Context, bucket, path string, body []byte, contentType string) error {
	if s.failPaths != "" && strings.HasPrefix(path, s.failPaths) {
		return errors.New("bucket quota exceeded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+path] = body
	s.types[bucket+"/"+path] = contentType
	return nil
}

func (s *fakeStorage) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (s *fakeStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return b, nil
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type fakeApplicationStore struct {
	mu        sync.Mutex
	apps      map[uuid.UUID]*model.Application
	createErr error
	creates   int
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[uuid.UUID]*model.Application{}}
}

func (r *fakeApplicationStore) Create(ctx context.Context, app *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	c := *app
	r.apps[app.ID] = &c
	return nil
}

func (r *fakeApplicationStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *app
	return &c, nil
}

func (r *fakeApplicationStore) List(ctx context.Context, f model.ApplicationFilter) ([]model.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f = f.Normalized()
	var all []model.Application
	for _, app := range r.apps {
		if f.Status != "" && app.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(app.FullName()+" "+app.Email), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, *app)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeApplicationStore) UpdateReview(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string, at time.Time) (*model.Application, error) {
	r.mu.Lock()
	app, ok := r.apps[id]
	if !ok {
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	app.Status, app.Notes, app.UpdatedAt = status, notes, at
	r.mu.Unlock()
	return r.FindByID(ctx, id)
}

func (r *fakeApplicationStore) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[model.ApplicationStatus]int64{}
	for _, app := range r.apps {
		counts[app.Status]++
	}
	return counts, nil
}

func (r *fakeApplicationStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, app := range r.apps {
		if !app.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	drafts  []model.ApplicationDraft
	userIDs []*uuid.UUID
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *fakeSubmitter) Submit(ctx context.Context, d model.ApplicationDraft, userID *uuid.UUID) (uuid.UUID, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.drafts = append(s.drafts, d)
	s.userIDs = append(s.userIDs, userID)
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return uuid.MustParse("6f1f3c1e-8a53-4c4e-9d0c-3b7a2f9a1e10"), nil
}

func completeDraft() model.ApplicationDraft {
	d := model.NewDraft()
	d.FirstName, d.LastName = "Thandi", "Mokoena"
	d.Email = "thandi@example.co.za"
	d.PhoneNumber = "+27 11 555 0100"
	d.City, d.Country = "Johannesburg", "South Africa"
	d.Experiences = []model.WorkExperience{{StartDate: "2021-03-01", Current: true, CompanyName: "Acme Logistics", JobTitle: "Forklift Operator"}}
	d.Educations = []model.Education{{InstitutionName: "Sedibeng TVET", StartDate: "2017-01-15", EndDate: "2019-11-30"}}
	d.Languages = []model.LanguageEntry{{Language: "zulu", Proficiency: "native"}, {Language: "english", Proficiency: "fluent"}}
	d.CV = &model.FileAttachment{File: []byte("%PDF-1.7 cv"), Name: "thandi-cv.pdf", Size: 11, Type: "application/pdf", LastModified: 1700000000000}
	return d
}
