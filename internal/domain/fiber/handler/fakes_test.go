package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/careers-portal/internal/middleware"
	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/fadilmartias/careers-portal/internal/repository"
	"github.com/fadilmartias/careers-portal/internal/service"
	"github.com/fadilmartias/careers-portal/internal/store"
	"github.com/fadilmartias/careers-portal/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

var (
	adminUser = &service.User{ID: uuid.MustParse("a1c2e3f4-0000-4000-8000-000000000001"), Email: "hr@kk.test", Role: service.RoleAdmin}
	plainUser = &service.User{ID: uuid.MustParse("b1c2e3f4-0000-4000-8000-000000000002"), Email: "thandi@example.co.za"}
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memStorage) Upload(ctx context.Context, bucket, path string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+path] = body
	return nil
}

func (s *memStorage) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (s *memStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return b, nil
}

type memApplications struct {
	mu   sync.Mutex
	apps []model.Application
}

func (r *memApplications) Create(ctx context.Context, app *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, *app)
	return nil
}

func (r *memApplications) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ID == id {
			return &app, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memApplications) List(ctx context.Context, f model.ApplicationFilter) ([]model.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Application
	for _, app := range r.apps {
		if f.Status != "" && app.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(app.FullName()), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	start := min(f.Offset(), len(out))
	end := min(start+f.Limit, len(out))
	return out[start:end], total, nil
}

func (r *memApplications) UpdateReview(ctx context.Context, id uuid.UUID, status model.ApplicationStatus, notes string, at time.Time) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps[i].Status, r.apps[i].Notes, r.apps[i].UpdatedAt = status, notes, at
			app := r.apps[i]
			return &app, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memApplications) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[model.ApplicationStatus]int64{}
	for _, app := range r.apps {
		counts[app.Status]++
	}
	return counts, nil
}

func (r *memApplications) CountSince(ctx context.Context, since time.Time) (int64, error) {
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

type fakeAuth struct {
	mu        sync.Mutex
	signedOut []string
	signUps   []service.SignUpRequest
}

func (a *fakeAuth) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	if email == adminUser.Email && password == "correct horse" {
		return &service.Session{AccessToken: adminToken, ExpiresIn: 3600, User: *adminUser}, nil
	}
	return nil, service.ErrInvalidCredentials
}

func (a *fakeAuth) SignUp(ctx context.Context, req service.SignUpRequest) (*service.Session, *service.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signUps = append(a.signUps, req)
	if req.Email == "taken@example.co.za" {
		return nil, nil, fmt.Errorf("%w: %s", service.ErrAuthRejected, "User already registered")
	}
	return nil, &service.User{ID: uuid.New(), Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (a *fakeAuth) SignOut(ctx context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedOut = append(a.signedOut, token)
	return nil
}

func (a *fakeAuth) User(ctx context.Context, token string) (*service.User, error) {
	switch token {
	case adminToken:
		return adminUser, nil
	case userToken:
		return plainUser, nil
	}
	return nil, service.ErrInvalidToken
}

type testServer struct {
	app      *fiber.App
	apps     *memApplications
	storage  *memStorage
	auth     *fakeAuth
	sessions *usecase.Sessions
}

const testMaxUpload = 1 << 20

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		apps:    &memApplications{},
		storage: &memStorage{objects: map[string][]byte{}},
		auth:    &fakeAuth{},
	}
	submitter := usecase.NewSubmissionUsecase(ts.storage, ts.apps, "documents")
	ts.sessions = usecase.NewSessions(store.NewMemoryKV(), submitter, time.Hour)
	review := usecase.NewReviewUsecase(ts.apps, ts.storage, "documents")

	ts.app = fiber.New()
	api := ts.app.Group("/api", middleware.OptionalUser(ts.auth))
	NewWizardHandler(ts.sessions, testMaxUpload, nil).RegisterRoutes(api)
	NewAdminHandler(review).RegisterRoutes(api)
	NewAuthHandler(ts.auth).RegisterRoutes(api)
	return ts
}

type request struct {
	method  string
	path    string
	draftID string
	token   string
	body    any
}

type result struct {
	status int
	header http.Header
	raw    []byte
	json   gjson.Result
}

func (ts *testServer) do(t *testing.T, r request) result {
	t.Helper()
	var body io.Reader
	contentType := ""
	switch b := r.body.(type) {
	case nil:
	case *multipartBody:
		body, contentType = &b.buf, b.contentType
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body, contentType = bytes.NewReader(raw), fiber.MIMEApplicationJSON
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if r.draftID != "" {
		req.Header.Set(DraftIDHeader, r.draftID)
	}
	if r.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, header: resp.Header, raw: raw, json: gjson.ParseBytes(raw)}
}

type multipartBody struct {
	buf         bytes.Buffer
	contentType string
}

func fileUpload(t *testing.T, name, contentType string, content []byte) *multipartBody {
	t.Helper()
	mb := &multipartBody{}
	mw := multipart.NewWriter(&mb.buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("lastModified", "1700000000000"))
	require.NoError(t, mw.Close())
	mb.contentType = mw.FormDataContentType()
	return mb
}
