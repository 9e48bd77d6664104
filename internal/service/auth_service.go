package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fadilmartias/careers-portal/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAuthRejected       = errors.New("request rejected by auth service")
)

const RoleAdmin = "admin"

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

type SignUpRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthServiceInterface interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp returns a nil session when the account still needs email confirmation.
	SignUp(ctx context.Context, req SignUpRequest) (*Session, *User, error)
	SignOut(ctx context.Context, token string) error
	User(ctx context.Context, token string) (*User, error)
}

// SupabaseAuth delegates accounts and sessions to the hosted auth API.
type SupabaseAuth struct {
	client *resty.Client
}

func NewSupabaseAuth(cfg *config.SupabaseConfig) *SupabaseAuth {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.AnonKey).
		SetTimeout(15 * time.Second)
	return &SupabaseAuth{client: client}
}

func (s *SupabaseAuth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/auth/v1/token")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sign in: %s", errorMessage(resp))
	}
	return parseSession(resp.Body())
}

func (s *SupabaseAuth) SignUp(ctx context.Context, req SignUpRequest) (*Session, *User, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":    req.Email,
			"password": req.Password,
			"data": map[string]string{
				"first_name": req.FirstName,
				"last_name":  req.LastName,
			},
		}).
		Post("/auth/v1/signup")
	if err != nil {
		return nil, nil, err
	}
	if resp.IsError() {
		return nil, nil, authError("sign up", resp)
	}
	body := resp.Body()
	if gjson.GetBytes(body, "access_token").Exists() {
		session, err := parseSession(body)
		if err != nil {
			return nil, nil, err
		}
		return session, &session.User, nil
	}
	user, err := parseUser(gjson.ParseBytes(body))
	if err != nil {
		return nil, nil, err
	}
	return nil, user, nil
}

func (s *SupabaseAuth) SignOut(ctx context.Context, token string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Post("/auth/v1/logout")
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrInvalidToken
	}
	if resp.IsError() {
		return fmt.Errorf("sign out: %s", errorMessage(resp))
	}
	return nil
}

func (s *SupabaseAuth) User(ctx context.Context, token string) (*User, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/auth/v1/user")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get user: %s", errorMessage(resp))
	}
	return parseUser(gjson.ParseBytes(resp.Body()))
}

func parseSession(body []byte) (*Session, error) {
	res := gjson.ParseBytes(body)
	token := res.Get("access_token").String()
	if token == "" {
		return nil, errors.New("auth response missing access token")
	}
	user, err := parseUser(res.Get("user"))
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  token,
		RefreshToken: res.Get("refresh_token").String(),
		ExpiresIn:    res.Get("expires_in").Int(),
		User:         *user,
	}, nil
}

// authError wraps ErrAuthRejected for 4xx answers so callers can surface the
// service's own message.
func authError(op string, resp *resty.Response) error {
	if resp.StatusCode() < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrAuthRejected, errorMessage(resp))
	}
	return fmt.Errorf("%s: %s", op, errorMessage(resp))
}

// parseUser takes the role from app_metadata only; user_metadata is writable
// by the account holder.
func parseUser(res gjson.Result) (*User, error) {
	id, err := uuid.Parse(res.Get("id").String())
	if err != nil {
		return nil, fmt.Errorf("auth response has invalid user id: %w", err)
	}
	role := res.Get("app_metadata.role").String()
	return &User{
		ID:        id,
		Email:     res.Get("email").String(),
		Role:      role,
		FirstName: res.Get("user_metadata.first_name").String(),
		LastName:  res.Get("user_metadata.last_name").String(),
	}, nil
}
