package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fadilmartias/careers-portal/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type StorageServiceInterface interface {
	Upload(ctx context.Context, bucket, path string, body []byte, contentType string) error
	PublicURL(bucket, path string) string
	Download(ctx context.Context, bucket, path string) ([]byte, error)
}

// SupabaseStorage talks to the hosted storage REST API.
type SupabaseStorage struct {
	client  *resty.Client
	baseURL string
}

func NewSupabaseStorage(cfg *config.SupabaseConfig) *SupabaseStorage {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.Key()).
		SetAuthToken(cfg.Key())
	return &SupabaseStorage{client: client, baseURL: cfg.URL}
}

func (s *SupabaseStorage) Upload(ctx context.Context, bucket, path string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetHeader("x-upsert", "false").
		SetBody(body).
		Post(objectPath(bucket, path))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("storage upload %s: %s", path, errorMessage(resp))
	}
	return nil
}

func (s *SupabaseStorage) PublicURL(bucket, path string) string {
	return s.baseURL + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func (s *SupabaseStorage) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(objectPath(bucket, path))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("storage download %s: %s", path, errorMessage(resp))
	}
	return resp.Body(), nil
}

func objectPath(bucket, path string) string {
	return "/storage/v1/object/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func escapePath(path string) string {
	parts := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// errorMessage digs the human-readable reason out of a hosted-API error body.
func errorMessage(resp *resty.Response) string {
	body := resp.Body()
	for _, key := range []string{"message", "error_description", "msg", "error"} {
		if msg := gjson.GetBytes(body, key).String(); msg != "" {
			return msg
		}
	}
	return resp.Status()
}
