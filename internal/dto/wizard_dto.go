package dto

import "github.com/fadilmartias/careers-portal/internal/model"

type SetCurrentRequest struct {
	Current bool `json:"current"`
}

// AttachmentDTO describes a stored upload without its bytes.
type AttachmentDTO struct {
	Kind         model.DocumentKind `json:"kind"`
	Name         string             `json:"name"`
	Size         int64              `json:"size"`
	Type         string             `json:"type"`
	LastModified int64              `json:"lastModified"`
}
