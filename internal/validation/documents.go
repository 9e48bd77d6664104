package validation

import (
	"mime"
	"path/filepath"
	"strings"
)

// Browsers send octet-stream or nothing for files they cannot identify;
// those fall back to the filename extension.
var documentExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// DocumentType resolves the media type of an upload meant as a CV or cover
// letter and reports whether it is accepted: PDF, Word and other office
// formats, or plain text.
func DocumentType(contentType, filename string) (string, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || genericMediaType(mt) {
		ext, ok := documentExtensions[strings.ToLower(filepath.Ext(filename))]
		return ext, ok
	}
	switch {
	case mt == "application/pdf", mt == "application/msword", mt == "text/plain":
		return mt, true
	case strings.HasPrefix(mt, "application/vnd."):
		return mt, true
	}
	return mt, false
}

// AcceptedDocumentType is DocumentType without the resolved media type.
func AcceptedDocumentType(contentType, filename string) bool {
	_, ok := DocumentType(contentType, filename)
	return ok
}

func genericMediaType(mt string) bool {
	return mt == "application/octet-stream" || mt == "binary/octet-stream"
}
