package dto

import (
	"github.com/assurly/assurly/internal/domain/document"
)

type DocumentResponse struct {
	*document.Document
	// DownloadURL is a short-lived presigned link, populated on demand
	DownloadURL string `json:"download_url,omitempty"`
}
