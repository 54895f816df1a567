package document

import (
	"github.com/assurly/assurly/internal/types"
)

// Document is the metadata record of one rendered legal document.
// Numbers are globally unique and never reused. A superseded document
// is flagged inactive and retained for audit; document records are
// never deleted.
type Document struct {
	ID           string             `db:"id" json:"id"`
	Number       string             `db:"number" json:"number"`
	Kind         types.DocumentKind `db:"kind" json:"kind"`
	PolicyID     string             `db:"policy_id" json:"policy_id"`
	BlobLocation string             `db:"blob_location" json:"blob_location"`
	ByteSize     int64              `db:"byte_size" json:"byte_size"`
	IsActive     bool               `db:"is_active" json:"is_active"`

	types.BaseModel
}
