package claim

import (
	"time"

	"github.com/assurly/assurly/internal/types"
)

// Incident describes what happened, as reported by the policy holder
type Incident struct {
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
}

// HistoryEntry is one record in the append-only status log. Every
// status mutation appends exactly one entry; the past is never edited.
type HistoryEntry struct {
	Status    types.ClaimStatus `json:"status"`
	ChangedBy string            `json:"changed_by"`
	Note      string            `json:"note,omitempty"`
	At        time.Time         `json:"at"`
}

// Message is a conversation entry between the insurer and the holder
type Message struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"author_id"`
	Body     string    `json:"body"`
	At       time.Time `json:"at"`
}

// Attachment is a file uploaded in support of the claim
type Attachment struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	BlobLocation string    `json:"blob_location"`
	ByteSize     int64     `json:"byte_size"`
	UploadedBy   string    `json:"uploaded_by"`
	At           time.Time `json:"at"`
}

// Claim is a loss declaration against a policy. Claims are never
// deleted; their lifecycle ends in a terminal status.
type Claim struct {
	ID        string            `db:"id" json:"id"`
	Reference string            `db:"reference" json:"reference"`
	OwnerID   string            `db:"owner_id" json:"owner_id"`
	PolicyID  string            `db:"policy_id" json:"policy_id"`
	VehicleID string            `db:"vehicle_id" json:"vehicle_id"`
	Status    types.ClaimStatus `db:"status" json:"status"`
	Incident  Incident          `json:"incident"`
	ExpertID  *string           `db:"expert_id" json:"expert_id,omitempty"`

	Attachments []Attachment   `json:"attachments,omitempty"`
	Messages    []Message      `json:"messages,omitempty"`
	History     []HistoryEntry `json:"history"`

	types.BaseModel
}

// AppendHistory records a status change in the append-only log
func (c *Claim) AppendHistory(status types.ClaimStatus, changedBy, note string) {
	c.History = append(c.History, HistoryEntry{
		Status:    status,
		ChangedBy: changedBy,
		Note:      note,
		At:        time.Now().UTC(),
	})
}
