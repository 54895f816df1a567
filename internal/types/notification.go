package types

import "time"

// NotificationType identifies the kind of event being notified
type NotificationType string

const (
	NotificationPolicyIssued       NotificationType = "policy.issued"
	NotificationPolicyRenewed      NotificationType = "policy.renewed"
	NotificationPolicyCancelled    NotificationType = "policy.cancelled"
	NotificationPolicyExpired      NotificationType = "policy.expired"
	NotificationPolicyExpiringSoon NotificationType = "policy.expiring_soon"
	NotificationClaimReceived      NotificationType = "claim.received"
	NotificationClaimStatusChanged NotificationType = "claim.status_changed"
	NotificationDocumentsGenerated NotificationType = "documents.generated"
)

// Notification is a fire-and-forget message handed to the notification
// sink. Delivery failures are logged by the caller and never abort the
// lifecycle operation that produced them.
type Notification struct {
	ID                string           `json:"id"`
	RecipientID       string           `json:"recipient_id"`
	Type              NotificationType `json:"type"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	RelatedEntityType string           `json:"related_entity_type,omitempty"`
	RelatedEntityID   string           `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// NewNotification builds a notification with a fresh id and timestamp
func NewNotification(recipientID string, nType NotificationType, title, message string) *Notification {
	return &Notification{
		ID:          GenerateUUIDWithPrefix(UUID_PREFIX_NOTIFICATION),
		RecipientID: recipientID,
		Type:        nType,
		Title:       title,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithRelatedEntity attaches the entity the notification refers to
func (n *Notification) WithRelatedEntity(entityType, entityID string) *Notification {
	n.RelatedEntityType = entityType
	n.RelatedEntityID = entityID
	return n
}
