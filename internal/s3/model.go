package s3

// ObjectCategory selects which bucket an object belongs to
type ObjectCategory string

const (
	CategoryPolicyDocument  ObjectCategory = "policy_document"
	CategoryClaimAttachment ObjectCategory = "claim_attachment"
)

// Object is a blob to be stored, together with its addressing info
type Object struct {
	Category    ObjectCategory
	Key         string
	ContentType string
	Data        []byte
}
