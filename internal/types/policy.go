package types

// PolicyStatus is the lifecycle status of a policy
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "ACTIVE"
	PolicyStatusExpired   PolicyStatus = "EXPIRED"
	PolicyStatusCancelled PolicyStatus = "CANCELLED"
)

func (s PolicyStatus) String() string {
	return string(s)
}

// IsTerminal returns true when no further lifecycle transition is allowed
func (s PolicyStatus) IsTerminal() bool {
	return s == PolicyStatusCancelled
}

// PaymentStatus tracks the premium payment state of a policy
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}
