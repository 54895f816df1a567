package types

// QuoteStatus is the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "PENDING"
	QuoteStatusExpired   QuoteStatus = "EXPIRED"
	QuoteStatusConverted QuoteStatus = "CONVERTED"
)

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) Validate() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusExpired, QuoteStatusConverted:
		return true
	}
	return false
}
