package types

import (
	"fmt"
	"regexp"
)

// DocumentKind identifies the legal document category
type DocumentKind string

const (
	DocumentKindAttestation  DocumentKind = "ATTESTATION"
	DocumentKindContract     DocumentKind = "CONTRACT"
	DocumentKindReceipt      DocumentKind = "RECEIPT"
	DocumentKindAmendment    DocumentKind = "AMENDMENT"
	DocumentKindCancellation DocumentKind = "CANCELLATION"
)

func (k DocumentKind) String() string {
	return string(k)
}

func (k DocumentKind) Validate() bool {
	_, ok := documentNumberPrefixes[k]
	return ok
}

// documentNumberPrefixes maps each kind to its fixed two-letter
// numbering prefix. The prefixes are part of the external document
// number contract and must not change.
var documentNumberPrefixes = map[DocumentKind]string{
	DocumentKindAttestation:  "AT",
	DocumentKindContract:     "CT",
	DocumentKindReceipt:      "RC",
	DocumentKindAmendment:    "AM",
	DocumentKindCancellation: "CN",
}

// NumberPrefix returns the two-letter numbering prefix for the kind
func (k DocumentKind) NumberPrefix() string {
	return documentNumberPrefixes[k]
}

// IssuedDocumentKinds is the fixed ordered set of kinds produced by a
// policy issuance. Order matters: attestation first, then contract,
// then receipt.
func IssuedDocumentKinds() []DocumentKind {
	return []DocumentKind{
		DocumentKindAttestation,
		DocumentKindContract,
		DocumentKindReceipt,
	}
}

// IsIssued reports whether the kind belongs to the issued set. Only
// issued kinds participate in the active document set of a policy;
// amendments and cancellations live alongside it and are never
// superseded by regeneration.
func (k DocumentKind) IsIssued() bool {
	switch k {
	case DocumentKindAttestation, DocumentKindContract, DocumentKindReceipt:
		return true
	}
	return false
}

// DocumentNumberPattern matches every valid document number,
// e.g. AT-2026-000042.
var DocumentNumberPattern = regexp.MustCompile(`^[A-Z]{2}-\d{4}-\d{6}$`)

// FormatDocumentNumber renders a document number from its parts
func FormatDocumentNumber(kind DocumentKind, year int, value int64) string {
	return fmt.Sprintf("%s-%04d-%06d", kind.NumberPrefix(), year, value)
}

// SequenceKey returns the registry counter key for a kind and year,
// e.g. ATTESTATION_2026. Counters restart per calendar year.
func SequenceKey(kind DocumentKind, year int) string {
	return fmt.Sprintf("%s_%d", kind, year)
}
