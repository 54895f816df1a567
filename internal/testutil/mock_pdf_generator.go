package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/pdf"
	"github.com/assurly/assurly/internal/types"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator implements pdf.Generator without invoking the real
// rendering engine. Individual document kinds can be made to fail,
// which is how partial issuance is exercised.
type MockPDFGenerator struct {
	mu       sync.Mutex
	failKind map[types.DocumentKind]bool
	rendered []*pdf.DocumentData
}

// NewMockPDFGenerator creates a mock generator where every render
// succeeds until FailKind is called.
func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{
		failKind: make(map[types.DocumentKind]bool),
	}
}

func (m *MockPDFGenerator) RenderDocumentPdf(ctx context.Context, data *pdf.DocumentData) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failKind[data.Kind] {
		return nil, ierr.NewErrorf("renderer unavailable for %s", data.Kind).
			Mark(ierr.ErrRenderFailure)
	}

	m.rendered = append(m.rendered, data)
	return []byte(fmt.Sprintf("%%PDF-1.7 %s %s", data.Kind, data.Number)), nil
}

// FailKind makes every subsequent render of the given kind fail
func (m *MockPDFGenerator) FailKind(kind types.DocumentKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failKind[kind] = true
}

// Rendered returns the data of every successful render, in order
func (m *MockPDFGenerator) Rendered() []*pdf.DocumentData {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*pdf.DocumentData, len(m.rendered))
	copy(result, m.rendered)
	return result
}

// Clear resets failure injection and the render log
func (m *MockPDFGenerator) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failKind = make(map[types.DocumentKind]bool)
	m.rendered = nil
}
