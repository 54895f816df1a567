package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/typst"
)

// Generator is the renderer adapter: one uniform contract over the
// external rendering engine. Failures surface as ErrRenderFailure.
type Generator interface {
	RenderDocumentPdf(ctx context.Context, data *DocumentData) ([]byte, error)
}

type service struct {
	typst typst.Compiler
}

// NewGenerator creates a typst-backed document generator
func NewGenerator(typst typst.Compiler) Generator {
	return &service{typst: typst}
}

func (s *service) RenderDocumentPdf(ctx context.Context, data *DocumentData) ([]byte, error) {
	// one template per document kind, e.g. attestation.typ
	templateName := fmt.Sprintf("%s.typ", strings.ToLower(string(data.Kind)))

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal document data").
			Mark(ierr.ErrRenderFailure)
	}

	pdfBytes, err := s.typst.CompileTemplate(
		templateName,
		jsonData,
		fmt.Sprintf("%s.pdf", data.Number),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to render %s document", data.Kind).
			Mark(ierr.ErrRenderFailure)
	}

	return pdfBytes, nil
}
