package typst

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/assurly/assurly/internal/config"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
)

// Compiler wraps the external typst binary. Templates read their data
// from a JSON file passed via --input path=<file>:
//
//	#let doc = json(sys.inputs.path)
type Compiler interface {
	CompileTemplate(templateName string, data []byte, outputFile string) ([]byte, error)
}

type compiler struct {
	logger      *logger.Logger
	binaryPath  string
	fontDir     string
	templateDir string
	outputDir   string
}

// NewCompiler creates a typst compiler from the document config
func NewCompiler(cfg *config.Configuration, logger *logger.Logger) Compiler {
	return &compiler{
		logger:      logger,
		binaryPath:  cfg.Document.TypstBinary,
		fontDir:     cfg.Document.FontDir,
		templateDir: cfg.Document.TemplateDir,
		outputDir:   cfg.Document.OutputDir,
	}
}

// CompileTemplate compiles the named template with the provided JSON
// data and returns the resulting PDF bytes.
func (c *compiler) CompileTemplate(templateName string, data []byte, outputFile string) ([]byte, error) {
	templatePath := filepath.Join(c.templateDir, templateName)
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		return nil, ierr.WithError(err).
			WithMessage(fmt.Sprintf("template not found: %s", templatePath)).
			WithHint("template error").
			Mark(ierr.ErrSystem)
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create output directory").
			Mark(ierr.ErrSystem)
	}

	jsonPath := filepath.Join(c.outputDir, fmt.Sprintf("typst-%d.json", time.Now().UnixNano()))
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to write template data file").
			Mark(ierr.ErrSystem)
	}
	defer os.Remove(jsonPath)

	if outputFile == "" {
		outputFile = fmt.Sprintf("typst-%d.pdf", time.Now().UnixNano())
	}
	outputPath := filepath.Join(c.outputDir, outputFile)
	defer os.Remove(outputPath)

	args := []string{"compile", "--root", "/"}
	if c.fontDir != "" {
		args = append(args, "--font-path", c.fontDir)
	}
	args = append(args, "--input", fmt.Sprintf("path=%s", jsonPath))
	args = append(args, templatePath, outputPath)

	cmd := exec.Command(c.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("typst compilation failed").
			WithHint("typst error").
			WithReportableDetails(map[string]any{
				"template": templateName,
				"stderr":   stderr.String(),
			}).
			Mark(ierr.ErrSystem)
	}

	return os.ReadFile(outputPath)
}
