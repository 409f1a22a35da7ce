package pdfparser

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dslipak/pdf"
)

// PDFExtractor turns a PDF file into its text lines, pages in order.
// Lines are trimmed and empty lines are dropped.
type PDFExtractor interface {
	ExtractLines(pdfPath string) ([]string, error)
}

// PlainTextExtractor reads the PDF in-process. It needs no external tools.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a PlainTextExtractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractLines implements PDFExtractor.
func (e *PlainTextExtractor) ExtractLines(pdfPath string) ([]string, error) {
	r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("error extracting text: %w", err)
	}
	if _, err := buf.ReadFrom(b); err != nil {
		return nil, fmt.Errorf("error reading extracted text: %w", err)
	}
	return SplitLines(buf.String()), nil
}

// PdftotextExtractor shells out to poppler's pdftotext with layout preserved.
type PdftotextExtractor struct {
	Binary string
}

// NewPdftotextExtractor creates a PdftotextExtractor using the pdftotext found on PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Binary: "pdftotext"}
}

// ExtractLines implements PDFExtractor.
func (e *PdftotextExtractor) ExtractLines(pdfPath string) ([]string, error) {
	bin := e.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	// "-" writes the text to stdout
	cmd := exec.CommandContext(context.Background(), bin, "-layout", pdfPath, "-") // #nosec G204 -- binary comes from config
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("error running pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return SplitLines(string(out)), nil
}

// MockPDFExtractor returns canned lines for tests.
type MockPDFExtractor struct {
	MockLines []string
	MockErr   error
	Calls     []string
}

// NewMockPDFExtractor creates a MockPDFExtractor with the given data.
func NewMockPDFExtractor(lines []string, err error) *MockPDFExtractor {
	return &MockPDFExtractor{MockLines: lines, MockErr: err}
}

// ExtractLines returns the configured lines or error.
func (e *MockPDFExtractor) ExtractLines(pdfPath string) ([]string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockLines, nil
}

// SplitLines splits extracted text on newlines and form feeds, trims every line
// and drops the empty ones.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\f", "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// NewExtractor returns the extractor registered under name: "plain" or "pdftotext".
func NewExtractor(name string) (PDFExtractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return NewPlainTextExtractor(), nil
	case "pdftotext":
		return NewPdftotextExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor %q", name)
	}
}

func readMagic(path string, n int) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if err != nil && read == 0 {
		return nil, err
	}
	return buf[:read], nil
}
