package pdfparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParser_ValidateFormat(t *testing.T) {
	p := NewParser(NewMockPDFExtractor(nil, nil), logging.NewMockLogger())

	valid := writeFile(t, "valid.pdf", "%PDF-1.5\nSome PDF content")
	ok, err := p.ValidateFormat(valid)
	assert.NoError(t, err)
	assert.True(t, ok)

	invalid := writeFile(t, "invalid.pdf", "This is not a PDF file")
	ok, err = p.ValidateFormat(invalid)
	assert.NoError(t, err)
	assert.False(t, ok)

	short := writeFile(t, "short.pdf", "%P")
	ok, err = p.ValidateFormat(short)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.ValidateFormat(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.False(t, ok)
	var ve *parsererror.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestParser_ParseFile(t *testing.T) {
	mock := NewMockPDFExtractor([]string{
		"Date Description Amount",
		"2025/06/01 شراء examplco",
		"35.00 SAR",
		"2025/06/02 راتب",
	}, nil)
	logger := logging.NewMockLogger()
	p := NewParser(mock, logger)

	path := writeFile(t, "statement.pdf", "%PDF-1.7\n")
	blocks, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025/06/01 شراء examplco 35.00 SAR", "2025/06/02 راتب"}, blocks)
	assert.Equal(t, []string{path}, mock.Calls)
	assert.True(t, logger.HasEntry("INFO", "Parsing PDF file"))
}

func TestParser_ParseFile_NotPDF(t *testing.T) {
	mock := NewMockPDFExtractor([]string{"2025/06/01 a"}, nil)
	p := NewParser(mock, logging.NewMockLogger())

	_, err := p.ParseFile(writeFile(t, "notes.pdf", "hello"))
	var fe *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "PDF", fe.ExpectedFormat)
	assert.Empty(t, mock.Calls)
}

func TestParser_ParseFile_ExtractionFailure(t *testing.T) {
	p := NewParser(NewMockPDFExtractor(nil, errors.New("corrupt xref")), logging.NewMockLogger())

	_, err := p.ParseFile(writeFile(t, "broken.pdf", "%PDF-1.4"))
	var pe *parsererror.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "text extraction", pe.Field)
}

func TestSplitLines(t *testing.T) {
	text := "  first line  \r\n\n second\fthird page\n   \n"
	assert.Equal(t, []string{"first line", "second", "third page"}, SplitLines(text))
	assert.Nil(t, SplitLines("   \n\n"))
}

func TestNewExtractor(t *testing.T) {
	e, err := NewExtractor("")
	require.NoError(t, err)
	assert.IsType(t, &PlainTextExtractor{}, e)

	e, err = NewExtractor("pdftotext")
	require.NoError(t, err)
	assert.IsType(t, &PdftotextExtractor{}, e)

	_, err = NewExtractor("ocr")
	assert.Error(t, err)
}

func TestPdftotextExtractor_MissingBinary(t *testing.T) {
	e := &PdftotextExtractor{Binary: filepath.Join(t.TempDir(), "no-such-binary")}
	_, err := e.ExtractLines("whatever.pdf")
	assert.Error(t, err)
}
