package pdfparser

import (
	"bytes"
	"os"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/parsererror"
)

var pdfMagic = []byte("%PDF-")

// Parser validates a statement file, extracts its lines and segments them into blocks.
type Parser struct {
	extractor PDFExtractor
	logger    logging.Logger
}

// NewParser creates a Parser. A nil extractor defaults to the in-process one.
func NewParser(extractor PDFExtractor, logger logging.Logger) *Parser {
	if extractor == nil {
		extractor = NewPlainTextExtractor()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{extractor: extractor, logger: logger}
}

// ValidateFormat reports whether the file at path starts with the PDF magic bytes.
func (p *Parser) ValidateFormat(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
	}
	if info.IsDir() {
		return false, &parsererror.ValidationError{FilePath: path, Reason: "path is a directory"}
	}
	head, err := readMagic(path, len(pdfMagic))
	if err != nil {
		return false, &parsererror.ValidationError{FilePath: path, Reason: err.Error()}
	}
	return bytes.Equal(head, pdfMagic), nil
}

// ParseFile returns the transaction blocks found in the PDF at path.
func (p *Parser) ParseFile(path string) ([]string, error) {
	ok, err := p.ValidateFormat(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "file is not a valid PDF",
		}
	}

	p.logger.Info("Parsing PDF file", logging.F(logging.FieldFile, path))

	lines, err := p.extractor.ExtractLines(path)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "PDF",
			Field:  "text extraction",
			Value:  path,
			Err:    err,
		}
	}

	blocks := SegmentBlocks(lines)
	p.logger.Debug("Segmented PDF text",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(blocks)))
	return blocks, nil
}
