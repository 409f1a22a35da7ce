package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-tracker/internal/fileutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/store"
)

// Format is an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatExcel    Format = "excel"
	FormatCSV      Format = "csv"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", &parsererror.InvalidFormatError{
			ExpectedFormat: "markdown, excel or csv",
			Msg:            fmt.Sprintf("unknown export format %q", name),
		}
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Extension returns the usual file extension for f, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return ".xlsx"
	case FormatCSV:
		return ".csv"
	default:
		return ".md"
	}
}

// Exporter reads every stored record and writes it in the requested format.
type Exporter struct {
	repo      store.Repository
	logger    logging.Logger
	sheetName string
}

// NewExporter creates an Exporter.
func NewExporter(repo store.Repository, sheetName string, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Exporter{repo: repo, logger: logger, sheetName: sheetName}
}

// Export writes all records to path and returns how many were written. The records
// are loaded before path is created, so a store failure leaves an existing file intact.
func (e *Exporter) Export(ctx context.Context, format, path string) (int, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return 0, err
	}
	records, err := e.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return 0, err
	}
	werr := e.write(f, file, records)
	if cerr := file.Close(); cerr != nil && werr == nil {
		werr = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	if werr != nil {
		return 0, werr
	}

	e.logger.Info("Exported transactions",
		logging.F(logging.FieldFormat, string(f)),
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(records)))
	return len(records), nil
}

// WriteTo writes all records to w in format f.
func (e *Exporter) WriteTo(ctx context.Context, f Format, w io.Writer) (int, error) {
	records, err := e.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := e.write(f, w, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (e *Exporter) write(f Format, w io.Writer, records []models.Record) error {
	switch f {
	case FormatMarkdown:
		return WriteMarkdown(w, records)
	case FormatExcel:
		return WriteExcel(w, records, e.sheetName)
	case FormatCSV:
		return WriteCSV(w, records)
	default:
		return &parsererror.InvalidFormatError{ExpectedFormat: "markdown, excel or csv", Msg: string(f)}
	}
}
