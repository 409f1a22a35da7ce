// Package pipeline runs messages through extraction, categorization and storage.
package pipeline

import (
	"context"
	"time"

	"fjacquet/budget-tracker/internal/fileutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/pdfparser"
	"fjacquet/budget-tracker/internal/store"

	"github.com/google/uuid"
)

// Status is the outcome of ingesting one message.
type Status string

const (
	StatusSaved       Status = "saved"
	StatusUnparsed    Status = "unparsed"
	StatusStoreFailed Status = "store_failed"
)

// RecordExtractor turns a message into a record without a category.
type RecordExtractor interface {
	Extract(ctx context.Context, message, description string) (models.Record, bool)
}

// Categorizer labels a merchant.
type Categorizer interface {
	Categorize(ctx context.Context, merchant, description string) string
}

// BlockParser turns a statement file into transaction blocks.
type BlockParser interface {
	ParseFile(path string) ([]string, error)
}

// Result describes what happened to one message.
type Result struct {
	Message string
	Status  Status
	Record  models.Record
	Err     error
}

// Report summarizes a batch run.
type Report struct {
	RunID    string
	Source   string
	Results  []Result
	Duration time.Duration
}

// Count returns how many results have status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Ingestor is the end-to-end ingest path shared by the shell, the batch commands and
// the dashboard.
type Ingestor struct {
	extractor   RecordExtractor
	categorizer Categorizer
	repo        store.Repository
	pdf         BlockParser
	logger      logging.Logger
}

// NewIngestor creates an Ingestor. A nil pdf defaults to the dslipak/pdf text parser.
// The Ingestor is not modified after construction and may be shared between goroutines.
func NewIngestor(extractor RecordExtractor, categorizer Categorizer, repo store.Repository, pdf BlockParser, logger logging.Logger) *Ingestor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if pdf == nil {
		pdf = pdfparser.NewParser(pdfparser.NewPlainTextExtractor(), logger)
	}
	return &Ingestor{
		extractor:   extractor,
		categorizer: categorizer,
		repo:        repo,
		pdf:         pdf,
		logger:      logger,
	}
}

// IngestMessage extracts, categorizes and stores one message. It never panics and
// reports every failure through the Result.
func (i *Ingestor) IngestMessage(ctx context.Context, text string) Result {
	return i.ingest(ctx, i.logger, text)
}

func (i *Ingestor) ingest(ctx context.Context, log logging.Logger, text string) Result {
	res := Result{Message: text}

	rec, ok := i.extractor.Extract(ctx, text, "")
	if !ok {
		res.Status = StatusUnparsed
		log.Info("Message could not be parsed", logging.F(logging.FieldStatus, string(res.Status)))
		return res
	}

	rec.Category = i.categorizer.Categorize(ctx, rec.Merchant, "")

	id, err := i.repo.Append(ctx, rec)
	if err != nil {
		res.Status = StatusStoreFailed
		res.Record = rec
		res.Err = err
		log.WithError(err).Error("Failed to store transaction",
			logging.F(logging.FieldMerchant, rec.Merchant),
			logging.F(logging.FieldStatus, string(res.Status)))
		return res
	}

	rec.ID = id
	res.Status = StatusSaved
	res.Record = rec
	log.Info("Transaction saved",
		logging.F(logging.FieldRecordID, id),
		logging.F(logging.FieldMerchant, rec.Merchant),
		logging.F(logging.FieldCategory, rec.Category))
	return res
}

// IngestFile ingests every non-blank line of a text file as one message.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (Report, error) {
	lines, err := fileutils.ReadLines(path)
	if err != nil {
		return Report{Source: path}, err
	}
	return i.run(ctx, path, lines)
}

// IngestPDF segments a bank statement PDF and ingests each transaction block.
func (i *Ingestor) IngestPDF(ctx context.Context, path string) (Report, error) {
	blocks, err := i.pdf.ParseFile(path)
	if err != nil {
		return Report{Source: path}, err
	}
	return i.run(ctx, path, blocks)
}

// IngestMessages ingests an in-memory list of messages as one run.
func (i *Ingestor) IngestMessages(ctx context.Context, source string, messages []string) (Report, error) {
	return i.run(ctx, source, messages)
}

func (i *Ingestor) run(ctx context.Context, source string, messages []string) (Report, error) {
	start := time.Now()
	report := Report{
		RunID:   uuid.NewString(),
		Source:  source,
		Results: make([]Result, 0, len(messages)),
	}
	log := i.logger.WithFields(
		logging.F(logging.FieldRunID, report.RunID),
		logging.F(logging.FieldFile, source))

	log.Info("Starting ingest run", logging.F(logging.FieldCount, len(messages)))

	for n, msg := range messages {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			log.WithError(err).Warn("Ingest run interrupted",
				logging.F(logging.FieldCount, n))
			return report, err
		}
		report.Results = append(report.Results, i.ingest(ctx, log.WithField(logging.FieldBlock, n+1), msg))
	}

	report.Duration = time.Since(start)
	log.Info("Finished ingest run",
		logging.F("saved", report.Count(StatusSaved)),
		logging.F("unparsed", report.Count(StatusUnparsed)),
		logging.F("store_failed", report.Count(StatusStoreFailed)),
		logging.F(logging.FieldDuration, report.Duration.Milliseconds()))
	return report, nil
}
