// Package container provides dependency injection for the budget-tracker application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/budget-tracker/internal/categorizer"
	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/extractor"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/oracle"
	"fjacquet/budget-tracker/internal/pdfparser"
	"fjacquet/budget-tracker/internal/pipeline"
	"fjacquet/budget-tracker/internal/qa"
	"fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/shell"
	"fjacquet/budget-tracker/internal/store"
	"fjacquet/budget-tracker/internal/web"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.RecordStore
	oracle      oracle.Client
	extractor   *extractor.Extractor
	categorizer *categorizer.Categorizer
	answerer    *qa.Answerer
	pdfParser   *pdfparser.Parser
	ingestor    *pipeline.Ingestor
	exporter    *report.Exporter
}

// Option overrides a dependency before wiring.
type Option func(*options)

type options struct {
	logger       logging.Logger
	oracle       oracle.Client
	pdfExtractor pdfparser.PDFExtractor
}

// WithLogger replaces the logger built from configuration.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOracle replaces the oracle client built from configuration.
func WithOracle(c oracle.Client) Option {
	return func(o *options) { o.oracle = c }
}

// WithPDFExtractor replaces the PDF text extractor built from configuration.
func WithPDFExtractor(e pdfparser.PDFExtractor) Option {
	return func(o *options) { o.pdfExtractor = e }
}

// NewContainer creates and wires all application dependencies. The record store is
// opened here, once, and stays open until Close. A provider that cannot be built is
// replaced by oracle.Unavailable.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	taxonomy, err := categorizer.LoadTaxonomy(cfg.Categories.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	pdfExtractor := o.pdfExtractor
	if pdfExtractor == nil {
		if pdfExtractor, err = pdfparser.NewExtractor(cfg.PDF.Extractor); err != nil {
			return nil, err
		}
	}

	client := o.oracle
	if client == nil {
		client, err = oracle.New(ctx, cfg)
		if err != nil {
			logger.WithError(err).Warn("Oracle unavailable, extraction and questions are disabled",
				logging.F(logging.FieldProvider, cfg.Oracle.Provider))
			client = &oracle.Unavailable{Provider: cfg.Oracle.Provider, Reason: err}
		}
	}

	recordStore, err := store.Open(ctx, cfg.Store.Path, logger)
	if err != nil {
		_ = oracle.Close(client)
		return nil, err
	}

	ex := extractor.New(client, logger)
	cat := categorizer.NewCategorizer(client, categorizer.Options{
		Taxonomy: taxonomy,
		Fallback: cfg.Categories.Fallback,
		Strict:   cfg.Categories.Strict,
	}, logger)
	answerer := qa.NewAnswerer(client, logger)
	pdfParser := pdfparser.NewParser(pdfExtractor, logger)
	ingestor := pipeline.NewIngestor(ex, cat, recordStore, pdfParser, logger)
	exporter := report.NewExporter(recordStore, cfg.Export.SheetName, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldProvider, client.Name()),
		logging.F(logging.FieldModel, cfg.Oracle.Model),
		logging.F(logging.FieldFile, cfg.Store.Path))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       recordStore,
		oracle:      client,
		extractor:   ex,
		categorizer: cat,
		answerer:    answerer,
		pdfParser:   pdfParser,
		ingestor:    ingestor,
		exporter:    exporter,
	}, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the record store.
func (c *Container) GetStore() *store.RecordStore {
	return c.store
}

// GetOracle returns the oracle client.
func (c *Container) GetOracle() oracle.Client {
	return c.oracle
}

// GetExtractor returns the extraction adapter.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetCategorizer returns the categorizer adapter.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetAnswerer returns the query adapter.
func (c *Container) GetAnswerer() *qa.Answerer {
	return c.answerer
}

// GetPDFParser returns the statement parser.
func (c *Container) GetPDFParser() *pdfparser.Parser {
	return c.pdfParser
}

// GetIngestor returns the ingest pipeline.
func (c *Container) GetIngestor() *pipeline.Ingestor {
	return c.ingestor
}

// GetExporter returns the exporter.
func (c *Container) GetExporter() *report.Exporter {
	return c.exporter
}

// NewShell returns an interactive loop bound to in and out.
func (c *Container) NewShell(in io.Reader, out io.Writer, noColor bool) *shell.Shell {
	return shell.New(in, out, c.ingestor, c.store, c.answerer, c.logger, noColor)
}

// NewWebServer returns the dashboard server.
func (c *Container) NewWebServer() *web.Server {
	return web.NewServer(c.ingestor, c.store, c.answerer, c.exporter, c.logger)
}

// Close releases the oracle client and the record store.
func (c *Container) Close() error {
	return errors.Join(oracle.Close(c.oracle), c.store.Close())
}
