// Package shell is the interactive loop: paste a message to store it, or type
// summary, ask or exit.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/pipeline"
	"fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/store"

	"github.com/fatih/color"
)

const (
	cmdExit    = "exit"
	cmdSummary = "summary"
	cmdAsk     = "ask"
)

// MessageIngestor stores one pasted message.
type MessageIngestor interface {
	IngestMessage(ctx context.Context, text string) pipeline.Result
}

// QuestionAnswerer answers a question about records.
type QuestionAnswerer interface {
	Answer(ctx context.Context, records []models.Record, question string) string
}

// Shell reads commands from In and writes responses to Out.
type Shell struct {
	in       io.Reader
	out      io.Writer
	ingestor MessageIngestor
	repo     store.Repository
	answerer QuestionAnswerer
	logger   logging.Logger

	ok     *color.Color
	warn   *color.Color
	errc   *color.Color
	prompt *color.Color
	title  *color.Color
}

// New creates a Shell. Color is disabled when noColor is set.
func New(in io.Reader, out io.Writer, ingestor MessageIngestor, repo store.Repository, answerer QuestionAnswerer, logger logging.Logger, noColor bool) *Shell {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	s := &Shell{
		in:       in,
		out:      out,
		ingestor: ingestor,
		repo:     repo,
		answerer: answerer,
		logger:   logger,
		ok:       color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		errc:     color.New(color.BgRed, color.FgWhite),
		prompt:   color.New(color.FgCyan),
		title:    color.New(color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{s.ok, s.warn, s.errc, s.prompt, s.title} {
			c.DisableColor()
		}
	}
	return s
}

// Run loops until "exit", end of input or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	s.title.Fprintln(s.out, "Enter a financial SMS message (Arabic/English), type 'summary' for report, 'ask' for Q&A, or 'exit':")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.prompt.Fprintln(s.out, "\nPaste message or command:")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case cmdExit:
			return nil
		case cmdSummary:
			s.summary(ctx)
		case cmdAsk:
			s.prompt.Fprintln(s.out, "Enter your question (Arabic or English):")
			if !scanner.Scan() {
				return scanner.Err()
			}
			s.ask(ctx, strings.TrimSpace(scanner.Text()))
		default:
			s.ingest(ctx, line)
		}
	}
}

func (s *Shell) summary(ctx context.Context) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load transactions for summary")
		s.errc.Fprintf(s.out, "Could not load transactions: %v\n", err)
		return
	}
	if err := report.Summarize(records).WriteText(s.out); err != nil {
		s.logger.WithError(err).Warn("Failed to print summary")
	}
}

func (s *Shell) ask(ctx context.Context, question string) {
	if question == "" {
		s.warn.Fprintln(s.out, "Please type a question.")
		return
	}
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load transactions for question")
		s.errc.Fprintf(s.out, "Could not load transactions: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Answer: %s\n", s.answerer.Answer(ctx, records, question))
}

func (s *Shell) ingest(ctx context.Context, message string) {
	res := s.ingestor.IngestMessage(ctx, message)
	switch res.Status {
	case pipeline.StatusSaved:
		s.ok.Fprintf(s.out, "Transaction saved with category: %s\n", res.Record.Category)
	case pipeline.StatusStoreFailed:
		s.errc.Fprintf(s.out, "Could not save transaction: %v\n", res.Err)
	default:
		s.warn.Fprintln(s.out, "Could not parse message.")
	}
}
