// Package qa answers free-form questions about stored transactions.
package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/oracle"
)

// Apology is returned whenever no answer can be produced.
const Apology = "Sorry, I couldn't answer that."

// Answerer is the query adapter.
type Answerer struct {
	client oracle.Client
	logger logging.Logger
}

// NewAnswerer creates an Answerer.
func NewAnswerer(client oracle.Client, logger logging.Logger) *Answerer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Answerer{client: client, logger: logger}
}

// Answer returns the oracle's reply verbatim, or Apology on any failure.
func (a *Answerer) Answer(ctx context.Context, records []models.Record, question string) string {
	if a.client == nil {
		a.logger.Warn("No oracle configured, cannot answer question")
		return Apology
	}

	prompt, err := BuildPrompt(records, question)
	if err != nil {
		a.logger.WithError(err).Warn("Could not serialize records for question")
		return Apology
	}

	reply, err := a.client.Complete(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Warn("Question request failed",
			logging.F(logging.FieldCount, len(records)))
		return Apology
	}
	return reply
}

// BuildPrompt embeds records as indented JSON, non-ASCII text kept as is, followed by
// the question.
func BuildPrompt(records []models.Record, question string) (string, error) {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("لديك بيانات عمليات مالية بصيغة JSON كما يلي:\n")
	sb.WriteString(strings.TrimRight(buf.String(), "\n"))
	sb.WriteString("\n\nالسؤال: ")
	sb.WriteString(question)
	sb.WriteString("\n\nجاوبني بإجابة قصيرة ودقيقة بناءً على البيانات.\n")
	return sb.String(), nil
}
