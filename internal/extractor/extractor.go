// Package extractor turns one free-text bank notification into a transaction record
// by asking the oracle for a JSON object and validating the reply.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/oracle"
	"fjacquet/budget-tracker/internal/parsererror"
)

// Extractor is the extraction adapter. It never panics and never returns a partial record.
type Extractor struct {
	client oracle.Client
	logger logging.Logger
}

// New creates an Extractor.
func New(client oracle.Client, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Extractor{client: client, logger: logger}
}

// Extract returns the record described by message, or false when the oracle failed or
// its reply was unusable. The returned record has no category yet.
func (e *Extractor) Extract(ctx context.Context, message, description string) (models.Record, bool) {
	rec, err := e.ExtractRecord(ctx, message, description)
	if err != nil {
		reason := "reply"
		if errors.As(err, new(*parsererror.OracleError)) {
			reason = "transport"
		}
		e.logger.WithError(err).Warn("Could not extract transaction from message",
			logging.F(logging.FieldReason, reason))
		return models.Record{}, false
	}
	return rec, true
}

// ExtractRecord is Extract with the failure cause exposed. Errors are either
// *parsererror.OracleError or *parsererror.ReplyError.
func (e *Extractor) ExtractRecord(ctx context.Context, message, description string) (rec models.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = models.Record{}
			err = &parsererror.ReplyError{Reason: fmt.Sprintf("panic while handling reply: %v", r)}
		}
	}()

	if strings.TrimSpace(message) == "" {
		return models.Record{}, &parsererror.ReplyError{Reason: "empty message"}
	}
	if e.client == nil {
		return models.Record{}, &parsererror.OracleError{Provider: "none", Err: errors.New("no oracle configured")}
	}

	reply, err := e.client.Complete(ctx, BuildPrompt(message, description))
	if err != nil {
		var oe *parsererror.OracleError
		if !errors.As(err, &oe) {
			err = &parsererror.OracleError{Provider: e.client.Name(), Err: err}
		}
		return models.Record{}, err
	}

	return ParseReply(reply)
}

// ParseReply decodes a reply strictly as one JSON object holding all six fields.
// Only surrounding whitespace is tolerated.
func ParseReply(reply string) (models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(reply))))
	dec.UseNumber()

	var raw models.RawRecord
	if err := dec.Decode(&raw); err != nil {
		return models.Record{}, &parsererror.ReplyError{Reason: "reply is not a JSON object", Reply: reply, Err: err}
	}
	if dec.More() {
		return models.Record{}, &parsererror.ReplyError{Reason: "trailing data after JSON object", Reply: reply}
	}

	rec, err := raw.Normalize()
	if err != nil {
		return models.Record{}, &parsererror.ReplyError{Reason: "reply misses required fields", Reply: reply, Err: err}
	}

	// The operation label carries the direction; amounts are stored unsigned.
	rec.Amount = math.Abs(rec.Amount)
	rec.Category = ""
	return rec, nil
}
