// Package categorizer assigns one label from a closed category set to a merchant
// by asking the oracle.
package categorizer

import (
	"context"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/oracle"
)

// Options configures a Categorizer.
type Options struct {
	Taxonomy []models.CategoryConfig
	Fallback string
	// Strict replaces labels outside the taxonomy with Fallback.
	Strict bool
}

// Categorizer is the categorizer adapter. Categorize always returns a label.
type Categorizer struct {
	client   oracle.Client
	logger   logging.Logger
	taxonomy []models.CategoryConfig
	allowed  map[string]bool
	fallback string
	strict   bool
}

// NewCategorizer creates a Categorizer. Empty options fall back to the default
// taxonomy and the "other" label.
func NewCategorizer(client oracle.Client, opts Options, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	taxonomy := opts.Taxonomy
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}
	fallback := strings.ToLower(strings.TrimSpace(opts.Fallback))
	if fallback == "" {
		fallback = models.CategoryOther
	}

	allowed := make(map[string]bool, len(taxonomy)+1)
	for _, c := range taxonomy {
		allowed[c.Name] = true
	}
	allowed[fallback] = true

	return &Categorizer{
		client:   client,
		logger:   logger,
		taxonomy: taxonomy,
		allowed:  allowed,
		fallback: fallback,
		strict:   opts.Strict,
	}
}

// Taxonomy returns the category set offered to the oracle.
func (c *Categorizer) Taxonomy() []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(c.taxonomy))
	copy(out, c.taxonomy)
	return out
}

// Fallback returns the label used when no usable answer is available.
func (c *Categorizer) Fallback() string {
	return c.fallback
}

// Categorize returns the oracle's label for merchant, trimmed and lower-cased.
// Any failure yields the fallback label.
func (c *Categorizer) Categorize(ctx context.Context, merchant, description string) string {
	log := c.logger.WithFields(logging.F(logging.FieldMerchant, merchant))

	if c.client == nil {
		log.Warn("No oracle configured, using fallback category")
		return c.fallback
	}

	reply, err := c.client.Complete(ctx, BuildPrompt(merchant, description, c.taxonomy))
	if err != nil {
		log.WithError(err).Warn("Categorization request failed, using fallback category")
		return c.fallback
	}

	label := strings.ToLower(strings.TrimSpace(reply))
	if label == "" {
		log.Warn("Empty categorization reply, using fallback category")
		return c.fallback
	}

	if c.strict {
		clean := strings.Trim(label, "\"'`.")
		clean = strings.TrimSpace(clean)
		if !c.allowed[clean] {
			log.Warn("Category outside the allowed set, using fallback category",
				logging.F(logging.FieldCategory, label))
			return c.fallback
		}
		label = clean
	}

	log.Debug("Transaction categorized", logging.F(logging.FieldCategory, label))
	return label
}
