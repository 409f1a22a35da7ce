package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fjacquet/budget-tracker/internal/categorizer"
	"fjacquet/budget-tracker/internal/extractor"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/oracle"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/pdfparser"
	"fjacquet/budget-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{"operation":"شراء","card":"0000","merchant":"examplco","amount":35,"balance":10000,"timestamp":"2026-06-25T23:54:00"}`

// routedOracle answers extraction prompts with extractReply and everything else with label.
func routedOracle(extractReply, label string) oracle.Client {
	return oracle.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		if containsAll(prompt, `"operation"`, `"timestamp"`) {
			return extractReply, nil
		}
		return label, nil
	})
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func newIngestor(client oracle.Client, repo store.Repository, pdf BlockParser) (*Ingestor, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	ex := extractor.New(client, logger)
	cat := categorizer.NewCategorizer(client, categorizer.Options{Strict: true}, logger)
	return NewIngestor(ex, cat, repo, pdf, logger), logger
}

func TestIngestMessage_Saved(t *testing.T) {
	repo := store.NewMockStore()
	ing, _ := newIngestor(routedOracle(validReply, "groceries"), repo, nil)

	res := ing.IngestMessage(context.Background(), "purchase 35 SAR at examplco")
	require.Equal(t, StatusSaved, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, int64(1), res.Record.ID)
	assert.Equal(t, "groceries", res.Record.Category)
	assert.Equal(t, 35.0, res.Record.Amount)

	recs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestIngestMessage_Unparsed(t *testing.T) {
	repo := store.NewMockStore()
	ing, _ := newIngestor(routedOracle("not json", "groceries"), repo, nil)

	res := ing.IngestMessage(context.Background(), "hello")
	assert.Equal(t, StatusUnparsed, res.Status)
	assert.Empty(t, repo.Records)
}

func TestIngestMessage_CategorizerFailureStillSaves(t *testing.T) {
	calls := 0
	client := oracle.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return validReply, nil
		}
		return "", errors.New("model crashed")
	})
	repo := store.NewMockStore()
	ing, _ := newIngestor(client, repo, nil)

	res := ing.IngestMessage(context.Background(), "msg")
	require.Equal(t, StatusSaved, res.Status)
	assert.Equal(t, models.CategoryOther, res.Record.Category)
}

func TestIngestMessage_StoreFailure(t *testing.T) {
	repo := store.NewMockStore()
	repo.AppendError = errors.New("database is locked")
	ing, logger := newIngestor(routedOracle(validReply, "transport"), repo, nil)

	var res Result
	assert.NotPanics(t, func() {
		res = ing.IngestMessage(context.Background(), "msg")
	})
	assert.Equal(t, StatusStoreFailed, res.Status)
	assert.True(t, parsererror.IsStorageFailure(res.Err))
	assert.Equal(t, "transport", res.Record.Category)
	assert.Len(t, logger.EntriesByLevel("ERROR"), 1)
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n\n  \nsecond\nthird\n"), 0600))

	replies := []string{validReply, "salary", "garbage", validReply, "weird"}
	idx := 0
	client := oracle.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		r := replies[idx]
		idx++
		return r, nil
	})
	repo := store.NewMockStore()
	ing, _ := newIngestor(client, repo, nil)

	report, err := ing.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Count(StatusSaved))
	assert.Equal(t, 1, report.Count(StatusUnparsed))
	assert.Equal(t, "salary", report.Results[0].Record.Category)
	assert.Equal(t, "other", report.Results[2].Record.Category)
	assert.Len(t, repo.Records, 2)
}

func TestIngestFile_Missing(t *testing.T) {
	ing, _ := newIngestor(routedOracle(validReply, "other"), store.NewMockStore(), nil)
	_, err := ing.IngestFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestIngestPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0600))

	mock := pdfparser.NewMockPDFExtractor([]string{
		"Date Details Amount",
		"2025/06/01 شراء examplco", "35.00",
		"2025/06/02 شراء uber", "12.00",
	}, nil)
	parser := pdfparser.NewParser(mock, logging.NewMockLogger())

	var prompts []string
	client := oracle.ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if containsAll(prompt, `"operation"`, `"timestamp"`) {
			return validReply, nil
		}
		return "groceries", nil
	})
	repo := store.NewMockStore()
	ing, _ := newIngestor(client, repo, parser)

	report, err := ing.IngestPDF(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(StatusSaved))
	require.Len(t, prompts, 4)
	assert.Contains(t, prompts[0], "2025/06/01 شراء examplco 35.00")
	assert.Contains(t, prompts[2], "2025/06/02 شراء uber 12.00")
}

func TestIngestPDF_NotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0600))

	parser := pdfparser.NewParser(pdfparser.NewMockPDFExtractor(nil, nil), logging.NewMockLogger())
	ing, _ := newIngestor(routedOracle(validReply, "other"), store.NewMockStore(), parser)

	_, err := ing.IngestPDF(context.Background(), path)
	var fe *parsererror.InvalidFormatError
	assert.ErrorAs(t, err, &fe)
}

func TestNewIngestor_DefaultPDFParser(t *testing.T) {
	ing, _ := newIngestor(routedOracle(validReply, "other"), store.NewMockStore(), nil)
	require.NotNil(t, ing.pdf)
	before := ing.pdf

	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0600))

	var wg sync.WaitGroup
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ing.IngestPDF(context.Background(), path)
			var fe *parsererror.InvalidFormatError
			assert.ErrorAs(t, err, &fe)
		}()
	}
	wg.Wait()
	assert.Same(t, before, ing.pdf)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := store.NewMockStore()
	ing, _ := newIngestor(routedOracle(validReply, "other"), repo, nil)

	report, err := ing.IngestMessages(ctx, "test", []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
	assert.Empty(t, repo.Records)
}
