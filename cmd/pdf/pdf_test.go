package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/container"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/oracle"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{"operation":"شراء","card":"0000","merchant":"examplco","amount":35,"balance":10000,"timestamp":"2026-06-25T23:54:00"}`

func setup(t *testing.T, client oracle.Client, lines []string) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "transactions.db")
	c, err := container.NewContainer(context.Background(), cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithOracle(client),
		container.WithPDFExtractor(pdfparser.NewMockPDFExtractor(lines, nil)))
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() {
		root.SetContainer(nil)
		_ = c.Close()
	})
	return c
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetContext(context.Background())
	err := Cmd.RunE(Cmd, args)
	return out.String(), err
}

func TestPDF_ImportsBlocks(t *testing.T) {
	c := setup(t, oracle.NewMockClient(validReply, "groceries", validReply, "groceries"), []string{
		"Date Description Amount",
		"2025/06/01 شراء examplco", "35.00",
		"2025/06/02 شراء examplco", "35.00",
	})

	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0600))

	out, err := run(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 saved, 0 unparsed, 0 failed to store")

	recs, err := c.GetStore().ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestPDF_RejectsNonPDF(t *testing.T) {
	setup(t, oracle.NewMockClient(validReply), nil)

	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0600))

	_, err := run(t, path)
	var fe *parsererror.InvalidFormatError
	assert.ErrorAs(t, err, &fe)
}

func TestPDF_Metadata(t *testing.T) {
	assert.Equal(t, "pdf <file>", Cmd.Use)
	assert.Error(t, Cmd.Args(Cmd, nil))
}
