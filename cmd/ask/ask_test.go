package ask

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/container"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/oracle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, client oracle.Client) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "transactions.db")
	c, err := container.NewContainer(context.Background(), cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithOracle(client))
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

func TestAsk(t *testing.T) {
	client := oracle.NewMockClient("You spent 35 SAR.")
	c := setup(t, client)
	_, err := c.GetStore().Append(context.Background(), models.Record{Merchant: "examplco", Amount: 35, Category: "groceries"})
	require.NoError(t, err)

	out, err := run(t, "how", "much", "did", "I", "spend?")
	require.NoError(t, err)
	assert.Equal(t, "You spent 35 SAR.\n", out)
	assert.Contains(t, client.LastPrompt(), "how much did I spend?")
	assert.Contains(t, client.LastPrompt(), "examplco")
}

func TestAsk_OracleDown(t *testing.T) {
	setup(t, oracle.NewFailingClient(errors.New("connection refused")))
	out, err := run(t, "anything?")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't answer that.\n", out)
}

func TestAsk_BlankQuestion(t *testing.T) {
	setup(t, oracle.NewMockClient("unused"))
	_, err := run(t, "  ")
	assert.Error(t, err)
}
