package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{":8501", "localhost:8501"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayAddr(tt.in))
	}
}

func TestWeb_Metadata(t *testing.T) {
	assert.Equal(t, "web", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("addr"))
	assert.Error(t, Cmd.Args(Cmd, []string{"extra"}))
}
