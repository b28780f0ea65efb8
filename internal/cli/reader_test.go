package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "test input\n",
			expected: []string{"test input"},
		},
		{
			name:     "extra whitespace",
			input:    "  test input  \n",
			expected: []string{"test input"},
		},
		{
			name:     "empty line",
			input:    "\n",
			expected: []string{""},
		},
		{
			name:     "last line without newline",
			input:    "one\ntwo",
			expected: []string{"one", "two"},
		},
		{
			name:     "windows line endings",
			input:    "one\r\n",
			expected: []string{"one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))
			for _, want := range tt.expected {
				got, err := r.ReadLine(context.Background())
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := r.ReadLine(context.Background())
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestLineReader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineReader(strings.NewReader("ignored\n")).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestLineReader_CancelWhileBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewLineReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}
