package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
)

// ErrInputTerminated is returned when input ends before an answer is given.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks the user for expense fields and confirmations.
type Prompter struct {
	writer io.Writer
	reader *LineReader
	now    func() time.Time
}

// NewPrompter creates a prompter reading from reader and writing to writer.
// Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
		now:    time.Now,
	}
}

// PromptFields asks for every empty field of f and returns the completed
// fields. Values already set are kept as given.
func (p *Prompter) PromptFields(ctx context.Context, f ledger.Fields) (ledger.Fields, error) {
	var err error

	if f.Category == "" {
		if f.Category, err = p.Choose(ctx, "Category", names(model.Categories())); err != nil {
			return f, err
		}
	}
	if f.Date == "" {
		if f.Date, err = p.Text(ctx, "Date (YYYY-MM-DD)", p.now().Format("2006-01-02")); err != nil {
			return f, err
		}
	}
	if f.Amount == "" {
		if f.Amount, err = p.Text(ctx, "Amount", ""); err != nil {
			return f, err
		}
	}
	if f.Description == "" {
		if f.Description, err = p.Text(ctx, "Description", ""); err != nil {
			return f, err
		}
	}
	if f.PaymentMethod == "" {
		if f.PaymentMethod, err = p.Choose(ctx, "Payment method", names(model.PaymentMethods())); err != nil {
			return f, err
		}
	}

	return f, nil
}

// Text asks for a non-empty line. When def is set an empty answer selects it.
func (p *Prompter) Text(ctx context.Context, prompt, def string) (string, error) {
	label := prompt
	if def != "" {
		label = fmt.Sprintf("%s [%s]", prompt, def)
	}

	for {
		input, err := p.ask(ctx, label)
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		if def != "" {
			return def, nil
		}
		p.complain(prompt + " cannot be empty. Please try again.")
	}
}

// Choose lists options and accepts either a number or an option name
// (case-insensitive).
func (p *Prompter) Choose(ctx context.Context, prompt string, options []string) (string, error) {
	var b strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&b, "  %s %s\n", SubtleStyle.Render(fmt.Sprintf("[%d]", i+1)), opt)
	}
	if _, err := fmt.Fprint(p.writer, b.String()); err != nil {
		return "", fmt.Errorf("failed to write options: %w", err)
	}

	for {
		input, err := p.ask(ctx, prompt)
		if err != nil {
			return "", err
		}
		if choice, ok := matchChoice(input, options); ok {
			return choice, nil
		}
		p.complain("Invalid choice. Please try again.")
	}
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	input, err := p.ask(ctx, question+" [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (p *Prompter) ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputTerminated
		}
		return "", err
	}
	return input, nil
}

func (p *Prompter) complain(msg string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(msg)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}

func matchChoice(input string, options []string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(input, opt) {
			return opt, true
		}
	}
	return "", false
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
