package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/spent/internal/model"
)

// Separator joins the fields of a stored line.
const Separator = " | "

const fieldCount = 5

// ErrMalformedLine is returned for lines without exactly five fields.
var ErrMalformedLine = errors.New("malformed line")

// ParseError reports the line of a stored ledger that failed to parse.
type ParseError struct {
	Err  error
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Serialize renders records in the line format, one record per line.
func Serialize(records []model.Expense) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes cannot fail.
	_ = Encode(&buf, records)
	return buf.Bytes()
}

// Encode writes records to w in the line format:
//
//	category | date | amount | description | payment method
//
// Backslashes, pipes and line breaks inside fields are escaped.
func Encode(w io.Writer, records []model.Expense) error {
	bw := bufio.NewWriter(w)
	for _, e := range records {
		fields := [fieldCount]string{
			escapeField(string(e.Category)),
			escapeField(e.Date),
			e.Amount.String(),
			escapeField(e.Description),
			escapeField(string(e.PaymentMethod)),
		}
		if _, err := bw.WriteString(strings.Join(fields[:], Separator) + "\n"); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

// Deserialize parses the line format. The returned records carry no IDs.
func Deserialize(data []byte) ([]model.Expense, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads the line format from r. Blank lines are skipped; any other
// malformed line fails the whole read. Lines have no length limit.
func Decode(r io.Reader) ([]model.Expense, error) {
	br := bufio.NewReader(r)

	var records []model.Expense
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read ledger: %w", readErr)
		}
		if raw != "" {
			lineNo++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if strings.TrimSpace(line) != "" {
				e, err := parseLine(line)
				if err != nil {
					return nil, &ParseError{Line: lineNo, Err: err}
				}
				records = append(records, e)
			}
		}
		if readErr != nil {
			return records, nil
		}
	}
}

func parseLine(line string) (model.Expense, error) {
	parts := splitFields(line)
	if len(parts) != fieldCount {
		return model.Expense{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldCount, len(parts))
	}

	amount, err := ParseAmount(parts[2])
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		Category:      model.Category(parts[0]),
		Date:          parts[1],
		Amount:        amount,
		Description:   parts[3],
		PaymentMethod: model.PaymentMethod(parts[4]),
	}, nil
}

func escapeField(s string) string {
	if !strings.ContainsAny(s, "\\|\n\r") {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '|':
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitFields splits line on unescaped separators and unescapes each field.
// Unknown escapes are kept verbatim so older files with stray backslashes
// read back unchanged.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			if unescaped, ok := unescape(line[i+1]); ok {
				cur.WriteByte(unescaped)
				i++
				continue
			}
		}
		if c == ' ' && strings.HasPrefix(line[i:], Separator) {
			fields = append(fields, cur.String())
			cur.Reset()
			i += len(Separator) - 1
			continue
		}
		cur.WriteByte(c)
	}

	return append(fields, cur.String())
}

func unescape(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '|':
		return '|', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	}
	return 0, false
}
