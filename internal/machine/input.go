package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt and error text shown when reading an input string.
const (
	InputPrompt        = "Enter a string to be processed by the Turing Machine. Note: The string must contain only the symbols '0' and '1'."
	InvalidInputNotice = "Error: Invalid input string. Please enter a string that contains only the symbols '0' and '1'."
)

// InvalidSymbolError reports the first character of an input string that is
// not in the input alphabet. Offset counts runes after whitespace removal.
type InvalidSymbolError struct {
	Symbol rune
	Offset int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid input symbol %q at offset %d", e.Symbol, e.Offset)
}

// ValidateInput strips ASCII whitespace from raw and checks that only 0 and 1
// remain. Empty and all-whitespace input is valid and yields "". Other Unicode
// spaces, such as U+00A0, are invalid symbols.
func ValidateInput(raw string) (string, error) {
	normalized := strings.Map(func(r rune) rune {
		if r < 0x80 && isSpace(byte(r)) {
			return -1
		}
		return r
	}, raw)

	offset := 0
	for _, r := range normalized {
		if !IsInputSymbol(r) {
			return "", &InvalidSymbolError{Symbol: r, Offset: offset}
		}
		offset++
	}
	return normalized, nil
}

// LineSource supplies whole lines of operator input. ReadLine blocks until a
// line is available. A final unterminated line is returned with a nil error;
// io.EOF is returned once nothing is left.
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// ReadInput reads lines until one passes ValidateInput, writing
// InvalidInputNotice to errOut after each rejected line. Running out of input
// counts as entering the empty string. Only context and read errors are
// returned.
func ReadInput(ctx context.Context, lines LineSource, errOut io.Writer) (string, error) {
	for {
		raw, err := lines.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}

		input, err := ValidateInput(raw)
		if err == nil {
			return input, nil
		}
		var symErr *InvalidSymbolError
		if !errors.As(err, &symErr) {
			return "", err
		}
		fmt.Fprintln(errOut, InvalidInputNotice)
	}
}
