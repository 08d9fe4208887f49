package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Operator is a search-engine dork operator
type Operator string

const (
	OpSite     Operator = "site"
	OpInURL    Operator = "inurl"
	OpInTitle  Operator = "intitle"
	OpFiletype Operator = "filetype"
	OpCache    Operator = "cache"
)

// Operators lists the operators in button order
func Operators() []Operator {
	return []Operator{OpSite, OpInURL, OpInTitle, OpFiletype, OpCache}
}

// ParseOperator converts a name into an Operator
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operators() {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// BuildDork builds the query string for an operator. fileType is only used by
// the filetype operator, which requires it.
func BuildDork(op Operator, term, fileType string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrEmptyInput
	}

	switch op {
	case OpSite, OpInURL, OpInTitle, OpCache:
		return string(op) + ":" + term, nil
	case OpFiletype:
		fileType = strings.TrimPrefix(strings.TrimSpace(fileType), ".")
		if fileType == "" {
			return "", fmt.Errorf("filetype operator needs a file type: %w", ErrEmptyInput)
		}
		return "filetype:" + fileType + " " + term, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}

// SearchURL returns the search-engine URL for a query
func (l *Lookups) SearchURL(query string) string {
	return l.opts.SearchURL + "?q=" + url.QueryEscape(query)
}

// Dork is the dork lookup function. Input is a complete query as produced by
// BuildDork; the resulting URL is handed to the configured opener.
func (l *Lookups) Dork(_ context.Context, input string) Result {
	if strings.TrimSpace(input) == "" {
		return Failed(ErrEmptyInput)
	}

	target := l.SearchURL(input)
	if l.opts.Opener == nil {
		return Failed(errors.New("no browser available to open " + target))
	}
	if err := l.opts.Opener.OpenURL(target); err != nil {
		return Failed(fmt.Errorf("failed to open browser: %w", err))
	}
	return Success("Opened: " + target)
}
