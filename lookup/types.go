// Package lookup implements the individual OSINT lookups and the values
// exchanged between a lookup module and its controller.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies a lookup module
type Kind string

const (
	KindPhone    Kind = "phone"
	KindIP       Kind = "ip"
	KindUsername Kind = "username"
	KindDomain   Kind = "domain"
	KindDork     Kind = "dork"
)

// AllKinds lists every module in tab order
func AllKinds() []Kind {
	return []Kind{KindPhone, KindIP, KindUsername, KindDomain, KindDork}
}

// Title returns the tab label for the module
func (k Kind) Title() string {
	switch k {
	case KindPhone:
		return "Phone"
	case KindIP:
		return "IP"
	case KindUsername:
		return "Username"
	case KindDomain:
		return "Domain"
	case KindDork:
		return "Google Dork"
	default:
		return string(k)
	}
}

// ParseKind converts a module name into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", s)
}

// State is the per-module task state
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Func performs one lookup. Implementations convert every failure into a
// Failure result instead of returning an error.
type Func func(ctx context.Context, input string) Result

// Request is a single dispatched lookup. It is not modified after dispatch.
type Request struct {
	ID          uuid.UUID
	Kind        Kind
	Input       string
	SubmittedAt time.Time
}

// NewRequest creates a request for already-normalized input
func NewRequest(kind Kind, input string) Request {
	return Request{
		ID:          uuid.New(),
		Kind:        kind,
		Input:       input,
		SubmittedAt: time.Now(),
	}
}

// Result is either a success carrying text or a failure carrying a reason
type Result struct {
	ok     bool
	text   string
	reason string
}

// Success returns a successful result
func Success(text string) Result {
	return Result{ok: true, text: text}
}

// Failure returns a failed result. An empty reason is replaced so that a
// failure always has something to show.
func Failure(reason string) Result {
	if strings.TrimSpace(reason) == "" {
		reason = "unknown error"
	}
	return Result{reason: reason}
}

// Failed converts an error into a failure
func Failed(err error) Result {
	if err == nil {
		return Failure("")
	}
	return Failure(err.Error())
}

// OK reports whether the lookup succeeded
func (r Result) OK() bool { return r.ok }

// Text returns the success text
func (r Result) Text() string { return r.text }

// Reason returns the failure reason
func (r Result) Reason() string { return r.reason }

// Render returns what the output area shows for this result
func (r Result) Render() string {
	if r.ok {
		return r.text
	}
	return "Error: " + r.reason
}

func (r Result) String() string {
	if r.ok {
		return "Success(" + r.text + ")"
	}
	return "Failure(" + r.reason + ")"
}
