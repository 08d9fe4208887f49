package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/kacebover/lumox/lookup"
)

// ErrUnknownModule is returned for a module the hub was not built with
var ErrUnknownModule = errors.New("unknown module")

// Hub owns one controller per enabled module
type Hub struct {
	order       []lookup.Kind
	controllers map[lookup.Kind]*LookupController
}

// NewHub creates controllers for kinds, in order, bound to the lookup set
func NewHub(lookups *lookup.Lookups, kinds []lookup.Kind, opts ...Option) (*Hub, error) {
	h := &Hub{
		controllers: make(map[lookup.Kind]*LookupController, len(kinds)),
	}

	for _, k := range kinds {
		if _, dup := h.controllers[k]; dup {
			continue
		}
		fn, err := lookups.Func(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownModule, err)
		}
		h.controllers[k] = NewLookupController(k, fn, opts...)
		h.order = append(h.order, k)
	}

	return h, nil
}

// Kinds returns the enabled modules in order
func (h *Hub) Kinds() []lookup.Kind {
	kinds := make([]lookup.Kind, len(h.order))
	copy(kinds, h.order)
	return kinds
}

// Controller returns the controller of a module
func (h *Hub) Controller(k lookup.Kind) (*LookupController, error) {
	lc, ok := h.controllers[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, k)
	}
	return lc, nil
}

// Submit dispatches input to a module
func (h *Hub) Submit(k lookup.Kind, input string) (lookup.Request, error) {
	lc, err := h.Controller(k)
	if err != nil {
		return lookup.Request{}, err
	}
	return lc.Submit(input)
}

// Start runs the completion pump of every module until ctx is done
func (h *Hub) Start(ctx context.Context, do func(func())) {
	for _, k := range h.order {
		go h.controllers[k].Pump(ctx, do)
	}
}
