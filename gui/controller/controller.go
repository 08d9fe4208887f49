// Package controller provides the bridge between UI and lookup logic
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kacebover/lumox/lookup"
	"github.com/kacebover/lumox/metrics"
)

// ErrBusy is returned when a lookup is already running for the module
var ErrBusy = errors.New("lookup already running")

// LogLevel represents log message severity
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
	LogDebug
)

// Recorder receives lookup metrics
type Recorder interface {
	Rejected(module, outcome string)
	Started(module string)
	Finished(module string, ok bool, d time.Duration)
}

// Completion is delivered to the UI once per accepted submission
type Completion struct {
	Request  lookup.Request
	Result   lookup.Result
	Duration time.Duration
}

// Option configures a LookupController
type Option func(*LookupController)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(lc *LookupController) {
		if logger != nil {
			lc.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(lc *LookupController) {
		lc.recorder = r
	}
}

// WithContext sets the context passed to lookup functions
func WithContext(ctx context.Context) Option {
	return func(lc *LookupController) {
		if ctx != nil {
			lc.ctx = ctx
		}
	}
}

// LookupController runs at most one lookup at a time for a single module and
// hands results back through a channel drained on the UI loop
type LookupController struct {
	kind     lookup.Kind
	fn       lookup.Func
	ctx      context.Context
	logger   *zap.Logger
	recorder Recorder

	// Buffered for one: single-flight means at most one undelivered completion
	completions chan Completion

	// Callbacks
	onStateChange func(lookup.State)
	onComplete    func(Completion)
	onLogMessage  func(LogLevel, string)

	// State
	mu      sync.Mutex
	state   lookup.State
	current *lookup.Request
}

// NewLookupController creates a controller for one module
func NewLookupController(kind lookup.Kind, fn lookup.Func, opts ...Option) *LookupController {
	lc := &LookupController{
		kind:        kind,
		fn:          fn,
		ctx:         context.Background(),
		logger:      zap.NewNop(),
		completions: make(chan Completion, 1),
	}
	for _, opt := range opts {
		opt(lc)
	}
	lc.logger = lc.logger.With(zap.String("module", string(kind)))
	return lc
}

// SetOnStateChange sets the callback for Idle/Running transitions
func (lc *LookupController) SetOnStateChange(callback func(lookup.State)) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.onStateChange = callback
}

// SetOnComplete sets the callback receiving each result
func (lc *LookupController) SetOnComplete(callback func(Completion)) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.onComplete = callback
}

// SetOnLogMessage sets the callback for log messages
func (lc *LookupController) SetOnLogMessage(callback func(LogLevel, string)) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.onLogMessage = callback
}

// Kind returns the module this controller serves
func (lc *LookupController) Kind() lookup.Kind {
	return lc.kind
}

// State returns the current task state
func (lc *LookupController) State() lookup.State {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.state
}

// IsRunning returns whether a lookup is in flight
func (lc *LookupController) IsRunning() bool {
	return lc.State() == lookup.Running
}

// Current returns the in-flight request, if any
func (lc *LookupController) Current() (lookup.Request, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.current == nil {
		return lookup.Request{}, false
	}
	return *lc.current, true
}

// Submit dispatches input to the module's lookup function
func (lc *LookupController) Submit(input string) (lookup.Request, error) {
	return lc.SubmitFunc(input, lc.fn)
}

// SubmitFunc dispatches input to fn. Empty input and submissions while a
// lookup is running are rejected without changing state.
func (lc *LookupController) SubmitFunc(input string, fn lookup.Func) (lookup.Request, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		lc.reject(metrics.OutcomeEmpty)
		return lookup.Request{}, lookup.ErrEmptyInput
	}

	lc.mu.Lock()
	if lc.state == lookup.Running {
		lc.mu.Unlock()
		lc.reject(metrics.OutcomeBusy)
		return lookup.Request{}, ErrBusy
	}
	req := lookup.NewRequest(lc.kind, input)
	lc.state = lookup.Running
	lc.current = &req
	onStateChange := lc.onStateChange
	lc.mu.Unlock()

	if lc.recorder != nil {
		lc.recorder.Started(string(lc.kind))
	}
	lc.logger.Debug("Lookup submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("input", input))
	lc.log(LogInfo, fmt.Sprintf("Looking up %s", input))

	if onStateChange != nil {
		onStateChange(lookup.Running)
	}

	go lc.run(req, fn)

	return req, nil
}

// run executes the lookup off the UI loop and queues its completion
func (lc *LookupController) run(req lookup.Request, fn lookup.Func) {
	start := time.Now()
	result := safeCall(lc.ctx, fn, req.Input)
	lc.completions <- Completion{
		Request:  req,
		Result:   result,
		Duration: time.Since(start),
	}
}

// safeCall converts panics inside a lookup into a failure
func safeCall(ctx context.Context, fn lookup.Func, input string) (result lookup.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = lookup.Failure(fmt.Sprintf("lookup panicked: %v", r))
		}
	}()
	if fn == nil {
		return lookup.Failure("no lookup function configured")
	}
	return fn(ctx, input)
}

// Pump delivers completions until ctx is done. do must run its argument on
// the goroutine that owns the UI (fyne.Do in the desktop app).
func (lc *LookupController) Pump(ctx context.Context, do func(func())) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-lc.completions:
			do(func() { lc.finish(c) })
		}
	}
}

// finish applies a completion: back to Idle, then the callbacks
func (lc *LookupController) finish(c Completion) {
	lc.mu.Lock()
	lc.state = lookup.Idle
	lc.current = nil
	onComplete := lc.onComplete
	onStateChange := lc.onStateChange
	lc.mu.Unlock()

	if lc.recorder != nil {
		lc.recorder.Finished(string(lc.kind), c.Result.OK(), c.Duration)
	}

	fields := []zap.Field{
		zap.String("request_id", c.Request.ID.String()),
		zap.Duration("duration", c.Duration),
	}
	if c.Result.OK() {
		lc.logger.Info("Lookup completed", fields...)
		lc.log(LogInfo, fmt.Sprintf("Lookup completed in %s", c.Duration.Round(time.Millisecond)))
	} else {
		lc.logger.Warn("Lookup failed", append(fields, zap.String("reason", c.Result.Reason()))...)
		lc.log(LogWarning, "Lookup failed: "+c.Result.Reason())
	}

	if onComplete != nil {
		onComplete(c)
	}
	if onStateChange != nil {
		onStateChange(lookup.Idle)
	}
}

func (lc *LookupController) reject(outcome string) {
	if lc.recorder != nil {
		lc.recorder.Rejected(string(lc.kind), outcome)
	}
	lc.logger.Debug("Lookup rejected", zap.String("reason", outcome))
}

// log emits a log message to the UI callback
func (lc *LookupController) log(level LogLevel, message string) {
	lc.mu.Lock()
	onLogMessage := lc.onLogMessage
	lc.mu.Unlock()
	if onLogMessage != nil {
		onLogMessage(level, message)
	}
}
