// internal/onboarding/corporation-check/service.go
package corporationcheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/common/metrics"
	"corp-onboarding/internal/models"
	"corp-onboarding/internal/onboarding/format"
)

// Validator turns a changing corporation number field into at most one settled
// registry check per pause in typing.
//
// Every value change bumps a token; a scheduled callback or an in-flight response
// whose token is no longer current is dropped. Close ends the field: nothing is
// emitted once it returns.
type Validator struct {
	config    *Config
	logger    logger.Logger
	checker   Checker
	scheduler Scheduler
	listener  Listener

	// emitMu serializes state changes with listener calls so listeners observe
	// transitions in order. It is never held across a registry call.
	emitMu sync.Mutex

	mu            sync.Mutex
	state         State
	number        string
	seen          bool
	token         uint64
	closed        bool
	cancelTimer   CancelFunc
	cancelRequest context.CancelFunc
}

func NewValidator(deps ServiceDependencies, config *Config) (*Validator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for corporation-check: %w", err)
	}
	if deps.Checker == nil {
		return nil, fmt.Errorf("corporation checker is required")
	}

	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Validator{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"component": "corporation-check"}),
		checker:   deps.Checker,
		scheduler: scheduler,
		listener:  deps.Listener,
		state:     State{Status: StatusIdle},
	}, nil
}

// State returns the current snapshot.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Update feeds the field's current display value.
//
// A changed canonical value cancels any scheduled or in-flight check and resets the
// state to idle. Complete nine digit values schedule a check after the quiet period.
// Display-only edits that leave the canonical value unchanged are ignored.
func (v *Validator) Update(display string) {
	number := format.CanonicalCorporation(display)

	v.emitMu.Lock()
	defer v.emitMu.Unlock()

	v.mu.Lock()
	if v.closed || (v.seen && number == v.number) {
		v.mu.Unlock()
		return
	}

	v.seen = true
	v.number = number
	v.token++
	v.stopLocked("superseded")
	v.state = State{Status: StatusIdle, Number: number}

	if format.IsCompleteCorporation(number) {
		token := v.token
		v.cancelTimer = v.scheduler.Schedule(v.config.Debounce, func() {
			v.run(token, number)
		})
	}

	state := v.state
	v.mu.Unlock()

	v.emit(state)
}

// Close tears the field down. Scheduled checks are cancelled, in-flight requests are
// aborted and their results discarded.
func (v *Validator) Close() {
	v.emitMu.Lock()
	defer v.emitMu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.token++
	v.stopLocked("closed")

	v.logger.Debug("Corporation check closed", map[string]interface{}{
		"corporationNumber": v.number,
	})
}

// run fires when the quiet period for token elapsed.
func (v *Validator) run(token uint64, number string) {
	ctx, cancel := context.WithTimeout(context.Background(), v.config.Timeout)
	defer cancel()

	v.emitMu.Lock()
	v.mu.Lock()
	if v.closed || token != v.token {
		v.mu.Unlock()
		v.emitMu.Unlock()
		return
	}
	v.cancelTimer = nil
	v.cancelRequest = cancel
	v.state = State{Status: StatusPending, Number: number}
	pending := v.state
	v.mu.Unlock()
	v.emit(pending)
	v.emitMu.Unlock()

	v.logger.Debug("Checking corporation number", map[string]interface{}{
		"corporationNumber": number,
	})

	start := time.Now()
	result, err := v.checker.ValidateCorporationNumber(ctx, number)
	next := settle(number, result, err)

	if !v.finish(token, next) {
		metrics.CorporationChecksDiscarded.WithLabelValues("stale").Inc()
		v.logger.Debug("Discarded stale corporation check", map[string]interface{}{
			"corporationNumber": number,
		})
		return
	}

	outcome := string(next.Status)
	metrics.CorporationChecksTotal.WithLabelValues(outcome).Inc()
	metrics.CorporationCheckDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	fields := map[string]interface{}{
		"corporationNumber": number,
		"status":            outcome,
	}
	if err != nil {
		fields["error"] = err.Error()
		v.logger.Warn("Corporation check failed", fields)
		return
	}
	v.logger.Info("Corporation check settled", fields)
}

// finish applies a settled state if token is still current.
func (v *Validator) finish(token uint64, next State) bool {
	v.emitMu.Lock()
	defer v.emitMu.Unlock()

	v.mu.Lock()
	if v.closed || token != v.token {
		v.mu.Unlock()
		return false
	}
	v.cancelRequest = nil
	v.state = next
	v.mu.Unlock()

	v.emit(next)
	return true
}

// stopLocked cancels the scheduled timer and the in-flight request. Callers hold mu.
func (v *Validator) stopLocked(reason string) {
	if v.cancelTimer != nil {
		v.cancelTimer()
		v.cancelTimer = nil
		metrics.CorporationChecksDiscarded.WithLabelValues(reason).Inc()
	}
	if v.cancelRequest != nil {
		v.cancelRequest()
		v.cancelRequest = nil
		metrics.CorporationChecksDiscarded.WithLabelValues(reason).Inc()
	}
}

// emit calls the listener. Callers hold emitMu and not mu.
func (v *Validator) emit(state State) {
	if v.listener != nil {
		v.listener(state)
	}
}

func settle(number string, result *models.CorporationValidationResult, err error) State {
	switch {
	case err != nil || result == nil:
		return State{Status: StatusRequestFailed, Number: number, Message: MsgCheckFailed}
	case result.Valid:
		return State{Status: StatusValid, Number: number}
	case result.Message != "":
		return State{Status: StatusInvalid, Number: number, Message: result.Message}
	default:
		return State{Status: StatusInvalid, Number: number, Message: MsgServiceUnavailable}
	}
}
