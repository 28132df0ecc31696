package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/polyworks/site-api/internal/platform/logging"
)

// Write operations that touch more than one store run as five steps:
//
//  1. validate  check the input before anything is read or written
//  2. perform   build the new state
//  3. verify    re-check the built state against current data
//  4. archive   persist it (only reached when verify passed)
//  5. respond   shape the result for the caller
//
// A failure stops the run and is wrapped in an ExecutionError naming the step.

// ExecutionStep names a step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step an operation failed in.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

// Unwrap exposes the cause so domain errors keep mapping to HTTP statuses.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs Operations with step-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger uses slog.Default().
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation bundles the step functions. Nil steps are skipped; a nil
// Verify passes the performed value through unchanged when P and V are the
// same type, and the zero V otherwise.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

func stepError(step ExecutionStep, err error) error {
	return &ExecutionError{Step: step, Cause: err}
}

// Execute runs op against input.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		zero      O
		performed P
		verified  V
		err       error
	)

	logger := exec.logger
	if ctxLogger, ok := logging.Lookup(ctx); ok {
		logger = ctxLogger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		if err = op.Validate(ctx, input); err != nil {
			logger.WarnContext(ctx, "validation failed", slog.Any("error", err))

			return zero, stepError(StepValidate, err)
		}
	}

	if op.Perform != nil {
		if performed, err = op.Perform(ctx, input); err != nil {
			logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))

			return zero, stepError(StepPerform, err)
		}
	}

	if op.Verify != nil {
		if verified, err = op.Verify(ctx, input, performed); err != nil {
			logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))

			return zero, stepError(StepVerify, err)
		}
	} else if v, ok := any(performed).(V); ok {
		verified = v
	}

	if op.Archive != nil {
		if err = op.Archive(ctx, input, verified); err != nil {
			logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))

			return zero, stepError(StepArchive, err)
		}
	}

	result := zero
	if op.Respond != nil {
		if result, err = op.Respond(ctx, input, verified); err != nil {
			logger.WarnContext(ctx, "respond failed", slog.Any("error", err))

			return zero, stepError(StepRespond, err)
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep reports the step err failed in.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
