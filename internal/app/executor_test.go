package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/domain"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	var steps []string

	op := Operation[int, int, int, string]{
		Name: "double",
		Validate: func(context.Context, int) error {
			steps = append(steps, "validate")
			return nil
		},
		Perform: func(_ context.Context, in int) (int, error) {
			steps = append(steps, "perform")
			return in * 2, nil
		},
		Verify: func(_ context.Context, _ int, p int) (int, error) {
			steps = append(steps, "verify")
			return p + 1, nil
		},
		Archive: func(context.Context, int, int) error {
			steps = append(steps, "archive")
			return nil
		},
		Respond: func(_ context.Context, _ int, v int) (string, error) {
			steps = append(steps, "respond")
			return string(rune('A' + v)), nil
		},
	}

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 2)
	require.NoError(t, err)

	assert.Equal(t, "F", out)
	assert.Equal(t, []string{"validate", "perform", "verify", "archive", "respond"}, steps)
}

func TestExecute_NilVerifyPassesPerformedValue(t *testing.T) {
	op := Operation[string, int, int, int]{
		Perform: func(context.Context, string) (int, error) { return 7, nil },
		Respond: func(_ context.Context, _ string, v int) (int, error) { return v, nil },
	}

	out, err := Execute(context.Background(), NewExecutor(nil), op, "x")
	require.NoError(t, err)
	assert.Equal(t, 7, out)
}

func TestExecute_StopsAtFailingStep(t *testing.T) {
	archived := false

	op := Operation[int, int, int, int]{
		Verify: func(context.Context, int, int) (int, error) {
			return 0, domain.NewConflictError("quote request", "stale cart")
		},
		Archive: func(context.Context, int, int) error {
			archived = true
			return nil
		},
	}

	_, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 1)
	require.Error(t, err)

	assert.False(t, archived)
	assert.True(t, domain.IsConflict(err))

	step, ok := GetExecutionStep(err)
	require.True(t, ok)
	assert.Equal(t, StepVerify, step)
	assert.Equal(t, "verify failed: quote request conflict: stale cart", err.Error())
}

func TestGetExecutionStep_OtherError(t *testing.T) {
	_, ok := GetExecutionStep(errors.New("plain"))
	assert.False(t, ok)
}
