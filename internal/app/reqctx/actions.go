package reqctx

import (
	"context"
	"fmt"
)

// Action is a staged write.
type Action interface {
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute. It is not called for the action
	// that failed.
	Rollback(ctx context.Context) error

	Description() string
}

// ActionFunc builds an Action from closures. A nil Undo makes rollback a no-op.
type ActionFunc struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Execute implements Action.
func (a ActionFunc) Execute(ctx context.Context) error { return a.Do(ctx) }

// Rollback implements Action.
func (a ActionFunc) Rollback(ctx context.Context) error {
	if a.Undo == nil {
		return nil
	}

	return a.Undo(ctx)
}

// Description implements Action.
func (a ActionFunc) Description() string { return a.Name }

// AddAction stages action for Commit.
func (rc *RequestContext) AddAction(action Action) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	rc.actions = append(rc.actions, action)

	return nil
}

// Commit executes the staged actions in order. On failure the executed
// actions are rolled back newest first and the context stays uncommitted.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	executed := make([]Action, 0, len(rc.actions))

	for _, action := range rc.actions {
		if err := action.Execute(ctx); err != nil {
			for i := len(executed) - 1; i >= 0; i-- {
				_ = executed[i].Rollback(ctx)
			}

			return fmt.Errorf("action %q failed: %w", action.Description(), err)
		}

		executed = append(executed, action)
	}

	rc.committed = true

	return nil
}

// Actions returns a copy of the staged actions.
func (rc *RequestContext) Actions() []Action {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	result := make([]Action, len(rc.actions))
	copy(result, rc.actions)

	return result
}
