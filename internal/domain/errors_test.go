package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindCategory(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want UserFacingCategory
	}{
		{ErrUsageCapRead, CategoryQuota},
		{ErrLLMUnavailable, CategoryServiceUnavailable},
		{ErrStorageTransient, CategoryServiceUnavailable},
		{ErrStorageCASMiss, CategoryServiceUnavailable},
		{ErrBlueprintInvalid, CategoryInvalidRequest},
		{ErrWriterIncomplete, CategoryInvalidRequest},
		{ErrCancelled, CategoryInternal},
		{ErrPipelineDeadline, CategoryInternal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.kind.Category(), "kind %s", c.kind)
	}
}

func TestErrorKindExitCode(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{ErrBlueprintInvalid, 2},
		{ErrWriterIncomplete, 3},
		{ErrPipelineDeadline, 3},
		{ErrCancelled, 3},
		{ErrLLMUnavailable, 4},
		{ErrUsageCapRead, 5},
		{ErrStorageTransient, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.kind.ExitCode(), "kind %s", c.kind)
	}
}

func TestPipelineErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	pe := NewPipelineError(ErrLLMUnavailable, "writer", "provider call failed", cause)

	t.Run("Error message includes kind, stage, and cause", func(t *testing.T) {
		assert.Contains(t, pe.Error(), "LLMUnavailable")
		assert.Contains(t, pe.Error(), "writer")
		assert.Contains(t, pe.Error(), "connection refused")
	})

	t.Run("errors.As unwraps a wrapped PipelineError", func(t *testing.T) {
		wrapped := fmt.Errorf("wrapper: %w", pe)
		var target *PipelineError
		assert.True(t, errors.As(wrapped, &target))
		assert.Equal(t, ErrLLMUnavailable, target.Kind)
	})

	t.Run("Unwrap returns the cause", func(t *testing.T) {
		assert.Same(t, cause, pe.Unwrap())
	})
}
