package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/llmprovider"
	"assessment-forge/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicProvider fails the test if Generate/GenerateStreaming is ever
// called, proving a rejected run never reaches the Writer.
type panicProvider struct{ t *testing.T }

func (p panicProvider) Generate(ctx context.Context, req llmprovider.Request) (string, string, error) {
	p.t.Fatal("Generate should not be called once the run is rejected")
	return "", "", nil
}

func (p panicProvider) GenerateStreaming(ctx context.Context, req llmprovider.Request) (<-chan llmprovider.Chunk, error) {
	p.t.Fatal("GenerateStreaming should not be called once the run is rejected")
	return nil, nil
}

// emptyProvider always returns an empty completion, so the Writer never
// commits any slot and the run fails with WriterIncomplete on its first
// attempt.
type emptyProvider struct{}

func (emptyProvider) Generate(ctx context.Context, req llmprovider.Request) (string, string, error) {
	return "", "end_turn", nil
}

func (emptyProvider) GenerateStreaming(ctx context.Context, req llmprovider.Request) (<-chan llmprovider.Chunk, error) {
	ch := make(chan llmprovider.Chunk, 1)
	ch <- llmprovider.Chunk{Done: true, StopReason: "end_turn"}
	close(ch)
	return ch, nil
}

func testIntent() domain.TeacherIntent {
	return domain.TeacherIntent{
		UserID:         "u1",
		Topic:          "fractions",
		AssessmentType: domain.AssessmentQuiz,
		StudentLevel:   domain.LevelStandard,
		TimeMinutes:    20,
		QuestionCount:  2,
	}
}

func TestRunRejectsWhenDailyCapAlreadyReached(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	usage := storage.NewUsageRepo(adapter)
	ok, err := usage.Increment(context.Background(), "u1", "2026-07-30", 0, 0)
	require.NoError(t, err)
	require.True(t, ok)

	o := New(panicProvider{t}, adapter, nil, Config{
		DailyFreeLimit:   1,
		PipelineDeadline: time.Second,
		MaxRestarts:      1,
	})

	_, err = o.Run(context.Background(), testIntent(), "run-1", 1, "2026-07-30")
	require.Error(t, err)

	var pipelineErr *domain.PipelineError
	require.True(t, errors.As(err, &pipelineErr))
	assert.Equal(t, domain.ErrUsageCapRead, pipelineErr.Kind)
}

func TestRunReturnsPipelineDeadlineOnAlreadyCancelledContext(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	o := New(panicProvider{t}, adapter, nil, Config{
		PipelineDeadline: time.Second,
		MaxRestarts:      1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, testIntent(), "run-2", 1, "2026-07-30")
	require.Error(t, err)

	var pipelineErr *domain.PipelineError
	require.True(t, errors.As(err, &pipelineErr))
	assert.Equal(t, domain.ErrPipelineDeadline, pipelineErr.Kind)
}

func TestRunFailsWithWriterIncompleteWhenProviderNeverCommits(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	o := New(emptyProvider{}, adapter, nil, Config{
		PipelineDeadline:   time.Second,
		WriterChunkSizeMax: 5,
		MaxRestarts:        1,
	})

	_, err := o.Run(context.Background(), testIntent(), "run-3", 1, "2026-07-30")
	require.Error(t, err)

	var pipelineErr *domain.PipelineError
	require.True(t, errors.As(err, &pipelineErr))
	assert.Equal(t, domain.ErrWriterIncomplete, pipelineErr.Kind)
}

func TestRunWithZeroDailyFreeLimitDisablesUsageCap(t *testing.T) {
	adapter := storage.NewMemoryAdapter()
	o := New(emptyProvider{}, adapter, nil, Config{
		DailyFreeLimit:     0,
		PipelineDeadline:   time.Second,
		WriterChunkSizeMax: 5,
		MaxRestarts:        1,
	})

	_, err := o.Run(context.Background(), testIntent(), "run-4", 1, "2026-07-30")
	require.Error(t, err)

	var pipelineErr *domain.PipelineError
	require.True(t, errors.As(err, &pipelineErr))
	assert.NotEqual(t, domain.ErrUsageCapRead, pipelineErr.Kind, "a zero daily limit must not trip the usage cap")
}
