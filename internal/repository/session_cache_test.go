package repository

import (
	"context"
	"testing"
	"time"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopRecommender struct{}

func (noopRecommender) Recommend(context.Context, entity.AnswerSet) (string, error) {
	return "", nil
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		Engine:    questionnaire.NewEngine(noopRecommender{}),
		CreatedAt: time.Now(),
	}
}

func assertClosed(t *testing.T, e *questionnaire.Engine) {
	t.Helper()
	assert.ErrorIs(t, e.Reset(), entity.ErrClosed)
}

func TestSessionCache_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionCache(time.Minute, time.Minute)

	s := newSession("a")
	require.NoError(t, repo.SaveSession(ctx, s))

	got, err := repo.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, repo.Count())

	require.NoError(t, repo.DeleteSession(ctx, "a"))
	assertClosed(t, s.Engine)

	_, err = repo.GetSession(ctx, "a")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.ErrorIs(t, repo.DeleteSession(ctx, "a"), entity.ErrSessionNotFound)
}

func TestSessionCache_SaveRejectsIncompleteSession(t *testing.T) {
	repo := NewSessionCache(time.Minute, time.Minute)

	assert.ErrorIs(t, repo.SaveSession(context.Background(), nil), entity.ErrMissingField)
	assert.ErrorIs(t, repo.SaveSession(context.Background(), &Session{ID: "x"}), entity.ErrMissingField)
}

func TestSessionCache_ReplaceClosesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionCache(time.Minute, time.Minute)

	first := newSession("a")
	second := newSession("a")
	require.NoError(t, repo.SaveSession(ctx, first))
	require.NoError(t, repo.SaveSession(ctx, second))

	assertClosed(t, first.Engine)
	assert.NoError(t, second.Engine.Reset())
}

func TestSessionCache_ExpiryClosesEngine(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionCache(20*time.Millisecond, 5*time.Millisecond)

	s := newSession("a")
	require.NoError(t, repo.SaveSession(ctx, s))

	require.Eventually(t, func() bool {
		return s.Engine.Reset() != nil
	}, time.Second, 5*time.Millisecond)

	_, err := repo.GetSession(ctx, "a")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionCache_Close(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionCache(time.Minute, time.Minute)

	a, b := newSession("a"), newSession("b")
	require.NoError(t, repo.SaveSession(ctx, a))
	require.NoError(t, repo.SaveSession(ctx, b))

	repo.Close()

	assert.Equal(t, 0, repo.Count())
	assertClosed(t, a.Engine)
	assertClosed(t, b.Engine)
}
