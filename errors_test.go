package pontoon_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endeer/pontoon"
)

func TestNotFoundError(t *testing.T) {
	t.Parallel()
	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "pontoon: Project not found", pontoon.NewNotFoundError("Project").Error())
		assert.Equal(t, `pontoon: Locale "kab" not found`, pontoon.NewNotFoundErrorWithKey("Locale", "kab").Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := pontoon.NewNotFoundErrorWithKey("Project", "firefox")
		assert.True(t, errors.Is(err, pontoon.ErrNotFound))
		assert.Equal(t, "Project", err.Label())
		assert.Equal(t, "firefox", err.Key())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := pontoon.NewNotFoundError("Locale")
		assert.True(t, pontoon.IsNotFound(err))
		assert.True(t, pontoon.IsNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, pontoon.IsNotFound(pontoon.ErrNotFound))
		assert.False(t, pontoon.IsNotFound(errors.New("other error")))
		assert.False(t, pontoon.IsNotFound(nil))
	})
}

func TestNotSingularError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pontoon: Project not singular", pontoon.NewNotSingularError("Project").Error())

	err := pontoon.NewNotSingularErrorWithCount("Project", 2)
	assert.Equal(t, "pontoon: Project not singular (got 2 results, expected 1)", err.Error())
	assert.Equal(t, 2, err.Count())
	assert.True(t, errors.Is(err, pontoon.ErrNotSingular))
	assert.True(t, pontoon.IsNotSingular(fmt.Errorf("lookup: %w", err)))
	assert.False(t, pontoon.IsNotSingular(pontoon.ErrNotFound))
	assert.False(t, pontoon.IsNotSingular(nil))
}

func TestNotLoadedError(t *testing.T) {
	t.Parallel()
	err := pontoon.NewNotLoadedError("localizations")
	assert.Equal(t, `pontoon: edge "localizations" was not loaded`, err.Error())
	assert.True(t, pontoon.IsNotLoaded(err))
	assert.True(t, pontoon.IsNotLoaded(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, pontoon.IsNotLoaded(errors.New("other")))
	assert.False(t, pontoon.IsNotLoaded(nil))
}

func TestCyclicQueryError(t *testing.T) {
	t.Parallel()
	err := pontoon.NewCyclicQueryError("project.localizations.locale.localizations")
	assert.Equal(t, "Cyclic queries are forbidden", err.Error())
	assert.Equal(t, "project.localizations.locale.localizations", err.Path)
	assert.True(t, errors.Is(err, pontoon.ErrCyclicQuery))
	assert.True(t, pontoon.IsCyclicQuery(fmt.Errorf("resolve: %w", err)))
	assert.True(t, pontoon.IsCyclicQuery(pontoon.ErrCyclicQuery))
	assert.False(t, pontoon.IsCyclicQuery(pontoon.ErrNotFound))
	assert.False(t, pontoon.IsCyclicQuery(nil))
}

func TestQueryError(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection reset")

	err := pontoon.NewQueryError("Project", "select", cause)
	assert.Equal(t, "pontoon: querying Project (select): connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, pontoon.IsQueryError(fmt.Errorf("outer: %w", err)))

	noOp := pontoon.NewQueryError("Tag", "", cause)
	assert.Equal(t, "pontoon: querying Tag: connection reset", noOp.Error())
	assert.False(t, pontoon.IsQueryError(cause))
	assert.False(t, pontoon.IsQueryError(nil))
}

func TestPrivacyError(t *testing.T) {
	t.Parallel()
	err := pontoon.NewPrivacyError("Project", "deny-all")
	assert.Equal(t, "pontoon: privacy denied query on Project (rule: deny-all)", err.Error())
	assert.Equal(t, "pontoon: privacy denied query on Project", pontoon.NewPrivacyError("Project", "").Error())
	assert.True(t, pontoon.IsPrivacyError(err))
	assert.False(t, pontoon.IsPrivacyError(nil))
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()
	sentinels := []error{pontoon.ErrNotFound, pontoon.ErrNotSingular, pontoon.ErrCyclicQuery}
	for i, a := range sentinels {
		require.Error(t, a)
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
