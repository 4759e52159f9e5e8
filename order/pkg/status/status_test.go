package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Shipped, Cancelled},
		Shipped:   {Delivered},
	}

	for _, from := range All() {
		for _, to := range All() {
			expected := false
			for _, next := range allowed[from] {
				if next == to {
					expected = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, expected, CanTransition(from, to))
				err := Transition(from, to)
				if expected {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.True(t, errors.Is(err, inErrors.ErrIllegalTransition))
				var transitionErr *inErrors.TransitionError
				require.True(t, errors.As(err, &transitionErr))
				assert.Equal(t, from.String(), transitionErr.Current)
				assert.Equal(t, to.String(), transitionErr.Requested)
			})
		}
	}
}

func TestExamples(t *testing.T) {
	assert.Error(t, Transition(Pending, Shipped))
	assert.NoError(t, Transition(Pending, Cancelled))
	for _, to := range All() {
		assert.Error(t, Transition(Delivered, to))
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Delivered.Terminal())
	assert.True(t, Cancelled.Terminal())
	assert.False(t, Pending.Terminal())
	assert.Equal(t, Pending, Initial)
	assert.Empty(t, Next(Delivered))
	assert.Equal(t, []Status{Confirmed, Cancelled}, Next(Pending))
}

func TestParse(t *testing.T) {
	s, err := Parse(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, Shipped, s)

	_, err = Parse("LOST")
	assert.ErrorIs(t, err, inErrors.ErrValidation)
}
