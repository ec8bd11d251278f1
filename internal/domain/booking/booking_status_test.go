package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

func TestStatusTransitions(t *testing.T) {
	allStatuses := []Status{
		StatusPending, StatusAccepted, StatusRejected,
		StatusInProgress, StatusCompleted, StatusCancelled,
	}

	allowed := map[Status]map[Status]bool{
		StatusPending: {
			StatusAccepted:  true,
			StatusRejected:  true,
			StatusCancelled: true,
		},
		StatusAccepted: {
			StatusInProgress: true,
			StatusCancelled:  true,
		},
		StatusInProgress: {
			StatusCompleted: true,
		},
		StatusRejected:  {},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from][to]
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "transition %s -> %s", from, to)

			err := ValidateTransition(from, to)
			if want {
				assert.NoError(t, err, "transition %s -> %s", from, to)
			} else {
				require.Error(t, err, "transition %s -> %s", from, to)
				var ise *domain.InvalidStateError
				require.ErrorAs(t, err, &ise)
				assert.Equal(t, string(from), ise.From)
				assert.Equal(t, string(to), ise.To)
			}
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, s)

	_, err = ParseStatus("accepted")
	assert.Error(t, err, "statuses are case sensitive")

	_, err = ParseStatus("SHIPPED")
	assert.Error(t, err)
}

func TestSelfTransitionRejected(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusInProgress} {
		assert.Error(t, ValidateTransition(s, s), "self transition %s", s)
	}
}
