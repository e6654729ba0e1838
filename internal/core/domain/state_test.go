package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/core/domain"
)

func TestSyncMachine_PagePass(t *testing.T) {
	var m domain.SyncMachine
	steps := []domain.SyncState{
		domain.StateParsingTemplates,
		domain.StateDerivingTasks,
		domain.StateFetching,
		domain.StateResolving,
		domain.StateRedirecting,
		domain.StateResolving,
		domain.StateResolving,
		domain.StateReporting,
		domain.StateDone,
	}
	for _, s := range steps {
		require.NoError(t, m.Transition(s), "to %s", s)
	}
	assert.Equal(t, domain.StateDone, m.State())
}

func TestSyncMachine_TaskListStartsAtFetching(t *testing.T) {
	var m domain.SyncMachine
	require.NoError(t, m.Transition(domain.StateFetching))
	require.NoError(t, m.Transition(domain.StateReporting))
	require.NoError(t, m.Transition(domain.StateDone))
}

func TestSyncMachine_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []domain.SyncState
		next domain.SyncState
	}{
		{"skip parsing", nil, domain.StateResolving},
		{"parse twice", []domain.SyncState{domain.StateParsingTemplates}, domain.StateParsingTemplates},
		{"redirect before resolve", []domain.SyncState{domain.StateFetching}, domain.StateRedirecting},
		{"done is terminal", []domain.SyncState{domain.StateFetching, domain.StateReporting, domain.StateDone}, domain.StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m domain.SyncMachine
			for _, s := range tt.path {
				require.NoError(t, m.Transition(s))
			}
			before := m.State()
			err := m.Transition(tt.next)
			require.ErrorContains(t, err, domain.ErrInvalidTransition.Error())
			assert.Equal(t, before, m.State())
		})
	}
}

func TestSyncState_String(t *testing.T) {
	assert.Equal(t, "idle", domain.StateIdle.String())
	assert.Equal(t, "redirecting", domain.StateRedirecting.String())
	assert.Equal(t, "invalid", domain.SyncState(99).String())
}
