package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []ProjectStatus{
	StatusElaborado,
	StatusEmNegociacao,
	StatusPerdido,
	StatusAguardandoPagamento,
	StatusAtivo,
	StatusInadimplente,
	StatusCancelado,
	StatusConcluido,
}

// TestTransitions_EveryStatusHasARow verifies the transition table covers
// exactly the eight defined statuses
func TestTransitions_EveryStatusHasARow(t *testing.T) {
	assert.Len(t, Transitions, len(allStatuses))
	for _, status := range allStatuses {
		_, ok := Transitions[status]
		assert.True(t, ok, "status %s missing from transition table", status)
		assert.True(t, status.IsValid())
	}
}

// TestTransitions_TargetsAreValidStatuses verifies every reachable status
// is itself a member of the status set
func TestTransitions_TargetsAreValidStatuses(t *testing.T) {
	for from, targets := range Transitions {
		for _, to := range targets {
			assert.True(t, to.IsValid(), "transition %s -> %s targets an undefined status", from, to)
		}
	}
}

// TestTerminalStatuses_AdmitNoTransitions tests that perdido, cancelado
// and concluido have no outgoing edges
func TestTerminalStatuses_AdmitNoTransitions(t *testing.T) {
	terminals := []ProjectStatus{StatusPerdido, StatusCancelado, StatusConcluido}

	for _, status := range terminals {
		assert.True(t, status.IsTerminal(), "%s should be terminal", status)
		assert.Empty(t, AllowedTransitions(status))
		for _, target := range allStatuses {
			assert.False(t, CanTransition(status, target),
				"terminal status %s should not allow transition to %s", status, target)
		}
	}

	nonTerminals := []ProjectStatus{
		StatusElaborado, StatusEmNegociacao, StatusAguardandoPagamento,
		StatusAtivo, StatusInadimplente,
	}
	for _, status := range nonTerminals {
		assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
	}
}

// TestCanTransition_GraphEdges spot-checks the documented edges,
// including the ativo <-> inadimplente cycle
func TestCanTransition_GraphEdges(t *testing.T) {
	assert.True(t, CanTransition(StatusElaborado, StatusEmNegociacao))
	assert.True(t, CanTransition(StatusElaborado, StatusPerdido))
	assert.True(t, CanTransition(StatusEmNegociacao, StatusAguardandoPagamento))
	assert.True(t, CanTransition(StatusAguardandoPagamento, StatusAtivo))
	assert.True(t, CanTransition(StatusAtivo, StatusInadimplente))
	assert.True(t, CanTransition(StatusInadimplente, StatusAtivo))
	assert.True(t, CanTransition(StatusInadimplente, StatusCancelado))

	// No back-edges outside the cycle
	assert.False(t, CanTransition(StatusEmNegociacao, StatusElaborado))
	assert.False(t, CanTransition(StatusAtivo, StatusAguardandoPagamento))
	assert.False(t, CanTransition(StatusElaborado, StatusAtivo))
	assert.False(t, CanTransition(StatusAtivo, StatusPerdido))
}

// TestAllowedTransitions_IsPure verifies repeated queries return equal
// sets and that mutating a returned slice does not affect the table
func TestAllowedTransitions_IsPure(t *testing.T) {
	first := AllowedTransitions(StatusAtivo)
	require.NotEmpty(t, first)

	// Mutate the returned copy
	first[0] = StatusElaborado

	second := AllowedTransitions(StatusAtivo)
	assert.Equal(t, []ProjectStatus{StatusConcluido, StatusCancelado, StatusInadimplente}, second)

	// Unknown status yields an empty, non-nil slice
	assert.Empty(t, AllowedTransitions(ProjectStatus("bogus")))
	assert.NotNil(t, AllowedTransitions(ProjectStatus("bogus")))
}

// TestMissingContextFields covers the required-field gate per target status
func TestMissingContextFields(t *testing.T) {
	tests := []struct {
		name    string
		target  ProjectStatus
		context map[string]string
		missing []string
	}{
		{
			name:    "all fields present",
			target:  StatusEmNegociacao,
			context: map[string]string{"negotiation_start": "2024-01-10"},
			missing: []string{},
		},
		{
			name:    "field absent",
			target:  StatusPerdido,
			context: map[string]string{},
			missing: []string{"loss_reason"},
		},
		{
			name:    "empty value counts as missing",
			target:  StatusCancelado,
			context: map[string]string{"cancellation_reason": ""},
			missing: []string{"cancellation_reason"},
		},
		{
			name:    "no requirements for unknown target",
			target:  ProjectStatus("bogus"),
			context: map[string]string{},
			missing: []string{},
		},
		{
			name:    "extra keys are ignored",
			target:  StatusAtivo,
			context: map[string]string{"start_date": "2024-02-01", "notes": "kickoff"},
			missing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, MissingContextFields(tt.target, tt.context))
		})
	}
}

// TestStatusConfigs_CoverAllStatuses ensures the UI badge table has an
// entry for every status
func TestStatusConfigs_CoverAllStatuses(t *testing.T) {
	assert.Len(t, StatusConfigs, len(allStatuses))
	for _, status := range allStatuses {
		cfg, ok := StatusConfigs[status]
		require.True(t, ok, "missing badge config for %s", status)
		assert.NotEmpty(t, cfg.Label)
		assert.NotEmpty(t, cfg.Color)
		assert.NotEmpty(t, cfg.Icon)
	}
}

// TestLossReasons verifies the constrained loss_reason value set
func TestLossReasons(t *testing.T) {
	for _, reason := range []string{"price", "timeline", "competitor", "budget", "scope", "other"} {
		assert.True(t, LossReasons[reason], "%s should be a valid loss reason", reason)
	}
	assert.False(t, LossReasons["weather"])
	assert.False(t, LossReasons[""])
}
