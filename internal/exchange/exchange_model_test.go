package exchange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parthsharma-2/skillswap/internal/exchange"
)

func TestDeriveCompletionState(t *testing.T) {
	tests := []struct {
		name          string
		adminApproved bool
		user1Done     bool
		user2Done     bool
		want          exchange.CompletionState
	}{
		{"nothing done", false, false, false, exchange.CompletionInProgress},
		{"only user1 done", false, true, false, exchange.CompletionPartial},
		{"only user2 done", false, false, true, exchange.CompletionPartial},
		{"both done unapproved", false, true, true, exchange.CompletionAwaitingAdmin},
		{"approved", true, true, true, exchange.CompletionAdminApproved},
		{"approval wins over flags", true, false, false, exchange.CompletionAdminApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exchange.DeriveCompletionState(tt.adminApproved, tt.user1Done, tt.user2Done)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsParticipant(t *testing.T) {
	e := exchange.Exchange{User1ID: 7, User2ID: 9}

	assert.True(t, e.IsParticipant(7))
	assert.True(t, e.IsParticipant(9))
	assert.False(t, e.IsParticipant(8))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []exchange.Status{
		exchange.StatusPending, exchange.StatusActive, exchange.StatusCompleted,
		exchange.StatusDispute, exchange.StatusCancelled,
	} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, exchange.Status("archived").Valid())
}
