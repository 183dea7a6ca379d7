package domain_test

import (
	"testing"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSessionStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to domain.SessionStatus
		want     bool
	}{
		{domain.SessionScheduled, domain.SessionCompleted, true},
		{domain.SessionScheduled, domain.SessionCancelled, true},
		{domain.SessionScheduled, domain.SessionNoShow, true},
		{domain.SessionNoShow, domain.SessionScheduled, true},
		{domain.SessionNoShow, domain.SessionCompleted, false},
		{domain.SessionCompleted, domain.SessionScheduled, false},
		{domain.SessionCompleted, domain.SessionCancelled, false},
		{domain.SessionCancelled, domain.SessionScheduled, false},
		{domain.SessionScheduled, domain.SessionStatus("DONE"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
