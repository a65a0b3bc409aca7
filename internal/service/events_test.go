package service

import (
	"context"
	"testing"

	"shoplist/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_OnlyToOwner(t *testing.T) {
	ctx := context.Background()
	alice, bob := "alice-id", "bob-id"

	tests := []struct {
		name      string
		recipient string
		owner     *string
		delivered bool
	}{
		{"owner receives", alice, &alice, true},
		{"other user's row", bob, &alice, false},
		{"global row", alice, nil, false},
		{"anonymous recipient", "", &alice, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &recordingPublisher{}
			publish(ctx, events, tt.recipient, tt.owner, notifications.EventItemUpdated, map[string]string{"id": "i1"})

			if !tt.delivered {
				assert.Empty(t, events.types())
				return
			}
			require.Len(t, events.events, 1)
			assert.Equal(t, tt.recipient, events.events[0].UserID)
		})
	}
}

func TestPublish_NilPublisher(t *testing.T) {
	owner := "alice-id"
	assert.NotPanics(t, func() {
		publish(context.Background(), nil, owner, &owner, notifications.EventItemDeleted, nil)
	})
}
