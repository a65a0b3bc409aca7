package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"shoplist/internal/featureflags"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_LocalDelivery(t *testing.T) {
	hub := NewHub()
	defer func() { _ = hub.Shutdown(context.Background()) }()
	client, err := hub.Register("alice", nil)
	require.NoError(t, err)

	p := NewPublisher(nil, hub, featureflags.NewManager("live_sync=on"))
	require.NoError(t, p.PublishUser(context.Background(), "alice", EventItemDeleted, map[string]string{"id": "i-1"}))

	var evt struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(<-client.Send, &evt))
	assert.Equal(t, EventItemDeleted, evt.Type)
	assert.Equal(t, "i-1", evt.Payload["id"])
}

func TestPublisher_FlagOff(t *testing.T) {
	hub := NewHub()
	defer func() { _ = hub.Shutdown(context.Background()) }()
	client, err := hub.Register("alice", nil)
	require.NoError(t, err)

	p := NewPublisher(nil, hub, featureflags.NewManager("live_sync=off"))
	require.NoError(t, p.PublishUser(context.Background(), "alice", EventItemCreated, nil))
	assert.Empty(t, client.Send)

	var nilPublisher *Publisher
	assert.NoError(t, nilPublisher.PublishUser(context.Background(), "alice", EventItemCreated, nil))
}

func TestPublisher_ViaRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	sub := rdb.Subscribe(context.Background(), UserChannel("alice"))
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	p := NewPublisher(n, nil, nil)
	require.NoError(t, p.PublishUser(context.Background(), "alice", EventCategoryCreated, map[string]string{"id": "c-1"}))

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"type":"category_created"`)
	case <-time.After(time.Second):
		t.Fatal("event not published to redis")
	}
}
