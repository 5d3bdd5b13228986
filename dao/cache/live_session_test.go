package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis 用 map 模拟 set 和 publish
type memRedis struct {
	redis.Cmdable
	sets     map[string]map[string]struct{}
	messages map[string][]string
}

func newMemRedis() *memRedis {
	return &memRedis{
		sets:     map[string]map[string]struct{}{},
		messages: map[string][]string{},
	}
}

func (m *memRedis) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	set, ok := m.sets[key]
	if !ok {
		set = map[string]struct{}{}
		m.sets[key] = set
	}
	var added int64
	for _, member := range members {
		s := toString(member)
		if _, ok := set[s]; !ok {
			set[s] = struct{}{}
			added++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(added)
	return cmd
}

func (m *memRedis) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	cmd := redis.NewStringSliceCmd(ctx)
	cmd.SetVal(out)
	return cmd
}

func (m *memRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := m.sets[key]; ok {
			delete(m.sets, key)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(n)
	return cmd
}

func (m *memRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	m.messages[channel] = append(m.messages[channel], toString(message))
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	default:
		raw, _ := json.Marshal(val)
		return string(raw)
	}
}

func TestLiveSessionStorage_Members(t *testing.T) {
	ctx := context.Background()
	rds := newMemRedis()
	s := NewLiveSessionStorage(rds)

	require.NoError(t, s.Join(ctx, 1, 10))
	require.NoError(t, s.Join(ctx, 1, 11))
	require.NoError(t, s.Join(ctx, 1, 10))
	require.NoError(t, s.Join(ctx, 2, 12))

	members, err := s.Members(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{10, 11}, members)
	members, err = s.Members(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{12}, members)

	require.NoError(t, s.Clear(ctx, 1))
	members, err = s.Members(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, members)
	members, err = s.Members(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{12}, members)
}

func TestLiveSessionStorage_PublishEnded(t *testing.T) {
	ctx := context.Background()
	rds := newMemRedis()
	s := NewLiveSessionStorage(rds)

	require.NoError(t, s.PublishEnded(ctx, 7, 3))

	msgs := rds.messages[LiveSessionEventsChannel]
	require.Len(t, msgs, 1)

	var event LiveSessionEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0]), &event))
	assert.Equal(t, LiveSessionEvent{Event: LiveSessionEventEnded, SessionID: 7, NoteID: 3}, event)
}

func TestLiveSessionMembersKey(t *testing.T) {
	assert.Equal(t, "live:session:42:members", LiveSessionMembersKey(42))
}
