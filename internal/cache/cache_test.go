package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHook answers transactions locally and records the commands sent.
type recordingHook struct {
	cmds [][]interface{}
}

func (h *recordingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *recordingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		return next(ctx, cmd)
	}
}

func (h *recordingHook) ProcessPipelineHook(_ redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.cmds = append(h.cmds, cmd.Args())
			switch c := cmd.(type) {
			case *redis.IntCmd:
				c.SetVal(1)
			case *redis.BoolCmd:
				c.SetVal(true)
			}
		}
		return nil
	}
}

func TestDisabledClient(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*Client{"nil": nil, "no address": New("", "", 0)} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())

			n, err := c.Incr(ctx, "k", time.Minute)
			assert.NoError(t, err)
			assert.Zero(t, n)

			n, err = c.Count(ctx, "k")
			assert.NoError(t, err)
			assert.Zero(t, n)

			assert.NoError(t, c.Delete(ctx, "k"))
			assert.NoError(t, c.Close())
		})
	}
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	// Nothing listens on port 1; every call should degrade to zero.
	c := New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := c.Incr(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Count(ctx, "k")
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestIncrSetsTTLInSameTransaction(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })
	hook := &recordingHook{}
	c.client.AddHook(hook)

	n, err := c.Incr(context.Background(), "login_attempts:jane@example.com", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var names []string
	var expire []interface{}
	for _, args := range hook.cmds {
		name := args[0].(string)
		names = append(names, name)
		if name == "expire" {
			expire = args
		}
	}
	assert.Contains(t, names, "incr")
	assert.Equal(t, []interface{}{"expire", "login_attempts:jane@example.com", int64(900), "nx"}, expire)
}
