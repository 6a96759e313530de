package natsx

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	t.Setenv("NATS_URL", "")
	assert.Equal(t, nats.DefaultURL, ResolveURL(""))

	t.Setenv("NATS_URL", "nats://queue:4222")
	assert.Equal(t, "nats://queue:4222", ResolveURL(""))
	assert.Equal(t, "nats://explicit:4222", ResolveURL("nats://explicit:4222"))
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient("nats://127.0.0.1:1", nats.Timeout(200*time.Millisecond))
	assert.ErrorContains(t, err, "connect to nats")
}

func TestDefaultOptions(t *testing.T) {
	var o nats.Options
	for _, opt := range DefaultOptions() {
		assert.NoError(t, opt(&o))
	}
	assert.Equal(t, ClientName, o.Name)
	assert.True(t, o.Compression)
}
