package natsx

import (
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
)

// ClientName identifies storywriter connections on the NATS server.
const ClientName = "storywriter"

// NewClient connects to the NATS server at url, falling back to the NATS_URL
// environment variable and then nats.DefaultURL. Connections are named
// ClientName and use compression; opts are applied after those defaults.
func NewClient(url string, opts ...nats.Option) (*nats.Conn, error) {
	conn, err := nats.Connect(ResolveURL(url), append(DefaultOptions(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return conn, nil
}

func DefaultOptions() []nats.Option {
	return []nats.Option{nats.Name(ClientName), nats.Compression(true)}
}

func ResolveURL(url string) string {
	if url != "" {
		return url
	}
	if env := os.Getenv("NATS_URL"); env != "" {
		return env
	}
	return nats.DefaultURL
}
