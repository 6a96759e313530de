package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
)

const (
	dataPrefix     = "data: "
	doneSentinel   = "[DONE]"
	readBufferSize = 4096
)

type frame struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Decoder is an incremental SSE decoder for chat-completion streams.
// A Decoder is owned by a single stream and is not safe for concurrent use.
type Decoder struct {
	buf     bytes.Buffer
	done    bool
	dropped int
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Write consumes the next chunk and returns the content increments of every
// line it completed. Fragments without a newline are kept for the next call.
func (d *Decoder) Write(chunk []byte) []string {
	if d.done || len(chunk) == 0 {
		return nil
	}
	d.buf.Write(chunk)

	var out []string
	for !d.done {
		i := bytes.IndexByte(d.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(d.buf.Next(i + 1)[:i])
		out = d.appendLine(out, line)
	}
	if d.done {
		d.buf.Reset()
	}
	return out
}

// Flush interprets a final line that was never terminated by a newline.
func (d *Decoder) Flush() []string {
	if d.done || d.buf.Len() == 0 {
		return nil
	}
	line := d.buf.String()
	d.buf.Reset()
	return d.appendLine(nil, line)
}

// Done reports whether the [DONE] sentinel was seen.
func (d *Decoder) Done() bool {
	return d.done
}

// Dropped is the number of data lines discarded because their payload was
// not valid JSON.
func (d *Decoder) Dropped() int {
	return d.dropped
}

func (d *Decoder) appendLine(out []string, line string) []string {
	line = strings.TrimSuffix(line, "\r")
	payload, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return out
	}
	if strings.TrimSpace(payload) == doneSentinel {
		d.done = true
		return out
	}

	var f frame
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		d.dropped++
		return out
	}
	if len(f.Choices) == 0 || f.Choices[0].Delta.Content == "" {
		return out
	}
	return append(out, f.Choices[0].Delta.Content)
}

// Decode reads r until [DONE], EOF, a read error or cancellation of ctx and
// calls emit for every increment in order. It reports whether [DONE] was seen.
// Reaching EOF without [DONE] is not an error.
func Decode(ctx context.Context, r io.Reader, emit func(string)) (bool, error) {
	dec := NewDecoder()
	defer func() {
		if n := dec.Dropped(); n > 0 {
			slog.DebugContext(ctx, "dropped malformed stream frames", slog.Int("count", n))
		}
	}()

	buf := make([]byte, readBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			for _, inc := range dec.Write(buf[:n]) {
				emit(inc)
			}
			if dec.Done() {
				return true, nil
			}
		}
		if errors.Is(err, io.EOF) {
			for _, inc := range dec.Flush() {
				emit(inc)
			}
			return dec.Done(), nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			return false, fmt.Errorf("read stream: %w", err)
		}
	}
}
