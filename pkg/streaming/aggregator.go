// Package streaming aggregates response chunk streams
package streaming

import (
	"context"
	"strings"
)

// Aggregate drains chunks until the channel closes, concatenating them
// into the full response. onChunk, when non-nil, observes every chunk
// as it arrives. On cancellation the text aggregated so far is returned
// together with ctx.Err().
func Aggregate(ctx context.Context, chunks <-chan string, onChunk func(string)) (string, error) {
	var b strings.Builder
	for {
		select {
		case <-ctx.Done():
			return b.String(), ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return b.String(), nil
			}
			b.WriteString(chunk)
			if onChunk != nil {
				onChunk(chunk)
			}
		}
	}
}

// ChunkString splits s into size-byte chunks delivered on a channel
// that closes after the last chunk. A non-positive size yields the
// whole string at once. Useful for simulating token streams.
func ChunkString(s string, size int) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		if size <= 0 {
			size = len(s)
		}
		for i := 0; i < len(s); i += size {
			end := i + size
			if end > len(s) {
				end = len(s)
			}
			out <- s[i:end]
		}
	}()
	return out
}
