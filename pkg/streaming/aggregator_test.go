package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ConcatenatesChunks(t *testing.T) {
	chunks := make(chan string, 3)
	chunks <- "Hello, "
	chunks <- "streaming "
	chunks <- "world"
	close(chunks)

	var seen []string
	out, err := Aggregate(context.Background(), chunks, func(chunk string) {
		seen = append(seen, chunk)
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello, streaming world", out)
	assert.Equal(t, []string{"Hello, ", "streaming ", "world"}, seen)
}

func TestAggregate_NilCallback(t *testing.T) {
	chunks := make(chan string, 2)
	chunks <- "a"
	chunks <- "b"
	close(chunks)

	out, err := Aggregate(context.Background(), chunks, nil)

	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestAggregate_EmptyStream(t *testing.T) {
	chunks := make(chan string)
	close(chunks)

	out, err := Aggregate(context.Background(), chunks, nil)

	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestAggregate_CancellationReturnsPartialOutput(t *testing.T) {
	chunks := make(chan string, 1)
	chunks <- "partial"
	// channel is never closed; the producer stalls

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	out, err := Aggregate(ctx, chunks, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "partial", out)
}

func TestChunkString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		size int
		want []string
	}{
		{name: "even split", in: "abcdef", size: 2, want: []string{"ab", "cd", "ef"}},
		{name: "uneven tail", in: "abcde", size: 2, want: []string{"ab", "cd", "e"}},
		{name: "size beyond length", in: "abc", size: 10, want: []string{"abc"}},
		{name: "non-positive size yields whole string", in: "abc", size: 0, want: []string{"abc"}},
		{name: "empty string yields nothing", in: "", size: 3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for chunk := range ChunkString(tt.in, tt.size) {
				got = append(got, chunk)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
