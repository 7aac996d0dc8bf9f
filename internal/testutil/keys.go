package testutil

import (
	"io"
	"time"
)

// Keys is a scripted input device. Each chunk is delivered by one blocking
// read; an empty chunk makes that read time out. Once the script runs dry a
// bounded read times out and an unbounded one reports io.EOF.
type Keys struct {
	chunks    []string
	typeahead []string
	// Waits records the timeout of every read.
	Waits []time.Duration
}

// NewKeys scripts the given chunks.
func NewKeys(chunks ...string) *Keys {
	return &Keys{chunks: chunks}
}

// Push appends chunks to the script.
func (k *Keys) Push(chunks ...string) {
	k.chunks = append(k.chunks, chunks...)
}

// Typeahead queues input that is already pending, so a flush discards it.
func (k *Keys) Typeahead(chunks ...string) {
	k.typeahead = append(k.typeahead, chunks...)
}

// Remaining reports how many scripted chunks have not been read.
func (k *Keys) Remaining() int {
	return len(k.chunks)
}

// Read implements input.Device.
func (k *Keys) Read(timeout time.Duration) ([]byte, error) {
	k.Waits = append(k.Waits, timeout)
	if len(k.typeahead) > 0 {
		chunk := k.typeahead[0]
		k.typeahead = k.typeahead[1:]
		return []byte(chunk), nil
	}
	if timeout == 0 || len(k.chunks) == 0 {
		if timeout < 0 && len(k.chunks) == 0 {
			return nil, io.EOF
		}
		return nil, nil
	}
	chunk := k.chunks[0]
	k.chunks = k.chunks[1:]
	if chunk == "" {
		return nil, nil
	}
	return []byte(chunk), nil
}
