package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/thushan/shifter/internal/logger"
)

// streamState tracks a single relay.
type streamState struct {
	firstDataAt        time.Time
	totalBytes         int
	readCount          int
	clientDisconnected bool
}

// streamResponse copies body to w one read at a time, flushing after each
// write so SSE frames reach the client as soon as llama-server emits them.
// Non-streaming bodies go through the same loop.
func (s *Service) streamResponse(ctx context.Context, w http.ResponseWriter, body io.Reader, buffer []byte, rlog logger.StyledLogger) (*streamState, error) {
	state := &streamState{}
	flusher, canFlush := w.(http.Flusher)

	for {
		n, err := body.Read(buffer)
		if n > 0 {
			if state.readCount == 0 {
				state.firstDataAt = time.Now()
			}
			state.readCount++

			written, writeErr := w.Write(buffer[:n])
			state.totalBytes += written
			if writeErr != nil {
				// the client is gone; returning closes the backend body
				state.clientDisconnected = true
				return state, writeErr
			}
			if canFlush {
				flusher.Flush()
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				rlog.Debug("stream ended normally",
					"total_bytes", state.totalBytes,
					"read_count", state.readCount)
				return state, nil
			}
			if ctx.Err() != nil {
				state.clientDisconnected = true
				return state, ctx.Err()
			}
			return state, err
		}
	}
}
