package watch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"dummysite/pkg/logging"
)

// Stream turns a newline-delimited JSON watch body into a channel of typed events.
//
// The body may arrive in chunks of any size; partial lines are buffered until
// the newline arrives. Lines that cannot be parsed are logged and skipped and
// never end the stream. Events are delivered in input order.
//
// A Stream reads a single connection and cannot be restarted: once Events is
// closed, a new Stream must be built on a new connection.
type Stream[T any] struct {
	mu sync.Mutex

	// name identifies the stream in logs (e.g. "dummysites", "jobs")
	name string

	// body is the watch response body
	body io.ReadCloser

	// decode converts the raw object of one event
	decode DecodeFunc[T]

	// events receives decoded events; closed when the stream ends
	events chan T

	// done is closed after events is closed and err is final
	done chan struct{}

	// running indicates Start has been called
	running bool

	// err is the read error that ended the stream, nil for EOF or cancellation
	err error

	// skipped counts lines dropped because they could not be parsed
	skipped int
}

// NewStream creates a stream reading watch events from body.
func NewStream[T any](name string, body io.ReadCloser, decode DecodeFunc[T]) *Stream[T] {
	return &Stream[T]{
		name:   name,
		body:   body,
		decode: decode,
		events: make(chan T),
		done:   make(chan struct{}),
	}
}

// Start begins reading the body in a background goroutine.
// Cancelling ctx closes the body and ends the stream.
func (s *Stream[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.run(ctx)
}

// Events returns the channel of decoded events.
func (s *Stream[T]) Events() <-chan T {
	return s.events
}

// Done is closed once the stream has ended.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}

// Err returns the read error that ended the stream. It is only meaningful
// after Done is closed; EOF and cancellation are reported as nil.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Skipped returns the number of lines dropped so far.
func (s *Stream[T]) Skipped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

func (s *Stream[T]) run(ctx context.Context) {
	stop := context.AfterFunc(ctx, func() {
		s.body.Close()
	})
	defer func() {
		stop()
		s.body.Close()
		close(s.events)
		close(s.done)
	}()

	logging.Debug("Stream", "Reading watch stream %s", s.name)

	reader := bufio.NewReader(s.body)
	for {
		line, readErr := reader.ReadBytes('\n')

		// A final object without a trailing newline is still complete JSON.
		if len(bytes.TrimSpace(line)) > 0 {
			if !s.emitLine(ctx, line) {
				return
			}
		}

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) && ctx.Err() == nil {
				s.mu.Lock()
				s.err = fmt.Errorf("watch stream %s: %w", s.name, readErr)
				s.mu.Unlock()
				logging.Error("Stream", readErr, "Watch stream %s failed", s.name)
			} else {
				logging.Info("Stream", "Watch stream %s ended", s.name)
			}
			return
		}
	}
}

// emitLine decodes one line and forwards it. It returns false only when ctx
// is cancelled while waiting for the consumer.
func (s *Stream[T]) emitLine(ctx context.Context, line []byte) bool {
	var raw metav1.WatchEvent
	if err := json.Unmarshal(line, &raw); err != nil {
		s.skip(err, "Skipping malformed line on %s", s.name)
		return true
	}

	eventType := EventType(raw.Type)
	switch {
	case eventType == EventError:
		var status metav1.Status
		if err := json.Unmarshal(raw.Object.Raw, &status); err == nil {
			logging.Warn("Stream", "Watch %s reported error: %s (code %d)", s.name, status.Message, status.Code)
		} else {
			logging.Warn("Stream", "Watch %s reported an unreadable error event", s.name)
		}
		return true
	case eventType == EventBookmark:
		return true
	case !eventType.IsObjectEvent():
		s.skip(fmt.Errorf("unknown event type %q", raw.Type), "Skipping event on %s", s.name)
		return true
	}

	event, err := s.decode(eventType, raw.Object.Raw)
	if err != nil {
		s.skip(err, "Skipping undecodable %s event on %s", eventType, s.name)
		return true
	}

	select {
	case s.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Stream[T]) skip(err error, messageFmt string, args ...interface{}) {
	s.mu.Lock()
	s.skipped++
	s.mu.Unlock()
	logging.Warn("Stream", messageFmt+": %v", append(args, err)...)
}
