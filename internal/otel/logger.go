package otel

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const writerChanSize = 1024

// queued is one event on its way to disk. The Event travels alongside the
// encoded line because Dur is not part of the JSON.
type queued struct {
	line []byte
	ev   Event
}

// Logger writes events to w as JSONL from a single drain goroutine and
// mirrors them into an optional ring buffer. A nil *Logger is a no-op.
type Logger struct {
	sessionID string
	w         io.Writer
	queue     chan queued
	done      chan struct{}

	ringMu sync.Mutex
	ring   *RingBuffer

	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewLogger starts a Logger writing to w. Close stops it.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		sessionID: uuid.NewString(),
		w:         w,
		queue:     make(chan queued, writerChanSize),
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger returns a Logger whose events only reach the ring buffer.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

func (l *Logger) drain() {
	defer close(l.done)
	for q := range l.queue {
		if _, err := l.w.Write(q.line); err != nil {
			l.dropped.Add(1)
		}
		if rb := l.ringBuffer(); rb != nil {
			rb.Push(q.ev)
		}
	}
}

func (l *Logger) ringBuffer() *RingBuffer {
	l.ringMu.Lock()
	defer l.ringMu.Unlock()
	return l.ring
}

// SessionID identifies this run in every event.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Emit stamps e with the session and, if unset, the current time, then
// queues it. It never blocks; a full queue or a closed logger counts the
// event as dropped.
func (l *Logger) Emit(e Event) {
	if l == nil {
		return
	}
	if l.closed.Load() {
		l.dropped.Add(1)
		return
	}
	// A send racing Close panics on the closed channel.
	defer func() {
		if recover() != nil {
			l.dropped.Add(1)
		}
	}()

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	line, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}

	select {
	case l.queue <- queued{line: append(line, '\n'), ev: e}:
	default:
		l.dropped.Add(1)
	}
}

func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

func (l *Logger) Warn(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error records err's text; a nil err leaves Err empty.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	e := Event{Level: LevelError, Kind: kind, Comp: comp}
	if err != nil {
		e.Err = err.Error()
	}
	l.Emit(e)
}

// SetRingBuffer mirrors subsequent events into buf.
func (l *Logger) SetRingBuffer(buf *RingBuffer) {
	if l == nil {
		return
	}
	l.ringMu.Lock()
	l.ring = buf
	l.ringMu.Unlock()
}

func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close drains the queue and stops the writer. Idempotent.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.queue)
		<-l.done

		if d := l.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "movix: %d events dropped during session %s\n", d, l.sessionID)
		}
	})
}
