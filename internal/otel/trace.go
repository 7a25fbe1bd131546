package otel

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// TraceEnv turns on per-message trace events when set to any non-empty value.
const TraceEnv = "MOVIX_TRACE"

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv(TraceEnv) != "")
}

// TraceEnabled reports whether MOVIX_TRACE was set at startup.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// setTraceEnabled overrides the flag in tests.
func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}

// TraceMsg emits a trace.msg_handled event naming the message type and how
// long Update took. No-op unless tracing is on.
func (l *Logger) TraceMsg(msg any, d time.Duration) {
	if !TraceEnabled() || l == nil {
		return
	}
	l.Emit(Event{
		Level: LevelDebug,
		Kind:  KindMsgHandled,
		Comp:  "ui",
		Msg:   fmt.Sprintf("%T", msg),
		Dur:   d,
	})
}
