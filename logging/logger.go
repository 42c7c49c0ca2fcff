package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "15:04:05.000"

// Logger is the minimal Printf-style interface used for debug output
// throughout the harness. The standard library's log.Logger satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

// Prefixed returns a Logger that prepends a fixed prefix to every message
// before delegating to base. Used to tag debug output with the probe name.
func Prefixed(base Logger, prefix string) Logger {
	return prefixedLogger{base: base, prefix: prefix}
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf("%s: %s", p.prefix, fmt.Sprintf(message, args...))
}

// CapturedMessage is one debug message recorded by a CapturingLogger.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the accumulated debug output of a probe run.
type CapturedOutput []CapturedMessage

// CapturingLogger records messages in memory so they can be dumped later,
// typically only when a probe has failed. Safe for concurrent use.
type CapturingLogger struct {
	messages []CapturedMessage
	lock     sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.messages = append(l.messages, CapturedMessage{
		Time:    time.Now(),
		Message: fmt.Sprintf(message, args...),
	})
	l.lock.Unlock()
}

// Output returns a copy of everything recorded so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.messages...)
	l.lock.Unlock()
	return ret
}

// Dump writes each captured message to dest, one line per message, with the
// given prefix and a timestamp.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), m.Message)
	}
}
