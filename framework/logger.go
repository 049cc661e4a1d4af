package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the minimal logging interface used throughout the harness. *log.Logger and
// *logrus.Logger both satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output of one test, in the order it was logged.
type CapturedOutput []CapturedMessage

// CapturingLogger keeps everything logged to it so that it can be shown if the test fails.
// It is safe for concurrent use.
type CapturingLogger struct {
	lock   sync.Mutex
	output CapturedOutput
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.lock.Lock()
	l.output = append(l.output, m)
	l.lock.Unlock()
}

// Output returns a copy of the messages logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes one line per message, each showing the time elapsed since the first message,
// which makes slow requests easy to spot.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	if len(output) == 0 {
		return
	}
	start := output[0].Time
	for _, m := range output {
		fmt.Fprintf(dest, "%s[+%s] %s\n", prefix, m.Time.Sub(start).Round(time.Millisecond), m.Message)
	}
}
