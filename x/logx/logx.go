// Package logx is a small leveled logger for the firmware console.
//
// Lines look like "[blink] info mode changed mode=2 guard=4". Formatting goes
// through x/conv into a per-logger scratch buffer, so no fmt is linked on the
// device. Never call it from an interrupt handler; post a notice instead.
package logx

import (
	"io"
	"sync"

	"blinkmode-go/x/conv"
)

type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	default:
		return "error"
	}
}

type fieldKind uint8

const (
	kindStr fieldKind = iota
	kindInt
	kindUint
	kindHex
	kindBool
)

// Field is one key=value pair on a log line.
type Field struct {
	Key  string
	kind fieldKind
	s    string
	i    int64
	u    uint64
}

func Str(k, v string) Field         { return Field{Key: k, kind: kindStr, s: v} }
func Int(k string, v int64) Field   { return Field{Key: k, kind: kindInt, i: v} }
func Uint(k string, v uint64) Field { return Field{Key: k, kind: kindUint, u: v} }
func Hex(k string, v uint32) Field  { return Field{Key: k, kind: kindHex, u: uint64(v)} }
func Err(err error) Field {
	if err == nil {
		return Str("err", "nil")
	}
	return Str("err", err.Error())
}
func Bool(k string, v bool) Field {
	f := Field{Key: k, kind: kindBool}
	if v {
		f.u = 1
	}
	return f
}

type sink struct {
	mu  sync.Mutex
	w   io.Writer
	min Level
	buf []byte
}

// Logger writes prefixed lines. Loggers derived with Named share the writer
// and its lock.
type Logger struct {
	out    *sink
	prefix string
}

// New returns a logger writing to w at Info and above.
func New(w io.Writer, prefix string) *Logger {
	return &Logger{out: &sink{w: w, min: Info, buf: make([]byte, 0, 128)}, prefix: prefix}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, "") }

// Named returns a logger with a different prefix on the same writer.
func (l *Logger) Named(prefix string) *Logger { return &Logger{out: l.out, prefix: prefix} }

// SetLevel sets the minimum level for this logger and all loggers sharing
// its writer.
func (l *Logger) SetLevel(min Level) {
	l.out.mu.Lock()
	l.out.min = min
	l.out.mu.Unlock()
}

func (l *Logger) Debug(msg string, fs ...Field) { l.log(Debug, msg, fs) }
func (l *Logger) Info(msg string, fs ...Field)  { l.log(Info, msg, fs) }
func (l *Logger) Warn(msg string, fs ...Field)  { l.log(Warn, msg, fs) }
func (l *Logger) Error(msg string, fs ...Field) { l.log(Error, msg, fs) }

func (l *Logger) log(lvl Level, msg string, fs []Field) {
	o := l.out
	o.mu.Lock()
	defer o.mu.Unlock()
	if lvl < o.min {
		return
	}
	b := o.buf[:0]
	if l.prefix != "" {
		b = append(b, '[')
		b = append(b, l.prefix...)
		b = append(b, "] "...)
	}
	b = append(b, lvl.String()...)
	b = append(b, ' ')
	b = append(b, msg...)
	var num [21]byte
	for _, f := range fs {
		b = append(b, ' ')
		b = append(b, f.Key...)
		b = append(b, '=')
		switch f.kind {
		case kindStr:
			b = append(b, f.s...)
		case kindInt:
			b = append(b, conv.Itoa(num[:], f.i)...)
		case kindUint:
			b = append(b, conv.Utoa(num[:], f.u)...)
		case kindHex:
			b = append(b, "0x"...)
			b = append(b, conv.U32Hex(num[:8], uint32(f.u))...)
		case kindBool:
			if f.u != 0 {
				b = append(b, "true"...)
			} else {
				b = append(b, "false"...)
			}
		}
	}
	b = append(b, '\n')
	o.buf = b
	_, _ = o.w.Write(b)
}
