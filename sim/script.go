// Package sim drives the firmware on fake pins from a small line-oriented
// script, for host-side experiments and regression scenarios.
//
//	# comment
//	tick 3          # deliver three ticks
//	press           # drive the button line to its pressed level
//	release
//	bounce 4        # four press/release pairs back to back
//	edge            # fire the edge handler without a level change
//	expect counter 3
//	expect mode 2
//	expect guard 4
//	expect led on
package sim

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"blinkmode-go/errcode"
)

type Op uint8

const (
	OpTick Op = iota + 1
	OpPress
	OpRelease
	OpBounce
	OpEdge
	OpExpect
)

// Step is one parsed script line.
type Step struct {
	Line  int
	Op    Op
	N     int    // tick/bounce count
	Field string // expect: counter, mode, guard, led
	Want  uint32 // expect value; led uses 0/1
}

type Script []Step

func syntaxErr(line int, msg string) error {
	return errcode.Wrap(errcode.InvalidScript, "sim.parse", "line "+strconv.Itoa(line)+": "+msg, nil)
}

// Parse reads a script. Blank lines and # comments are skipped.
func Parse(r io.Reader) (Script, error) {
	var out Script
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		words, err := shlex.Split(text)
		if err != nil {
			return nil, syntaxErr(line, err.Error())
		}
		if len(words) == 0 {
			continue
		}
		st, err := parseStep(line, words)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := sc.Err(); err != nil {
		return nil, errcode.Wrap(errcode.InvalidScript, "sim.parse", "read", err)
	}
	return out, nil
}

func parseStep(line int, w []string) (Step, error) {
	st := Step{Line: line, N: 1}
	switch strings.ToLower(w[0]) {
	case "tick":
		st.Op = OpTick
	case "bounce":
		st.Op = OpBounce
	case "press":
		st.Op = OpPress
		return st, arity(line, w, 1)
	case "release":
		st.Op = OpRelease
		return st, arity(line, w, 1)
	case "edge":
		st.Op = OpEdge
		return st, arity(line, w, 1)
	case "expect":
		return parseExpect(line, w)
	default:
		return st, syntaxErr(line, "unknown command "+strconv.Quote(w[0]))
	}
	// tick / bounce take an optional count.
	switch len(w) {
	case 1:
	case 2:
		n, err := strconv.Atoi(w[1])
		if err != nil || n < 1 {
			return st, syntaxErr(line, "count must be a positive integer")
		}
		st.N = n
	default:
		return st, syntaxErr(line, "too many arguments")
	}
	return st, nil
}

func parseExpect(line int, w []string) (Step, error) {
	st := Step{Line: line, Op: OpExpect}
	if err := arity(line, w, 3); err != nil {
		return st, err
	}
	st.Field = strings.ToLower(w[1])
	switch st.Field {
	case "counter", "mode", "guard":
		v, err := strconv.ParseUint(w[2], 10, 32)
		if err != nil {
			return st, syntaxErr(line, "expected an unsigned value")
		}
		st.Want = uint32(v)
	case "led":
		switch strings.ToLower(w[2]) {
		case "on", "1", "true":
			st.Want = 1
		case "off", "0", "false":
			st.Want = 0
		default:
			return st, syntaxErr(line, "led must be on or off")
		}
	default:
		return st, syntaxErr(line, "unknown field "+strconv.Quote(w[1]))
	}
	return st, nil
}

func arity(line int, w []string, n int) error {
	if len(w) != n {
		return syntaxErr(line, w[0]+" takes "+strconv.Itoa(n-1)+" argument(s)")
	}
	return nil
}
