// Package interactive provides the interactive duration calculator of fdur.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/floatdur/floatdur-go/pkg/duration"
	"github.com/floatdur/floatdur-go/pkg/subdivide"
	"github.com/floatdur/floatdur-go/pkg/timer"
)

// maxSplitSteps bounds the samples split prints.
const maxSplitSteps = 10_000

// ansName refers to the previous result in any operand position.
const ansName = "ans"

var errUsage = errors.New("usage")

// Session evaluates calculator commands. It is independent of the
// terminal so it can be driven from tests.
type Session struct {
	mu     sync.Mutex
	out    io.Writer
	ans    duration.Duration
	timers *timer.Manager
}

// NewSession creates a session that prints to out.
func NewSession(out io.Writer) *Session {
	s := &Session{
		out:    out,
		timers: timer.NewManager(),
	}
	s.timers.OnExpiry(func(name string, value any) {
		msg, _ := value.(string)
		if msg == "" {
			s.printf("timer %s expired\n", name)
			return
		}
		s.printf("timer %s expired: %s\n", name, msg)
	})
	return s
}

// Close cancels all running timers.
func (s *Session) Close() {
	s.timers.CancelAll()
}

// Ans returns the result of the last calculation.
func (s *Session) Ans() duration.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ans
}

func (s *Session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) setAns(d duration.Duration) {
	s.mu.Lock()
	s.ans = d
	s.mu.Unlock()
	s.printf("%s  (%v s, %s)\n", d, d.Seconds(), d.Decompose())
}

// Exec runs one input line. It returns true when the line asks to quit.
func (s *Session) Exec(line string) (quit bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "show", "s":
		err = s.cmdShow(args)
	case "add", "+":
		err = s.cmdAdd(args)
	case "sub", "-":
		err = s.cmdSub(args)
	case "mul", "*":
		err = s.cmdMul(args)
	case "div", "/":
		err = s.cmdDiv(args)
	case "neg":
		err = s.cmdNeg(args)
	case "cmp":
		err = s.cmdCmp(args)
	case "convert", "conv":
		err = s.cmdConvert(args)
	case "split":
		err = s.cmdSplit(args)
	case "timer", "t":
		err = s.cmdTimer(args)
	case "timers":
		s.cmdTimers()
	case "cancel":
		err = s.cmdCancel(args)
	case "quit", "exit", "q":
		return true
	default:
		s.printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		return false
	}

	if errors.Is(err, errUsage) {
		s.printf("Usage: %s\n", usage[cmd])
	} else if err != nil {
		s.printf("Error: %v\n", err)
	}
	return false
}

var usage = map[string]string{
	"show":    "show <duration>",
	"s":       "show <duration>",
	"add":     "add <duration> <duration>...",
	"+":       "add <duration> <duration>...",
	"sub":     "sub <duration> <duration>",
	"-":       "sub <duration> <duration>",
	"mul":     "mul <duration> <factor>",
	"*":       "mul <duration> <factor>",
	"div":     "div <duration> <divisor|duration-with-unit>",
	"/":       "div <duration> <divisor|duration-with-unit>",
	"neg":     "neg <duration>",
	"cmp":     "cmp <duration> <duration>",
	"convert": "convert <duration>",
	"conv":    "convert <duration>",
	"split":   "split <start> <end> <steps>",
	"timer":   "timer <name> <duration> [message]",
	"t":       "timer <name> <duration> [message]",
	"cancel":  "cancel <name>",
}

// operand parses a duration argument; "ans" is the previous result.
func (s *Session) operand(arg string) (duration.Duration, error) {
	if strings.EqualFold(arg, ansName) {
		return s.Ans(), nil
	}
	return duration.Parse(arg)
}

func (s *Session) operands(args []string) ([]duration.Duration, error) {
	ds := make([]duration.Duration, 0, len(args))
	for _, arg := range args {
		d, err := s.operand(arg)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func (s *Session) cmdShow(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	d, err := s.operand(args[0])
	if err != nil {
		return err
	}
	s.setAns(d)
	return nil
}

func (s *Session) cmdAdd(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	ds, err := s.operands(args)
	if err != nil {
		return err
	}
	s.setAns(duration.Sum(ds...))
	return nil
}

func (s *Session) cmdSub(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	ds, err := s.operands(args)
	if err != nil {
		return err
	}
	s.setAns(ds[0].Sub(ds[1]))
	return nil
}

func (s *Session) cmdMul(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	d, err := s.operand(args[0])
	if err != nil {
		return err
	}
	k, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid factor %q", args[1])
	}
	s.setAns(d.Mul(k))
	return nil
}

// cmdDiv divides by a bare number, or by a duration when the divisor has a
// unit, in which case the result is a plain ratio.
func (s *Session) cmdDiv(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	d, err := s.operand(args[0])
	if err != nil {
		return err
	}
	if k, err := strconv.ParseFloat(args[1], 64); err == nil {
		s.setAns(d.Div(k))
		return nil
	}
	o, err := s.operand(args[1])
	if err != nil {
		return err
	}
	s.printf("%v\n", d.Ratio(o))
	return nil
}

func (s *Session) cmdNeg(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	d, err := s.operand(args[0])
	if err != nil {
		return err
	}
	s.setAns(d.Neg())
	return nil
}

func (s *Session) cmdCmp(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	ds, err := s.operands(args)
	if err != nil {
		return err
	}
	switch ds[0].Compare(ds[1]) {
	case -1:
		s.printf("%s < %s\n", ds[0], ds[1])
	case 1:
		s.printf("%s > %s\n", ds[0], ds[1])
	default:
		if ds[0].Equal(ds[1]) {
			s.printf("%s = %s\n", ds[0], ds[1])
		} else {
			s.printf("%s and %s are unordered\n", ds[0], ds[1])
		}
	}
	return nil
}

func (s *Session) cmdConvert(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	d, err := s.operand(args[0])
	if err != nil {
		return err
	}
	if std, err := d.ToStd(); err != nil {
		s.printf("  std:   %v\n", err)
	} else {
		s.printf("  std:   %s\n", std)
	}
	if pb, err := d.ToProto(); err != nil {
		s.printf("  proto: %v\n", err)
	} else {
		s.printf("  proto: %ds %dns\n", pb.GetSeconds(), pb.GetNanos())
	}
	return nil
}

func (s *Session) cmdSplit(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	ds, err := s.operands(args[:2])
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(args[2])
	if err != nil || steps < 2 || steps > maxSplitSteps {
		return fmt.Errorf("invalid step count %q: must be between 2 and %d", args[2], maxSplitSteps)
	}

	for t, step := range subdivide.WithStep(ds[0], ds[1], steps) {
		s.printf("  %-14v %s (+%s)\n", t.Seconds(), t, step)
	}
	return nil
}

func (s *Session) cmdTimer(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	d, err := s.operand(args[1])
	if err != nil {
		return err
	}
	msg := strings.Join(args[2:], " ")
	if err := s.timers.SetTimer(args[0], d, msg); err != nil {
		return err
	}
	s.printf("timer %s set for %s (accuracy %s)\n", args[0], d, timer.CalculateAccuracy(d))
	return nil
}

func (s *Session) cmdTimers() {
	timers := s.timers.Timers()
	if len(timers) == 0 {
		s.printf("No timers running\n")
		return
	}
	for _, t := range timers {
		s.printf("  %-12s %s remaining of %s\n", t.Name, t.Remaining(), t.Duration)
	}
}

func (s *Session) cmdCancel(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := s.timers.CancelTimer(args[0]); err != nil {
		return err
	}
	s.printf("timer %s canceled\n", args[0])
	return nil
}

func (s *Session) printHelp() {
	s.printf(`
Duration Calculator Commands:
  Arithmetic:
    show <d>            - Show a duration ("90", "1.5h", "250 ms")
    add <d> <d>...      - Sum durations
    sub <a> <b>         - a - b
    mul <d> <k>         - Scale by a number
    div <d> <k|d>       - Divide by a number, or by a duration for a ratio
    neg <d>             - Negate
    cmp <a> <b>         - Compare two durations
    convert <d>         - Show time.Duration and protobuf forms
    split <a> <b> <n>   - n evenly spaced samples from a to b

  Timers:
    timer <name> <d> [msg] - Start a countdown
    timers                 - List running timers
    cancel <name>          - Cancel a timer

  Other:
    help                - Show this help
    quit                - Exit

"ans" stands for the previous result in any operand position.
`)
}
