package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chzyer/readline"
)

// REPL drives a Session from a terminal.
type REPL struct {
	rl      *readline.Instance
	session *Session
	logger  *slog.Logger
}

// New creates a REPL. historyFile may be empty.
func New(logger *slog.Logger, historyFile string) (*REPL, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fdur> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &REPL{
		rl:      rl,
		session: NewSession(rl.Stdout()),
		logger:  logger,
	}, nil
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("show"),
	readline.PcItem("add"),
	readline.PcItem("sub"),
	readline.PcItem("mul"),
	readline.PcItem("div"),
	readline.PcItem("neg"),
	readline.PcItem("cmp"),
	readline.PcItem("convert"),
	readline.PcItem("split"),
	readline.PcItem("timer"),
	readline.PcItem("timers"),
	readline.PcItem("cancel"),
	readline.PcItem("quit"),
)

// Stdout returns a writer that properly coordinates with the readline input.
func (r *REPL) Stdout() io.Writer {
	return r.rl.Stdout()
}

// Run reads and executes lines until quit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	defer r.rl.Close()
	defer r.session.Close()

	r.session.printHelp()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				r.logger.Warn("readline failed", "error", err)
			}
			fmt.Fprintln(r.rl.Stdout(), "Exiting...")
			return nil
		}

		r.logger.Debug("exec", "line", line)
		if r.session.Exec(line) {
			fmt.Fprintln(r.rl.Stdout(), "Exiting...")
			return nil
		}
	}
}
