package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/config"
	"github.com/atout-engine/atout/game"
)

var errQuit = errors.New("sending quit signal")

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config *config.Config

	game    *game.Game
	players [game.NumSeats]string
	rng     *frand.RNG

	ctx    context.Context
	cancel context.CancelFunc
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up readline. It panics if the terminal cannot be
// opened.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31matout>\033[0m ",
		HistoryFile:     "/tmp/atout_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg, l.Stderr())
	sc.l = l
	return sc
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	ctx, cancel := context.WithCancel(context.Background())
	return &ShellController{
		out:     out,
		config:  cfg,
		players: [game.NumSeats]string{"search", "random", "search", "random"},
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a command line the way a shell would. Words starting
// with a dash are options; the word after an option is its value.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("no command")
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			name := strings.TrimLeft(f, "-")
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("option %s needs a value", f)
			}
			cmd.options[name] = append(cmd.options[name], fields[i+1])
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) standardModeSwitch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "deal", "new":
		return sc.deal(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "next", "n":
		return sc.next(cmd)
	case "trick":
		return sc.trick(cmd)
	case "auto":
		return sc.auto(cmd)
	case "play":
		return sc.play(cmd)
	case "solve":
		return sc.solve(cmd)
	case "belief":
		return sc.belief(cmd)
	case "set":
		return sc.set(cmd)
	case "sweep":
		return sc.sweep(cmd)
	}
	log.Debug().Str("line", line).Msg("unknown-command")
	return nil, fmt.Errorf("unknown command %q, try help", cmd.cmd)
}

// Execute runs a single command line and prints its result.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	resp, err := sc.standardModeSwitch(line)
	if errors.Is(err, errQuit) {
		if sig != nil {
			sig <- syscall.SIGINT
		}
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops anything still running.
func (sc *ShellController) Cleanup() {
	sc.cancel()
}
