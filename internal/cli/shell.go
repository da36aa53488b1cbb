package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const shellPrompt = "backoffice> "

// errUnterminatedQuote reports a shell line with an open quote.
var errUnterminatedQuote = errors.New("unterminated quote")

func (c *cli) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive session",
		Long:  "Open an interactive session. Every line is a backoffice command; changes persist until you exit.\nType help for commands, exit to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.openSession(); err != nil {
				return err
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          shellPrompt,
				AutoComplete:    shellCompleter(c.session.PageNames()),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return systemError(fmt.Errorf("initialize shell: %w", err))
			}
			defer func() { _ = rl.Close() }()

			c.ask = func(question string) (string, error) {
				rl.SetPrompt(question)
				defer rl.SetPrompt(shellPrompt)
				return rl.Readline()
			}
			defer func() { c.ask = nil }()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "Backoffice shell. Type help for commands, exit to leave.")
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return systemError(err)
				}
				if c.exec(line, out, cmd.ErrOrStderr()) {
					return nil
				}
			}
		},
	}
}

// exec runs one shell line against a fresh command tree that shares the
// open session. It reports whether the line ends the shell.
func (c *cli) exec(line string, out, errOut io.Writer) (quit bool) {
	args, err := splitLine(line)
	if err != nil {
		_, _ = fmt.Fprintln(errOut, "Error:", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "exit", "quit":
		return true
	}

	c.insideShell = true
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(c.in)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(errOut, "Error:", err)
	}
	return false
}

func (c *cli) newNotificationsCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"toasts"},
		Short:   "List the notifications of this session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := c.recorder.All()
			if reset {
				c.recorder.Reset()
			}
			if c.jsonMode {
				return writeJSON(c.out, all)
			}
			for _, n := range all {
				_, _ = fmt.Fprintf(c.out, "%s  %-7s  %s\n", n.At.Format("15:04:05"), n.Level, n.Message)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "clear", false, "forget the listed notifications")
	return cmd
}

func shellCompleter(pages []string) *readline.PrefixCompleter {
	entities := func() []readline.PrefixCompleterInterface {
		items := make([]readline.PrefixCompleterInterface, 0, len(pages))
		for _, p := range pages {
			items = append(items, readline.PcItem(p))
		}
		return items
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("list", entities()...),
		readline.PcItem("show", entities()...),
		readline.PcItem("fields", entities()...),
		readline.PcItem("create", entities()...),
		readline.PcItem("update", entities()...),
		readline.PcItem("delete", entities()...),
		readline.PcItem("action", entities()...),
		readline.PcItem("catalog"),
		readline.PcItem("export",
			readline.PcItem("--format"),
		),
		readline.PcItem("notifications"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// splitLine splits a shell line into arguments. Single or double quotes
// group words, so name="Café de Colombia" stays one argument.
func splitLine(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
