package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	hconsole "github.com/msto63/hcmd/foundation/console"
	"github.com/msto63/hcmd/foundation/console/dispatch"
	"github.com/msto63/hcmd/foundation/console/registry"
	tuiconsole "github.com/msto63/hcmd/internal/tui/console"
)

var consolePlain bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Starts the interactive console",
	Long: `Starts an interactive console session.

On a terminal the full screen console is used. When input is not a
terminal, or with --plain, lines are read one by one.

Navigation:
  Enter      - run the line
  Up/Down    - history
  PgUp/PgDn  - scroll
  Ctrl+C     - quit (or the quit and exit commands)`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().BoolVar(&consolePlain, "plain", false, "line mode even on a terminal")
}

func runConsole(cmd *cobra.Command, args []string) error {
	if !consolePlain && isTerminal(cmd.InOrStdin()) {
		interp := newInterpreter(nil)
		interp.Exec(appConfig.Console.Autoexec...)

		err := tuiconsole.Run(interp, tuiconsole.Config{
			Prompt:      appConfig.Console.Prompt,
			HistorySize: appConfig.Console.HistorySize,
		})
		if err != nil {
			printError(cmd, "console", err)
		}
		return err
	}

	return runLineConsole(cmd.InOrStdin(), cmd.OutOrStdout(), isTerminal(cmd.InOrStdin()))
}

// runLineConsole reads and runs one line at a time until quit or end of input
func runLineConsole(in io.Reader, out io.Writer, prompt bool) error {
	interp := newInterpreter(newSink(out))

	done := false
	leave := dispatch.HandlerFunc(func(*dispatch.Context) error {
		done = true
		return nil
	})
	for _, name := range []string{"quit", "exit"} {
		if err := interp.Register(registry.Command{Name: name, Usage: "- leaves the console"}, leave); err != nil {
			return err
		}
	}

	interp.Exec(appConfig.Console.Autoexec...)
	return readLines(interp, in, out, prompt, &done)
}

func readLines(interp *hconsole.Interpreter, in io.Reader, out io.Writer, prompt bool, done *bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for !*done {
		if prompt {
			fmt.Fprint(out, appConfig.Console.Prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		interp.Parse(scanner.Text())
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
