package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/hcmd/foundation/console/lexer"
)

var (
	runFile   string
	runTokens bool
)

var runCmd = &cobra.Command{
	Use:   "run [text...]",
	Short: "Parses command text",
	Long: `Parses command text and prints what the commands write.

Arguments are joined with spaces and parsed as one line. With --file the
text is read from a script file, - reads standard input. Scripts are run
line by line, so each line ends its last statement as in the console.

Examples:
  hcmd run 'echo hello; alias x "echo from alias"; x'
  hcmd run -f script.hcmd
  hcmd run --tokens 'echo $x "quoted text"'`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "script file, - for stdin")
	runCmd.Flags().BoolVar(&runTokens, "tokens", false, "print the token stream instead of executing")
}

func runRun(cmd *cobra.Command, args []string) error {
	lines, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	interp := newInterpreter(newSink(cmd.OutOrStdout()))

	if runTokens {
		for _, line := range lines {
			for _, tok := range lexer.Tokenize(line, interp.Registry().Names()) {
				fmt.Fprintln(cmd.OutOrStdout(), tok.String())
			}
		}
		return nil
	}

	interp.Exec(appConfig.Console.Autoexec...)
	interp.Exec(lines...)
	return nil
}

// readInput returns the lines to parse
func readInput(cmd *cobra.Command, args []string) ([]string, error) {
	switch {
	case runFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return scriptLines(string(data)), nil

	case runFile != "":
		if len(args) > 0 {
			return nil, fmt.Errorf("text arguments and --file are exclusive")
		}
		data, err := os.ReadFile(runFile)
		if err != nil {
			return nil, fmt.Errorf("reading script: %w", err)
		}
		return scriptLines(string(data)), nil

	case len(args) == 0:
		return nil, fmt.Errorf("nothing to run, pass text or --file")
	}
	return []string{strings.Join(args, " ")}, nil
}

func scriptLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
