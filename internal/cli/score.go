package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/pkgtrust/pkg/observability"
)

// runScore evaluates the input file and writes the export.
func (c *CLI) runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input, output := args[0], args[1]

	showProgress, _ := cmd.Flags().GetBool("progress")
	if showProgress && isTerminal(os.Stderr) {
		return c.scoreWithProgress(ctx, input, output)
	}

	eng, err := c.newEngine(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer eng.Close()

	prog := newProgress(loggerFromContext(ctx))
	n, err := eng.runner.Run(ctx, input, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Evaluated %d packages into %s", n, output))
	return nil
}

// scoreWithProgress runs the batch behind the live progress view. Log output
// is silenced unless it goes to a file, and echoed records are printed above
// the view when stdout shares the terminal.
func (c *CLI) scoreWithProgress(ctx context.Context, input, output string) error {
	total, err := countLines(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	if c.logSink.closer == nil {
		c.Logger.SetOutput(io.Discard)
	}

	view := newProgressView(total, os.Stderr)
	var echo io.Writer = os.Stdout
	if isTerminal(os.Stdout) {
		echo = view
	}

	eng, err := c.newEngine(ctx, echo)
	if err != nil {
		return err
	}
	defer eng.Close()

	observability.SetEvaluationHooks(view)
	defer observability.SetEvaluationHooks(observability.NoopEvaluationHooks{})

	view.Start()
	n, runErr := eng.runner.Run(ctx, input, output)
	view.Finish(runErr)
	if runErr != nil {
		return runErr
	}
	printSuccess("Evaluated %d packages", n)
	printFile(output)
	return nil
}

// countLines counts newline-delimited lines, including a final line without
// a newline.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			n++
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
