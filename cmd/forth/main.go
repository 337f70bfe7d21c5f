// Command forth hosts the library VM behind a cobra CLI: a file or stdin
// feeds the outer interpreter, optionally followed by a one-shot word,
// with a banner and exit-code contract matching the hosted build described
// by the core package's spec.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flashforth/forth"
	"github.com/flashforth/forth/internal/logio"
)

var (
	flagInput     string
	flagOneShot   string
	flagQuiet     bool
	flagTrace     bool
	flagMemLimit  uint
	flagTimeout   time.Duration
	flagDump      bool
	flagConfig    string
	flagOffPath   string
	flagTimerWord string
	flagTimerEvery time.Duration
)

func main() {
	root := &cobra.Command{
		Use:           "forth",
		Short:         "run the threaded-code Forth core",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := root.Flags()
	flags.StringVarP(&flagInput, "input", "i", "", "path to push as the primary input source (default stdin)")
	flags.StringVarP(&flagOneShot, "execute", "x", "", "word to run once after the primary input drains")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the startup banner")
	flags.BoolVarP(&flagTrace, "trace", "t", false, "enable tracing before the first token")
	flags.UintVar(&flagMemLimit, "mem-limit", 64*1024, "flash arena size, in cells")
	flags.DurationVar(&flagTimeout, "timeout", 0, "stop the signal watcher and interval timer after this long; the interpreter loop is not interrupted (0 disables)")
	flags.BoolVar(&flagDump, "dump", false, "dump WORDS on exit")
	flags.StringVar(&flagConfig, "config", "", "path to a TOML config file")
	flags.StringVar(&flagOffPath, "off-path", "", "OFF_PATH override (beats $OFF_PATH and config)")
	flags.StringVar(&flagTimerWord, "timer-word", "", "word to run periodically via the interval timer")
	flags.DurationVar(&flagTimerEvery, "timer-every", 0, "interval timer period (requires -timer-word)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeOf(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := forth.LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts := cfg.Options()
	opts = append(opts, forth.WithOutput(os.Stdout))
	if cmd.Flags().Changed("mem-limit") {
		opts = append(opts, forth.WithArenaSize(flagMemLimit))
	}
	if flagOffPath != "" {
		opts = append(opts, forth.WithOffPath(flagOffPath))
	}
	if flagOneShot != "" {
		opts = append(opts, forth.WithOneShotWord(flagOneShot))
	}
	if flagTrace {
		logger := &logio.Logger{}
		logger.SetOutput(os.Stderr)
		opts = append(opts, forth.WithLogf(forth.LevelLogf(logger, "TRACE")))
	}
	if flagTimerWord != "" && flagTimerEvery > 0 {
		opts = append(opts, forth.WithTimer(flagTimerWord, flagTimerEvery))
	}

	if flagInput != "" {
		f, err := os.Open(flagInput)
		if err != nil {
			return fmt.Errorf("opening %v: %w", flagInput, err)
		}
		defer f.Close()
		opts = append(opts, forth.WithNamedInput(f, flagInput))
	} else {
		opts = append(opts, forth.WithNamedInput(os.Stdin, "<stdin>"))
	}

	vm := forth.New(opts...)
	defer vm.Close()

	if !flagQuiet {
		fmt.Fprintf(os.Stdout, "-- FlashForth alpha Version: 01.00.00%s (EN)\n", buildLetter())
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if flagTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	runErr := vm.Run(ctx)

	if flagDump {
		dumpLog := &logio.Logger{}
		dumpLog.SetOutput(os.Stderr)
		lw := &logio.Writer{Logf: dumpLog.Leveledf("DUMP")}
		vm.DumpWordsTo(lw)
		lw.Close()
	}

	return runErr
}

func buildLetter() string {
	return "D"
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if ve, ok := err.(*forth.VMError); ok {
		return int(ve.Code)
	}
	return 1
}
