package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// output formats
const (
	formatDot     = "dot"
	formatConsole = "console"
	formatStats   = "stats"
)

var (
	// rootCmd is the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "assocviz",
		Short: "visualize the structure of hash maps and tree maps",
		Long: `assocviz loads keys into a container and prints its internal structure.

Keys are taken from the command line or, if there are none, from standard
input, separated by white space.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupTracing,
	}
)

func init() {
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(treeCmd)

	rootCmd.PersistentFlags().StringP("format", "f", formatDot, "output format (dot, console, stats)")
	rootCmd.PersistentFlags().String("color", "auto", "colour console output (auto, always, never)")
	rootCmd.PersistentFlags().Bool("int", false, "parse keys as integers")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace container operations to stderr")
}

func setupTracing(cmd *cobra.Command, _ []string) error {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	}
	return nil
}

// options are the flags shared by all subcommands.
type options struct {
	format  string
	colored bool
	ints    bool
}

func readOptions(cmd *cobra.Command) (options, error) {
	var opts options
	opts.format, _ = cmd.Flags().GetString("format")
	switch opts.format {
	case formatDot, formatConsole, formatStats:
	default:
		return opts, fmt.Errorf("unknown format %q", opts.format)
	}
	colorMode, _ := cmd.Flags().GetString("color")
	switch colorMode {
	case "always":
		opts.colored = true
	case "never":
	case "auto":
		opts.colored = term.IsTerminal(int(os.Stdout.Fd()))
	default:
		return opts, fmt.Errorf("unknown color mode %q", colorMode)
	}
	opts.ints, _ = cmd.Flags().GetBool("int")
	return opts, nil
}

// readKeys returns args, or the white-space separated words of r if args is
// empty.
func readKeys(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var keys []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		keys = append(keys, scanner.Text())
	}
	return keys, scanner.Err()
}

func parseInts(words []string) ([]int, error) {
	ints := make([]int, len(words))
	for i, w := range words {
		n, err := strconv.Atoi(strings.TrimSpace(w))
		if err != nil {
			return nil, fmt.Errorf("key %q is not an integer: %w", w, err)
		}
		ints[i] = n
	}
	return ints, nil
}
