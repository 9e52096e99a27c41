// Package cmd provides the command-line interface for asscodec.
// asscodec is a toolbox for ASS/SSA subtitle scripts: stripping inline
// styles, text modification, and conversion to SRT and WebVTT.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Akimio521/asscodec-go/ass"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

// color only when stdout is a real terminal
var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func logInfo(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorBlue, "[INFO]"), fmt.Sprintf(format, args...))
}

func logWarn(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(colorYellow, "[WARNING]"), fmt.Sprintf(format, args...))
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", paint(colorRed, "[ERROR]"), fmt.Sprintf(format, args...))
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asscodec",
	Short: "Tools for ASS/SSA subtitle scripts",
	Long: `asscodec - utilities built on an ASS/SSA dialogue codec.

Supports:
  - stripping override tags from dialogue events (keep-mask based)
  - text modification (leet, case mapping, word replacement, censoring)
  - conversion between ASS and SRT
  - conversion from ASS to WebVTT
  - script inspection

Examples:
  asscodec strip --keep basic input.ass output.ass
  asscodec textmod --rules rules.yaml input.ass output.ass
  asscodec srt input.srt output.ass
  asscodec vtt input.ass output.vtt
  asscodec info input.ass

Use 'asscodec [command] --help' for more information about a command.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logError("%s", err.Error())
		os.Exit(1)
	}
}

// readScript loads a script file, transcodes it to UTF-8 and parses it.
// charset is a Windows codepage id (0 = ANSI); a UTF BOM wins over it.
func readScript(path string, charset int) (*ass.ScriptParser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s error: %w", path, err)
	}

	text, err := ass.DecodeScript(data, charset)
	if err != nil {
		var uc *ass.ErrUnsupportedCharset
		if !errors.As(err, &uc) {
			return nil, err
		}
		logWarn("%s, assuming UTF-8", err.Error())
	}

	sp, err := ass.ParseScript(text)
	if err != nil {
		return nil, err
	}
	for _, n := range sp.DroppedLines {
		logWarn("%s: dropping malformed dialogue at line %d", path, n)
	}
	return sp, nil
}

// createOutput opens the output file, or stdout when path is "-".
func createOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s error: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
