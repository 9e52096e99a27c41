package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Akimio521/asscodec-go/srt"
	"github.com/spf13/cobra"
)

var (
	srtKeepMarkup bool
	srtCharset    int
)

var srtCmd = &cobra.Command{
	Use:   "srt [input] [output]",
	Short: "Convert between ASS and SRT",
	Long: `Convert subtitles between the ASS and SRT formats. The direction is
chosen from the input extension: a .srt input produces an ASS script,
anything else is parsed as ASS and written as SRT.

Examples:
  asscodec srt input.srt output.ass
  asscodec srt --keep-markup input.srt output.ass
  asscodec srt input.ass output.srt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, done, err := createOutput(args[1])
		if err != nil {
			return err
		}
		defer done()

		if strings.HasSuffix(strings.ToLower(args[0]), ".srt") {
			return srtToASS(args[0], out)
		}
		return assToSRT(args[0], out)
	},
}

func srtToASS(input string, out *os.File) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s error: %w", input, err)
	}
	defer f.Close()

	p, err := srt.NewSRTParser(f)
	if err != nil {
		return err
	}
	if err := p.Parse(); err != nil {
		return err
	}
	if err := p.ToASS(out, "", srtKeepMarkup); err != nil {
		return err
	}
	logInfo("%d subtitles converted to ASS", len(p.Contents))
	return nil
}

func assToSRT(input string, out *os.File) error {
	sp, err := readScript(input, srtCharset)
	if err != nil {
		return err
	}
	if err := srt.FromScript(out, sp); err != nil {
		return err
	}
	logInfo("%d events converted to SRT", len(sp.Events))
	return nil
}

func init() {
	srtCmd.Flags().BoolVar(&srtKeepMarkup, "keep-markup", false, "pass raw ASS markup through instead of escaping it")
	srtCmd.Flags().IntVar(&srtCharset, "charset", 0, "Windows codepage id of the ASS input file")
	rootCmd.AddCommand(srtCmd)
}
