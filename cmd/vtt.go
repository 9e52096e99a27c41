package cmd

import (
	"github.com/Akimio521/asscodec-go/webvtt"
	"github.com/spf13/cobra"
)

var vttCharset int

var vttCmd = &cobra.Command{
	Use:   "vtt [input.ass] [output.vtt]",
	Short: "Convert an ASS script to WebVTT",
	Long: `Convert an ASS script to a WebVTT document. Bold, italic and
underline survive as WebVTT tags (from both override tags and the
event's style); everything else is dropped. Cues are sorted by start
time, pure-drawing events are skipped.

Examples:
  asscodec vtt input.ass output.vtt
  asscodec vtt --charset 134 input.ass -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := readScript(args[0], vttCharset)
		if err != nil {
			return err
		}

		out, done, err := createOutput(args[1])
		if err != nil {
			return err
		}
		defer done()

		warn := webvtt.WithWarnFn(func(msg string) { logWarn("%s", msg) })
		if err := webvtt.WriteDocument(out, sp, warn); err != nil {
			return err
		}
		logInfo("%d events converted to WebVTT", len(sp.Events))
		return nil
	},
}

func init() {
	vttCmd.Flags().IntVar(&vttCharset, "charset", 0, "Windows codepage id of the input file")
	rootCmd.AddCommand(vttCmd)
}
