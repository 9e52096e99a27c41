package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCharset int

var infoCmd = &cobra.Command{
	Use:   "info [input.ass]",
	Short: "Inspect an ASS script",
	Long: `Print the script metadata, the style table and event statistics of
an ASS script.

Examples:
  asscodec info input.ass
  asscodec info --charset 128 input.ass`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := readScript(args[0], infoCharset)
		if err != nil {
			return err
		}

		fmt.Println(paint(colorCyan, "[Script Info]"))
		fmt.Printf("  ScriptType: %s\n", sp.Info.ScriptType)
		fmt.Printf("  Collisions: %s\n", sp.Info.Collisions)
		fmt.Printf("  PlayRes:    %dx%d\n", sp.Info.PlayResX, sp.Info.PlayResY)
		fmt.Printf("  Timer:      %g\n", sp.Info.Timer)

		fmt.Println(paint(colorCyan, "[Styles]"))
		for _, s := range sp.StyleTable.Styles() {
			fmt.Printf("  %-20s %s %d  bold=%d italic=%v  align=%d  charset=%d\n",
				s.Name, s.FontName, s.FontSize, s.Bold, s.Italic, s.Alignment, s.Encoding)
		}

		fmt.Println(paint(colorCyan, "[Events]"))
		layers := map[int]int{}
		for i := range sp.Events {
			layers[sp.Events[i].Layer]++
		}
		fmt.Printf("  %d dialogue events\n", len(sp.Events))
		for layer, n := range layers {
			fmt.Printf("  layer %d: %d events\n", layer, n)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().IntVar(&infoCharset, "charset", 0, "Windows codepage id of the input file")
	rootCmd.AddCommand(infoCmd)
}
