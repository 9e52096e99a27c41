package cmd

import (
	"fmt"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
	"github.com/Akimio521/asscodec-go/textmod"
	"github.com/spf13/cobra"
)

// keep-mask names accepted by --keep, matching the tag categories
var keepFlagNames = map[string]ass.Components{
	"basic":           ass.SplitBasic,
	"all_known":       ass.SplitAllKnown,
	"text":            ass.SplitText,
	"color":           ass.SplitColor,
	"alpha":           ass.SplitAlpha,
	"font_name":       ass.SplitFontName,
	"font_size":       ass.SplitFontSize,
	"font_scale":      ass.SplitFontScale,
	"font_spacing":    ass.SplitFontSpacing,
	"font_charset":    ass.SplitFontCharset,
	"font_bold":       ass.SplitFontBold,
	"font_italic":     ass.SplitFontItalic,
	"font_underline":  ass.SplitFontUnderline,
	"font_strikeout":  ass.SplitFontStrikeout,
	"text_border":     ass.SplitBorder,
	"text_shadow":     ass.SplitShadow,
	"text_rotate":     ass.SplitRotate,
	"text_blur":       ass.SplitBlur,
	"text_wrap":       ass.SplitWrap,
	"text_align":      ass.SplitAlignment,
	"reset_override":  ass.SplitCancelling,
	"move":            ass.SplitMove,
	"pos":             ass.SplitPos,
	"origin":          ass.SplitOrigin,
	"draw":            ass.SplitDraw,
	"animate":         ass.SplitAnimate,
	"fade":            ass.SplitFade,
	"clip":            ass.SplitClip,
	"unknown":         ass.SplitUnknown,
}

// parseKeepFlags turns a comma-separated list of names into a mask.
// Text is always kept, otherwise stripping would empty every event.
func parseKeepFlags(spec string) (ass.Components, error) {
	keep := ass.SplitText
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		flag, ok := keepFlagNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown keep flag %q", name)
		}
		keep |= flag
	}
	return keep, nil
}

var (
	stripKeep           string
	stripRemoveAnimated bool
	stripLayer          int
	stripCharset        int
)

var stripCmd = &cobra.Command{
	Use:   "strip [input.ass] [output.ass]",
	Short: "Remove override tags from dialogue events",
	Long: `Strip removes override tags from every dialogue event, keeping only
the tag categories named by --keep. Events without any visible text
after stripping (pure drawings, or pure animations with
--remove-animated) are dropped entirely.

Examples:
  asscodec strip input.ass output.ass
  asscodec strip --keep basic input.ass output.ass
  asscodec strip --keep font_bold,font_italic --layer 0 input.ass -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, err := parseKeepFlags(stripKeep)
		if err != nil {
			return err
		}

		sp, err := readScript(args[0], stripCharset)
		if err != nil {
			return err
		}

		strip := textmod.NewStripStyles()
		strip.KeepFlags = keep
		strip.RemoveAnimated = stripRemoveAnimated
		strip.SelectLayer = stripLayer

		out, done, err := createOutput(args[1])
		if err != nil {
			return err
		}
		defer done()

		dropped := 0
		err = sp.WriteScript(out, func(d *ass.Dialog) (string, bool) {
			text, ok := strip.ProcessDialog(d)
			if !ok {
				dropped++
			}
			return text, ok
		})
		if err != nil {
			return err
		}

		logInfo("%d events written, %d dropped", len(sp.Events)-dropped, dropped)
		return nil
	},
}

func init() {
	stripCmd.Flags().StringVarP(&stripKeep, "keep", "k", "", "comma-separated tag categories to keep (text is implied)")
	stripCmd.Flags().BoolVar(&stripRemoveAnimated, "remove-animated", false, "drop events whose visible text is entirely animated")
	stripCmd.Flags().IntVar(&stripLayer, "layer", -1, "only keep events on this layer (-1 = all)")
	stripCmd.Flags().IntVar(&stripCharset, "charset", 0, "Windows codepage id of the input file")
	rootCmd.AddCommand(stripCmd)
}
