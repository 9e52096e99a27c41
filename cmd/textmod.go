package cmd

import (
	"fmt"

	"github.com/Akimio521/asscodec-go/ass"
	"github.com/Akimio521/asscodec-go/textmod"
	"github.com/spf13/cobra"
)

var (
	textmodRules     string
	textmodSpeaker   string
	textmodLineBreak bool
	textmodCharset   int
)

var speakerModes = map[string]textmod.SpeakerMode{
	"square_brackets": textmod.SpeakerSquare,
	"round_brackets":  textmod.SpeakerRound,
	"colon":           textmod.SpeakerColon,
	"plain":           textmod.SpeakerPlain,
}

var textmodCmd = &cobra.Command{
	Use:   "textmod [input.ass] [output.ass]",
	Short: "Modify dialogue text",
	Long: `Apply text modifications to every dialogue event. Operations only
touch literal text: override tags and drawing coordinates pass through
untouched. The operation comes from a YAML rule file (--rules) and/or
speaker-name insertion (--show-speaker).

Rule file example:
  mode: censor
  words: [darn, heck]
  censor_char: "*"
  censor_mode: keep_first

Examples:
  asscodec textmod --rules rules.yaml input.ass output.ass
  asscodec textmod --show-speaker colon --line-break input.ass output.ass`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tm *textmod.TextMod
		if textmodRules != "" {
			rf, err := textmod.LoadRuleFile(textmodRules)
			if err != nil {
				return err
			}
			if tm, err = rf.Build(); err != nil {
				return err
			}
		}

		var speaker *textmod.ShowSpeaker
		if textmodSpeaker != "" {
			mode, ok := speakerModes[textmodSpeaker]
			if !ok {
				return fmt.Errorf("unknown speaker mode %q", textmodSpeaker)
			}
			speaker = &textmod.ShowSpeaker{Mode: mode, LineBreak: textmodLineBreak}
		}

		if tm == nil && speaker == nil {
			return fmt.Errorf("nothing to do: specify --rules and/or --show-speaker")
		}

		sp, err := readScript(args[0], textmodCharset)
		if err != nil {
			return err
		}

		out, done, err := createOutput(args[1])
		if err != nil {
			return err
		}
		defer done()

		err = sp.WriteScript(out, func(d *ass.Dialog) (string, bool) {
			text := d.Text
			if tm != nil {
				text = tm.Apply(text)
			}
			if speaker != nil {
				prefixed := *d
				prefixed.Text = text
				text = speaker.Apply(&prefixed)
			}
			return text, true
		})
		if err != nil {
			return err
		}

		logInfo("%d events processed", len(sp.Events))
		return nil
	},
}

func init() {
	textmodCmd.Flags().StringVarP(&textmodRules, "rules", "r", "", "YAML rule file describing the operation")
	textmodCmd.Flags().StringVar(&textmodSpeaker, "show-speaker", "", "insert speaker names (square_brackets, round_brackets, colon, plain)")
	textmodCmd.Flags().BoolVar(&textmodLineBreak, "line-break", false, "line break after the speaker name instead of a space")
	textmodCmd.Flags().IntVar(&textmodCharset, "charset", 0, "Windows codepage id of the input file")
	rootCmd.AddCommand(textmodCmd)
}
