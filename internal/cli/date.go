package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorecheck/lorecheck/chronotext"
)

// dateCmd represents the date command
var dateCmd = &cobra.Command{
	Use:   "date <expression>",
	Short: "Parse a single date expression and show the breakdown",
	Long: `Date parses one expression the same way the conflict detectors do and
prints the normalized result, useful for checking how a phrase will be
interpreted.

Example:
  lorecheck date "circa 500 BCE"
  lorecheck date "next Friday" --ref 2024-03-01
  lorecheck date "2024-03-02T10:00"`,
	Args: cobra.ExactArgs(1),
	RunE: runDate,
}

func init() {
	rootCmd.AddCommand(dateCmd)

	dateCmd.Flags().StringVar(&refDateStr, "ref", "", "reference date for relative expressions (RFC3339 or yyyy-MM-dd; default: now)")
	dateCmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for offset-less dates")
	dateCmd.Flags().StringVar(&localeFlag, "locale", "", "display locale (default: en-US)")
	dateCmd.Flags().BoolVar(&forwardDate, "forward", false, "bias ambiguous relative phrases toward the future")
}

func runDate(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	opts, err := parserOptions(cfg)
	if err != nil {
		return err
	}

	pd := chronotext.Parse(args[0], opts)
	if pd.Error != chronotext.ErrorNone {
		return fmt.Errorf("could not parse %q: %s", args[0], pd.Error)
	}

	fmt.Printf("Expression:  %q\n", args[0])
	fmt.Printf("Display:     %s\n", chronotext.Display(pd, cfg.Parser.Locale))
	fmt.Printf("Start:       %s\n", pd.Start)
	if pd.End != nil {
		fmt.Printf("End:         %s\n", pd.End)
	}
	fmt.Printf("Precision:   %s\n", pd.Precision)
	fmt.Printf("Approximate: %v\n", pd.Approximate)
	if pd.IsBCE {
		fmt.Printf("Era:         BCE (written year %d, internal year %d)\n", pd.OriginalYear, pd.Start.Year())
	}
	fmt.Printf("Millis:      %d\n", chronotext.Millis(*pd.Start))
	return nil
}
