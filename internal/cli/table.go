package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table <description>",
	Short: "Print the parsed transition table",
	Long: `Parses a description and prints its rules, one per line, sorted by state
and symbol. In lenient mode, lines that were accepted but malformed are
listed after the rules.`,
	Args: cobra.ExactArgs(1),
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	table, err := loadTable(args[0], cfg.Parse.Strict)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if table.Len() == 0 {
		fmt.Fprintln(out, "No rules found.")
	}
	for _, entry := range table.Rules() {
		fmt.Fprintln(out, entry)
	}

	if warnings := table.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(out, "\n%d malformed line(s):\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "  %s\n", w.Error())
		}
	}
	return nil
}
