package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/turing/internal/machine"
)

var checkCmd = &cobra.Command{
	Use:   "check <description>",
	Short: "Validate a description strictly",
	Long: `Parses a description in strict mode: every rule line must hold exactly
five single-character fields, the direction must be L or R, and no
(state, symbol) pair may appear twice. Exits non-zero on the first
malformed line.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if _, err := loadSettings(cmd); err != nil {
		return err
	}

	table, err := loadTable(args[0], true)
	if err != nil {
		return err
	}

	states := make(map[machine.Symbol]bool)
	for _, entry := range table.Rules() {
		states[entry.State] = true
		states[entry.Next] = true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rules, %d states)\n", args[0], table.Len(), len(states))
	return nil
}
