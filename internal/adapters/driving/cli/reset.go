package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear both collections",
	Long: `Removes every point from the text and tables collections.
Each collection is cleared independently; one failure never prevents
clearing the other.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	if !resetYes {
		cmd.Print("This clears all indexed data. Continue? [y/N]: ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	confirmations, err := adminService.Reset(context.Background())
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	failures := 0
	for _, c := range confirmations {
		if c.Cleared {
			cmd.Printf("%s: cleared\n", c.Name)
			continue
		}
		failures++
		cmd.Printf("%s: NOT cleared (%s)\n", c.Name, c.Error)
	}

	if failures > 0 {
		return fmt.Errorf("%d collection(s) could not be cleared", failures)
	}
	return nil
}

// printJSON writes any value as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
