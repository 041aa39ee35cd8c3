package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strata-labs/strata/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Index documents into the text and tables collections",
	Long: `Reads each file, splits it into prose and table units and indexes
every unit into the collection matching its type. Documents without
usable structure are split into fixed overlapping windows instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	var failedFiles int

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("skipping %s: %v\n", path, err)
			failedFiles++
			continue
		}

		report, err := ingestService.Ingest(ctx, &domain.RawDocument{
			ID:      path,
			Name:    filepath.Base(path),
			Content: string(content),
		})
		if err != nil {
			cmd.PrintErrf("ingest %s failed: %v\n", path, err)
			failedFiles++
			continue
		}

		printIngestReport(cmd, path, report)
	}

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files failed", failedFiles, len(args))
	}
	return nil
}

func printIngestReport(cmd *cobra.Command, path string, report *domain.IngestReport) {
	cmd.Printf("%s: %d indexed", path, report.UnitsIndexed)
	if report.UnitsFailed > 0 {
		cmd.Printf(", %d failed", report.UnitsFailed)
	}
	if report.Degraded() {
		cmd.Printf(" (degraded: %s)", joinDegradations(report.Degradations))
	}
	cmd.Println()
}

func joinDegradations(degradations []domain.Degradation) string {
	out := ""
	for i, d := range degradations {
		if i > 0 {
			out += ", "
		}
		out += string(d)
	}
	return out
}
