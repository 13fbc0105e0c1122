// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kwallet-extract/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show extraction runs recorded in the ledger",
	Long: `History lists the runs recorded in the --ledger database, newest first.
Use --run to show the entries of one run, or --export to write the whole
ledger to <ledger>.yaml or <ledger>.json. The ledger holds names, keys, and
sizes only, never secret text.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int64("run", 0, "show the entries of this run ID")
	historyCmd.Flags().String("export", "", "export the ledger: yaml or json")
	historyCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	lcfg := ledgerConfig()
	if !lcfg.Enabled() {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger in the config file")
	}

	store, err := ledger.Open(lcfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		var path string
		switch format {
		case "yaml":
			path, err = store.ExportYAML(ctx)
		case "json":
			path, err = store.ExportJSON(ctx)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Exported to %s\n", path)
		return nil
	}

	if runID, _ := cmd.Flags().GetInt64("run"); runID != 0 {
		records, err := store.Entries(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(w, records)
		}
		return formatListOutput(w, records, false)
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return encodeJSON(w, runs)
	}
	formatRunsOutput(w, runs)
	return nil
}

func formatRunsOutput(w io.Writer, runs []ledger.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-7s  %-5s  %s\n", "Run", "Started", "Entries", "Files", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-7d  %-5d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Entries, r.Keys, r.Input)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
