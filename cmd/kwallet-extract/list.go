// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kwallet-extract/internal/extract"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
	"github.com/pdiddy/kwallet-extract/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the file each wallet entry would be written to",
	Long: `List parses the wallet and prints, for every password entry, the key used
as its filename and its original name. Entries whose file would be replaced by
a later entry with the same key are marked "overwritten". Nothing is written
and no secret is printed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := extractConfig()

	wl, err := wallet.Load(cfg.Input)
	if err != nil {
		return err
	}
	records, err := extract.Plan(wl, cfg.Folder, cfg.MissingText)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatListOutput(w io.Writer, records []types.Record, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []types.Record{}
		}
		return encodeJSON(w, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No password entries found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-30s  %s\n", "#", "Key", "Name", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	overwritten := 0
	for _, r := range records {
		note := ""
		switch {
		case r.Overwritten:
			note = "overwritten"
			overwritten++
		case !r.HasText:
			note = "no text"
		}
		fmt.Fprintf(w, "%-4d  %-30s  %-30s  %s\n", r.Position, r.Key, r.Name, note)
	}

	fmt.Fprintf(w, "\n%d entries, %d files\n", len(records), len(records)-overwritten)
	return nil
}
