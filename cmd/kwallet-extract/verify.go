// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kwallet-extract/internal/extract"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the plaintext files against the wallet",
	Long: `Verify re-reads the wallet and compares every output file with the entry
that a run leaves on disk for its key. Each key is reported as ok, missing, or
mismatch. Secrets are never printed. Exits non-zero if any key is not ok.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := extractConfig()

	wl, err := wallet.Load(cfg.Input)
	if err != nil {
		return err
	}
	report, err := extract.Verify(wl, cfg)
	if err != nil {
		return err
	}

	formatVerifyOutput(cmd.OutOrStdout(), report)
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d file(s) failed verification", n, len(report.Checks))
	}
	return nil
}

func formatVerifyOutput(w io.Writer, report extract.VerifyReport) {
	for _, c := range report.Checks {
		fmt.Fprintf(w, "%-9s %s\n", c.Status, c.Key)
	}
	fmt.Fprintf(w, "\n%d checked, %d failed\n", len(report.Checks), report.Failed())
}
