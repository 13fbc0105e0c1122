// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kwallet-extract/internal/extract"
	"github.com/pdiddy/kwallet-extract/internal/ledger"
	"github.com/pdiddy/kwallet-extract/internal/wallet"
)

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractConfig()
	cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	started := time.Now()

	wl, err := wallet.Load(cfg.Input)
	if err != nil {
		return err
	}
	log.Debug().Str("input", cfg.Input).Strs("folders", wl.Folders()).Msg("wallet loaded")

	summary, err := extract.Run(cmd.Context(), wl, cfg, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	log.Debug().
		Int("entries", len(summary.Records)).
		Int("files", summary.Keys()).
		Int("overwritten", summary.Overwritten).
		Bool("dry_run", cfg.DryRun).
		Msg("extraction finished")

	lcfg := ledgerConfig()
	if !lcfg.Enabled() || cfg.DryRun {
		return nil
	}

	store, err := ledger.Open(lcfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), ledger.Run{
		StartedAt: started,
		Input:     cfg.Input,
		Folder:    cfg.Folder,
		OutDir:    cfg.OutDir,
		Entries:   len(summary.Records),
		Keys:      summary.Keys(),
	}, summary.Records)
	if err != nil {
		return err
	}
	log.Debug().Int64("run", id).Str("ledger", lcfg.Path).Msg("run recorded")
	return nil
}
