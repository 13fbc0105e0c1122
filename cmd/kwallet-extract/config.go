// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// bindFlags binds each viper key to the named flag so that flags, the
// config file, and KWALLET_EXTRACT_* variables resolve to one value.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// extractConfig assembles the extraction settings from viper.
func extractConfig() types.ExtractConfig {
	return types.ExtractConfig{
		Input:       viper.GetString("input"),
		Folder:      viper.GetString("folder"),
		OutDir:      viper.GetString("out_dir"),
		MissingText: viper.GetString("missing_text"),
	}.WithDefaults()
}

// ledgerConfig assembles the ledger settings from viper.
func ledgerConfig() types.LedgerConfig {
	return types.LedgerConfig{Path: viper.GetString("ledger")}
}
