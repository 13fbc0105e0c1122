// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kwallet-extract CLI.
//
// kwallet-extract reads a KDE kwalletmanager wallet exported as XML and
// writes each password of the Passwords folder, unencrypted, to a file in
// the current directory named after the entry. The files are meant to be
// picked up by pwm's encrypt_db command and then removed.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kwallet-extract/internal/logger"
	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the diagnostics logger, configured once flags and config are read.
var log = logger.Nop()

// rootCmd extracts the wallet when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "kwallet-extract",
	Short: "Extract passwords from a kwallet XML export into plaintext files",
	Long: `kwallet-extract reads a KDE kwalletmanager wallet exported as XML
(kwallet.xml by default) and writes every password of the "Passwords" folder,
unencrypted, to a file in the current directory. Each file is named after the
entry with spaces and slashes replaced by underscores, and each name is
printed as it is written.

File data remains on disk even after you delete it, so run this on an
encrypted disk or a RAM disk. Afterwards, run pwm's encrypt_db command from
the same directory to build the encrypted database.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	RunE:          runExtract,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.Stderr(viper.GetBool("verbose"))
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug().Str("path", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./kwallet-extract.yaml or ~/.config/kwallet-extract/config.yaml)")
	pf.String("input", types.DefaultInput, "wallet XML export to read")
	pf.String("folder", types.DefaultFolder, "wallet folder holding the password entries")
	pf.String("out-dir", ".", "directory the plaintext files are written to")
	pf.String("missing-text", types.DefaultMissingText, "content written for entries without text")
	pf.String("ledger", "", "SQLite file recording runs and keys (never secrets); empty disables")
	pf.BoolP("verbose", "v", false, "log debug diagnostics to stderr")

	rootCmd.Flags().Bool("dry-run", false, "print the keys without writing any file")

	bindFlags(pf, map[string]string{
		"input":        "input",
		"folder":       "folder",
		"out_dir":      "out-dir",
		"missing_text": "missing-text",
		"ledger":       "ledger",
		"verbose":      "verbose",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kwallet-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kwallet-extract"))
		}
	}

	viper.SetEnvPrefix("KWALLET_EXTRACT")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
