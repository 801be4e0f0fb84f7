package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"icon-registry/internal/generator"
	"icon-registry/internal/server"
	"icon-registry/internal/supplier/lucide"
)

var (
	offline      bool
	saveSnapshot bool
	outputDir    string
	registryOut  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch the catalogue and write the registry artifact and Go accessors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		if outputDir != "" {
			cfg.Generator.OutputDir = outputDir
		}
		if registryOut != "" {
			cfg.Generator.RegistryPath = registryOut
		}

		var upstream generator.Fetcher
		if !offline {
			upstream = lucide.NewClient(cfg.Catalogue, log)
		}

		var snapshots generator.Snapshots
		if cfg.Database.Snapshot.Enabled() {
			store, closeStore, err := server.OpenSnapshots(cmd.Context(), cfg.Database.Snapshot, log)
			if err != nil {
				log.Warn("snapshot store unavailable", map[string]interface{}{"error": err.Error()})
			} else {
				defer closeStore()
				snapshots = store
			}
		}

		report, err := generator.New(cfg.Generator, upstream, snapshots, log).Run(cmd.Context(), generator.RunOptions{
			Offline:      offline,
			SaveSnapshot: saveSnapshot,
		})
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&offline, "offline", false, "Skip the upstream fetch; use the snapshot or bundled set")
	generateCmd.Flags().BoolVar(&saveSnapshot, "save-snapshot", true, "Store a freshly fetched catalogue in the snapshot database")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the generated Go package")
	generateCmd.Flags().StringVar(&registryOut, "registry", "", "Path of the registry JSON artifact")
}
