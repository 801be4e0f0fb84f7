package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"icon-registry/internal/common/validation"
	"icon-registry/pkg/registry"
)

var validatePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a registry artifact against its schema and invariants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := validatePath
		if path == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.Generator.RegistryPath
		}
		return validateRegistryFile(cmd, path)
	},
}

func validateRegistryFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := validation.ValidateDocument(registry.DocumentSchema, data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s does not match the registry schema:\n  %s", path, strings.Join(result.GetErrorMessages(), "\n  "))
	}

	reg, err := registry.Unmarshal(data)
	if err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registry is valid: %s (%d icons)\n", path, reg.Count())
	return nil
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "path", "", "Path to registry file (default: generator.registry_path)")
}
