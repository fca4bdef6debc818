/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/ghostwriter/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or show the ghostwriter configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration with a generated API key",
	Long: `Write a default configuration file with a freshly generated API key.

Examples:
  ghostwriter config init
  ghostwriter config init --config ./ghostwriter.yaml --archive-dir ./ghosts --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		archiveDir, _ := cmd.Flags().GetString("archive-dir")

		path, err := initConfig(configPath, archiveDir, force)
		if err != nil {
			return err
		}
		cmd.Printf("✅ Configuration created at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), configFrom(cmd))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configInitCmd.Flags().String("archive-dir", "", "Archive directory to record in the config")
}

func initConfig(configPath, archiveDir string, force bool) (string, error) {
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	if config.ConfigExists(configPath) && !force {
		return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
	}
	if _, err := config.BootstrapConfig(configPath, archiveDir); err != nil {
		return "", err
	}
	return configPath, nil
}

// showConfig prints cfg as YAML with the API key masked
func showConfig(w io.Writer, cfg *config.Config) error {
	masked := *cfg
	if key := masked.Server.APIKey; len(key) > 8 && key != "auto" {
		masked.Server.APIKey = key[:4] + "..." + key[len(key)-4:]
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
