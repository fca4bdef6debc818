/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/ghostwriter/pkg/api"
	"github.com/ssargent/ghostwriter/pkg/codec"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived ghosts",
	Long: `List, export and delete ghosts kept in the archive.

Examples:
  ghostwriter archive list
  ghostwriter archive get 2c4dE9oKvyWp0nM7iQ6hHhZxb3N -o fastest.rkg
  ghostwriter archive delete 2c4dE9oKvyWp0nM7iQ6hHhZxb3N`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived ghosts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(archive api.ArchiveStore) error {
			return listGhosts(cmd.OutOrStdout(), archive)
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Export an archived ghost to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(configFrom(cmd).OutputDir, args[0]+".rkg")
		}
		return withArchive(cmd, func(archive api.ArchiveStore) error {
			if err := exportGhost(archive, args[0], output); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", output)
			return nil
		})
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived ghost",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(archive api.ArchiveStore) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid ghost id %q: %w", args[0], err)
			}
			if err := archive.Delete(id); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archiveGetCmd, archiveDeleteCmd)
	archiveGetCmd.Flags().StringP("output", "o", "", "Output ghost file (default: <output_dir>/<id>.rkg)")
}

func withArchive(cmd *cobra.Command, fn func(api.ArchiveStore) error) error {
	if container == nil {
		return fmt.Errorf("dependency container not initialized")
	}

	dir := configFrom(cmd).ArchiveDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	archive, err := container.GetArchiveFactory().OpenArchive(dir)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	return fn(archive)
}

func listGhosts(w io.Writer, store api.GhostStore) error {
	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No archived ghosts")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID.String(),
			strconv.Itoa(e.Size),
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Size", "Created"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft}))
	return nil
}

func exportGhost(store api.GhostStore, rawID, output string) error {
	id, err := ksuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid ghost id %q: %w", rawID, err)
	}
	data, err := store.Get(id)
	if err != nil {
		return err
	}
	return codec.WriteFile(output, data)
}
