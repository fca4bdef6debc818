/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/ghostwriter/pkg/codec"
)

// errChecksumMismatch is returned when a ghost's stored CRC32 is wrong
var errChecksumMismatch = errors.New("checksum mismatch")

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <ghost.rkg>",
	Short: "Show the header fields, run counts and checksum of a ghost",
	Long: `Show the race metadata, per-channel run counts and checksum status of an
encoded ghost file. Exits non-zero when the checksum does not match.

Example:
  ghostwriter inspect fastest.rkg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read ghost: %w", err)
		}
		return inspectGhost(cmd.OutOrStdout(), data)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspectGhost(w io.Writer, data []byte) error {
	summary, err := codec.Inspect(data)
	if err != nil {
		return err
	}

	drift := "manual"
	if !summary.Metadata.ManualDrift {
		drift = "automatic"
	}
	checksum := "ok"
	if !summary.ChecksumValid() {
		checksum = fmt.Sprintf("MISMATCH (computed %08x)", summary.ComputedChecksum)
	}

	rows := [][]string{
		{"Size", strconv.Itoa(summary.Size)},
		{"Track", strconv.Itoa(summary.Metadata.TrackID)},
		{"Character", strconv.Itoa(summary.Metadata.CharacterID)},
		{"Vehicle", strconv.Itoa(summary.Metadata.VehicleID)},
		{"Drift", drift},
		{"Button runs", strconv.Itoa(summary.ButtonRuns)},
		{"Direction runs", strconv.Itoa(summary.DirectionRuns)},
		{"Trick runs", strconv.Itoa(summary.TrickRuns)},
		{"CRC32", fmt.Sprintf("%08x", summary.Checksum)},
		{"Checksum", checksum},
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

	if !summary.ChecksumValid() {
		return errChecksumMismatch
	}
	return nil
}
