/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/ghostwriter/pkg/api"
	"github.com/ssargent/ghostwriter/pkg/codec"
	"github.com/ssargent/ghostwriter/pkg/ghost"
	"github.com/ssargent/ghostwriter/pkg/logging"
	"github.com/ssargent/ghostwriter/pkg/metrics"
	"github.com/ssargent/ghostwriter/pkg/recording"
)

// encodeOptions describes one encode run
type encodeOptions struct {
	Input       string
	Output      string
	Race        ghost.RaceMetadata
	ArchiveDir  string // empty disables archiving
	MetricsFile string // empty disables the textfile export
}

// encodeResult is what an encode run produced
type encodeResult struct {
	Ghost     *codec.Ghost
	Output    string
	ArchiveID string
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <recording.csv>",
	Short: "Encode a CSV recording into an RKG ghost",
	Long: `Encode a per-frame CSV recording (A,B,Item,StickX,StickY,Trick) into an RKG
ghost file. Race metadata defaults come from the config file.

Examples:
  ghostwriter encode run.csv
  ghostwriter encode run.csv -o fastest.rkg --track 8 --character 12 --vehicle 3
  ghostwriter encode run.csv --auto-drift --archive --metrics-file ./ghostwriter.prom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)

		opts := encodeOptions{
			Input:       args[0],
			Race:        cfg.Race,
			MetricsFile: cfg.Metrics.TextfilePath,
		}
		opts.Output, _ = cmd.Flags().GetString("output")
		if opts.Output == "" {
			opts.Output = defaultOutputPath(cfg.OutputDir, opts.Input)
		}
		if cmd.Flags().Changed("track") {
			opts.Race.TrackID, _ = cmd.Flags().GetInt("track")
		}
		if cmd.Flags().Changed("character") {
			opts.Race.CharacterID, _ = cmd.Flags().GetInt("character")
		}
		if cmd.Flags().Changed("vehicle") {
			opts.Race.VehicleID, _ = cmd.Flags().GetInt("vehicle")
		}
		if cmd.Flags().Changed("auto-drift") {
			auto, _ := cmd.Flags().GetBool("auto-drift")
			opts.Race.ManualDrift = !auto
		}
		if archive, _ := cmd.Flags().GetBool("archive"); archive {
			opts.ArchiveDir = cfg.ArchiveDir
		}
		if cmd.Flags().Changed("metrics-file") {
			opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		}

		var archives api.ArchiveFactory
		if opts.ArchiveDir != "" {
			if container == nil {
				return fmt.Errorf("dependency container not initialized")
			}
			archives = container.GetArchiveFactory()
		}

		result, err := runEncode(opts, archives, loggerFrom(cmd))
		if err != nil {
			return err
		}
		printEncodeResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Output ghost file (default: <output_dir>/<recording>.rkg)")
	encodeCmd.Flags().Int("track", 0, "Track id (0-63)")
	encodeCmd.Flags().Int("character", 0, "Character id (0-63)")
	encodeCmd.Flags().Int("vehicle", 0, "Vehicle id (0-63)")
	encodeCmd.Flags().Bool("auto-drift", false, "Record automatic drift instead of manual")
	encodeCmd.Flags().Bool("archive", false, "Also store the ghost in the archive")
	encodeCmd.Flags().String("metrics-file", "", "Write encode metrics to this Prometheus textfile")
}

func defaultOutputPath(outputDir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if outputDir == "" {
		outputDir = "."
	}
	return filepath.Join(outputDir, base+".rkg")
}

// runEncode reads the recording, writes the ghost and optionally archives it.
// Metrics are exported even when the encode fails.
func runEncode(opts encodeOptions, archives api.ArchiveFactory, logger *slog.Logger) (*encodeResult, error) {
	logger = logging.NewComponentLogger(logger, "encode")
	m := metrics.New()

	result, err := encode(opts, archives, m, logger)

	if opts.MetricsFile != "" {
		if werr := m.WriteTextfile(opts.MetricsFile); werr != nil {
			logger.Warn("failed to write metrics textfile", slog.String("path", opts.MetricsFile), slog.Any("error", werr))
		}
	}
	return result, err
}

func encode(opts encodeOptions, archives api.ArchiveFactory, m *metrics.Metrics, logger *slog.Logger) (*encodeResult, error) {
	frames, err := recording.ReadFile(opts.Input)
	if err != nil {
		m.RecordEncode(nil, err, 0)
		logger.Error("recording rejected", slog.String("kind", ghost.Kind(err)), slog.Any("error", err))
		return nil, err
	}

	start := time.Now()
	g, err := codec.NewGhostCodec().EncodeToFile(opts.Output, frames, opts.Race)
	m.RecordEncode(g, err, time.Since(start))
	if err != nil {
		logger.Error("encode failed", slog.String("kind", ghost.Kind(err)), slog.Any("error", err))
		return nil, err
	}

	logger.Info("ghost written",
		slog.String("path", opts.Output),
		slog.Int("frames", g.Frames),
		slog.Int("runs_buttons", len(g.Inputs.Buttons)),
		slog.Int("runs_direction", len(g.Inputs.Direction)),
		slog.Int("runs_trick", len(g.Inputs.Trick)),
		slog.Int("bytes", g.Inputs.Size()),
	)

	result := &encodeResult{Ghost: g, Output: opts.Output}
	if opts.ArchiveDir == "" {
		return result, nil
	}

	if err := os.MkdirAll(opts.ArchiveDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	archive, err := archives.OpenArchive(opts.ArchiveDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = archive.Close() }()

	id, err := archive.Put(g.Data)
	if err != nil {
		return nil, err
	}
	result.ArchiveID = id.String()
	logger.Info("ghost archived", slog.String(logging.FieldGhostID, result.ArchiveID))

	if entries, err := archive.List(); err == nil {
		m.SetArchivedGhosts(len(entries))
	}
	return result, nil
}

func printEncodeResult(w io.Writer, result *encodeResult) {
	g := result.Ghost
	fmt.Fprintf(w, "Wrote %s (%d frames, %d input bytes, crc32 %08x)\n",
		result.Output, g.Frames, g.Inputs.Size(), g.Checksum)
	fmt.Fprintf(w, "Runs: buttons=%d direction=%d trick=%d\n",
		len(g.Inputs.Buttons), len(g.Inputs.Direction), len(g.Inputs.Trick))
	if result.ArchiveID != "" {
		fmt.Fprintf(w, "Archived as %s\n", result.ArchiveID)
	}
}
