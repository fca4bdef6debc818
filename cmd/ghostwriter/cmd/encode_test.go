package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/ghostwriter/pkg/api"
	"github.com/ssargent/ghostwriter/pkg/codec"
	"github.com/ssargent/ghostwriter/pkg/ghost"
	"github.com/ssargent/ghostwriter/pkg/logging"
)

func writeRecording(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func neutralLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "0,0,0,0,0,0"
	}
	return lines
}

func TestRunEncode(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeRecording(t, tmpDir, neutralLines(300)...)

	t.Run("writes ghost file", func(t *testing.T) {
		output := filepath.Join(tmpDir, "out", "run.rkg")
		result, err := runEncode(encodeOptions{
			Input:  input,
			Output: output,
			Race:   ghost.RaceMetadata{TrackID: 4, CharacterID: 20, VehicleID: 9, ManualDrift: true},
		}, nil, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 300, result.Ghost.Frames)
		assert.Empty(t, result.ArchiveID)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		require.Len(t, data, codec.FileSize)

		summary, err := codec.Inspect(data)
		require.NoError(t, err)
		assert.Equal(t, ghost.RaceMetadata{TrackID: 4, CharacterID: 20, VehicleID: 9, ManualDrift: true}, summary.Metadata)
	})

	t.Run("archives ghost", func(t *testing.T) {
		archiveDir := filepath.Join(tmpDir, "archive")
		result, err := runEncode(encodeOptions{
			Input:      input,
			Output:     filepath.Join(tmpDir, "archived.rkg"),
			Race:       ghost.RaceMetadata{ManualDrift: true},
			ArchiveDir: archiveDir,
		}, api.NewArchiveFactory(), logging.NewNop())
		require.NoError(t, err)

		id, err := ksuid.Parse(result.ArchiveID)
		require.NoError(t, err)

		archive, err := api.NewArchiveFactory().OpenArchive(archiveDir)
		require.NoError(t, err)
		defer func() { _ = archive.Close() }()
		data, err := archive.Get(id)
		require.NoError(t, err)
		assert.Equal(t, result.Ghost.Data, data)
	})

	t.Run("exports metrics textfile", func(t *testing.T) {
		metricsFile := filepath.Join(tmpDir, "ghostwriter.prom")
		_, err := runEncode(encodeOptions{
			Input:       input,
			Output:      filepath.Join(tmpDir, "metrics.rkg"),
			Race:        ghost.RaceMetadata{ManualDrift: true},
			MetricsFile: metricsFile,
		}, nil, logging.NewNop())
		require.NoError(t, err)

		content, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `ghostwriter_encodes_total{kind="ok",status="success"} 1`)
	})
}

func TestRunEncode_Failures(t *testing.T) {
	t.Run("malformed recording", func(t *testing.T) {
		tmpDir := t.TempDir()
		input := writeRecording(t, tmpDir, "0,0,0,0,0,0", "0,0,0,0,0,6")
		output := filepath.Join(tmpDir, "bad.rkg")
		metricsFile := filepath.Join(tmpDir, "bad.prom")

		_, err := runEncode(encodeOptions{
			Input:       input,
			Output:      output,
			Race:        ghost.RaceMetadata{ManualDrift: true},
			MetricsFile: metricsFile,
		}, nil, logging.NewNop())
		require.Error(t, err)
		assert.ErrorIs(t, err, ghost.ErrMalformedRecord)

		var malformed *ghost.MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, 2, malformed.Line)
		assert.NoFileExists(t, output)

		content, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `kind="malformed_record"`)
	})

	t.Run("invalid metadata", func(t *testing.T) {
		tmpDir := t.TempDir()
		input := writeRecording(t, tmpDir, neutralLines(5)...)
		output := filepath.Join(tmpDir, "meta.rkg")

		_, err := runEncode(encodeOptions{
			Input:  input,
			Output: output,
			Race:   ghost.RaceMetadata{VehicleID: 64},
		}, nil, logging.NewNop())
		assert.ErrorIs(t, err, ghost.ErrInvalidMetadata)
		assert.NoFileExists(t, output)
	})

	t.Run("empty recording", func(t *testing.T) {
		tmpDir := t.TempDir()
		input := filepath.Join(tmpDir, "empty.csv")
		require.NoError(t, os.WriteFile(input, nil, 0644))

		_, err := runEncode(encodeOptions{Input: input, Output: filepath.Join(tmpDir, "empty.rkg")}, nil, logging.NewNop())
		assert.ErrorIs(t, err, ghost.ErrEmptyRecording)
	})

	t.Run("missing recording", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := runEncode(encodeOptions{
			Input:  filepath.Join(tmpDir, "nope.csv"),
			Output: filepath.Join(tmpDir, "nope.rkg"),
		}, nil, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("ghosts", "lap1.rkg"), defaultOutputPath("ghosts", "/tmp/recordings/lap1.csv"))
	assert.Equal(t, "lap1.rkg", defaultOutputPath("", "lap1.csv"))
}
