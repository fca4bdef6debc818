// Package recording reads per-frame controller recordings.
//
// A recording is a CSV file with one frame per line, in play order:
//
//	A,B,Item,StickX,StickY,Trick
//
// Buttons are 0 or 1, stick offsets are in [-7,7] and the trick code is in
// [0,4]. Blank lines and lines starting with '#' are ignored.
package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ssargent/ghostwriter/pkg/ghost"
)

// Read parses a recording. The first invalid line aborts the read with a
// *ghost.MalformedRecordError carrying its 1-based line number.
func Read(r io.Reader) ([]ghost.Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	frames := make([]ghost.Frame, 0, 3600)
	values := make([]int, ghost.FieldCount)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &ghost.MalformedRecordError{Line: parseErr.StartLine, Reason: ghost.ReasonSyntax}
			}
			return nil, fmt.Errorf("read recording: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) != ghost.FieldCount {
			return nil, &ghost.MalformedRecordError{Line: line, Reason: ghost.ReasonFieldCount, Fields: record}
		}

		for i, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, &ghost.MalformedRecordError{Line: line, Reason: ghost.ReasonNotInteger, Fields: record}
			}
			values[i] = v
		}

		frame, err := ghost.NewFrame(line, values)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// ReadFile parses the recording stored at path.
func ReadFile(path string) ([]ghost.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	defer func() { _ = file.Close() }()

	frames, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}
