package ghost

import "strconv"

// FieldCount is the number of integer fields in one recording record:
// A, B, Item, stick X, stick Y, trick.
const FieldCount = 6

// Reasons reported by MalformedRecordError.
const (
	ReasonFieldCount = "wrong field count"
	ReasonNotInteger = "field is not an integer"
	ReasonSyntax     = "invalid csv syntax"
	ReasonButton     = "button out of range"
	ReasonStickX     = "stick x out of range"
	ReasonStickY     = "stick y out of range"
	ReasonTrick      = "trick out of range"
)

// NewFrame validates one record and converts it into a Frame. Stick offsets
// are given unbiased. line is the 1-based line the record came from and is
// only used for error reporting. Either every field is valid and a Frame is
// returned, or a *MalformedRecordError is.
func NewFrame(line int, fields []int) (Frame, error) {
	if len(fields) != FieldCount {
		return Frame{}, malformed(line, ReasonFieldCount, fields)
	}

	for _, b := range fields[:3] {
		if b != 0 && b != 1 {
			return Frame{}, malformed(line, ReasonButton, fields)
		}
	}

	x, y, trick := fields[3], fields[4], fields[5]
	if x < StickMin || x > StickMax {
		return Frame{}, malformed(line, ReasonStickX, fields)
	}
	if y < StickMin || y > StickMax {
		return Frame{}, malformed(line, ReasonStickY, fields)
	}
	if trick < 0 || trick > int(MaxTrick) {
		return Frame{}, malformed(line, ReasonTrick, fields)
	}

	return Frame{
		Buttons: FaceButtons{
			A:    fields[0] == 1,
			B:    fields[1] == 1,
			Item: fields[2] == 1,
		},
		Direction: Direction{
			X: uint8(x + StickBias),
			Y: uint8(y + StickBias),
		},
		Trick: Trick(trick),
	}, nil
}

func malformed(line int, reason string, fields []int) *MalformedRecordError {
	raw := make([]string, len(fields))
	for i, f := range fields {
		raw[i] = strconv.Itoa(f)
	}
	return &MalformedRecordError{Line: line, Reason: reason, Fields: raw}
}
