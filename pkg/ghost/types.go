package ghost

// Stick offsets are recorded in [-7,7] and stored with a bias of 7.
const (
	StickMin  = -7
	StickMax  = 7
	StickBias = 7
)

// Trick is the d-pad trick code held on a frame.
type Trick uint8

const (
	TrickNone Trick = iota
	TrickUp
	TrickDown
	TrickLeft
	TrickRight
)

// MaxTrick is the largest valid trick code.
const MaxTrick = TrickRight

// FaceButtons is the digital button state of one frame.
type FaceButtons struct {
	A    bool
	B    bool
	Item bool
}

// Direction is the analog stick state of one frame. Both axes are stored
// biased, in [0,14]; 7 is neutral.
type Direction struct {
	X uint8
	Y uint8
}

// Neutral is the centered stick.
var Neutral = Direction{X: StickBias, Y: StickBias}

// Frame is one recorded frame. Frames carry no timestamp; their position in
// the recording is the only ordering.
type Frame struct {
	Buttons   FaceButtons
	Direction Direction
	Trick     Trick
}
