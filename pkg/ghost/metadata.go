package ghost

// Upper bounds of the 6-bit metadata fields in the ghost header.
const (
	MaxTrackID     = 0x3F
	MaxCharacterID = 0x3F
	MaxVehicleID   = 0x3F
)

// RaceMetadata is the race configuration written to the ghost header. It is
// fixed for the whole encode.
type RaceMetadata struct {
	TrackID     int  `json:"track_id" yaml:"track_id"`
	CharacterID int  `json:"character_id" yaml:"character_id"`
	VehicleID   int  `json:"vehicle_id" yaml:"vehicle_id"`
	ManualDrift bool `json:"manual_drift" yaml:"manual_drift"`
}

// Validate checks that every id fits its header field.
func (m RaceMetadata) Validate() error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"track_id", m.TrackID, MaxTrackID},
		{"character_id", m.CharacterID, MaxCharacterID},
		{"vehicle_id", m.VehicleID, MaxVehicleID},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return &InvalidMetadataError{Field: c.field, Value: c.value, Max: c.max}
		}
	}
	return nil
}

// DriftType is 0 for manual drift and 1 for automatic.
func (m RaceMetadata) DriftType() uint8 {
	if m.ManualDrift {
		return 0
	}
	return 1
}
