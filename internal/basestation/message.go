package basestation

import (
	"time"
)

// MessageType is the tag in column 0 of a BaseStation line. Producers are
// free to emit tags outside the known set, so it is kept as an open string.
type MessageType string

// BaseStation message types
const (
	TypeSEL MessageType = "SEL" // Selection Change
	TypeID  MessageType = "ID"  // New ID
	TypeAIR MessageType = "AIR" // New Aircraft
	TypeSTA MessageType = "STA" // Status Change
	TypeCLK MessageType = "CLK" // Click
	TypeMSG MessageType = "MSG" // Transmission
)

// Known reports whether t is one of the documented message types.
func (t MessageType) Known() bool {
	switch t {
	case TypeSEL, TypeID, TypeAIR, TypeSTA, TypeCLK, TypeMSG:
		return true
	}
	return false
}

// BaseStation transmission types, only meaningful for MSG lines
const (
	TransmissionESIdentCategory = 1 // Extended Squitter Aircraft ID and Category
	TransmissionESSurface       = 2 // Extended Squitter Surface Position
	TransmissionESAirborne      = 3 // Extended Squitter Airborne Position
	TransmissionESVelocity      = 4 // Extended Squitter Airborne Velocity
	TransmissionSurveillance    = 5 // Surveillance Alt, Squawk change
	TransmissionSurveillanceID  = 6 // Surveillance ID change
	TransmissionAirToAir        = 7 // Air-to-Air Message
	TransmissionAllCall         = 8 // All Call Reply
)

// Message is one decoded BaseStation line. A nil field means the line
// carried no information for it; zero values are never substituted.
type Message struct {
	MessageType      MessageType `json:"message_type,omitempty"`
	TransmissionType *int        `json:"transmission_type,omitempty"`
	SessionID        *int        `json:"session_id,omitempty"`
	AircraftID       *int        `json:"aircraft_id,omitempty"`
	HexIdent         *string     `json:"hexident,omitempty"`
	FlightID         *string     `json:"flight_id,omitempty"`
	GenerationTime   *time.Time  `json:"generation_time,omitempty"`
	RecordTime       *time.Time  `json:"record_time,omitempty"`
	Callsign         *string     `json:"callsign,omitempty"`

	// Populated only for MSG lines
	Altitude     *int     `json:"altitude,omitempty"`
	GroundSpeed  *float64 `json:"ground_speed,omitempty"`
	Track        *float64 `json:"track,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	VerticalRate *int     `json:"vertical_rate,omitempty"`
	Squawk       *int     `json:"squawk,omitempty"`
	SquawkAlert  *bool    `json:"squawk_alert,omitempty"`
	Emergency    *bool    `json:"emergency,omitempty"`
	SPI          *bool    `json:"spi,omitempty"`
	OnGround     *bool    `json:"on_ground,omitempty"`
}

// IsTransmission reports whether m is a MSG line.
func (m *Message) IsTransmission() bool {
	return m.MessageType == TypeMSG
}

// String returns the line encoding of m, including the trailing newline.
func (m *Message) String() string {
	return Encode(m)
}
