package basestation

// Encode formats m as one BaseStation line terminated by a newline. The
// full 22-column form is always written; absent fields are left empty.
func Encode(m *Message) string {
	return string(AppendEncode(make([]byte, 0, 160), m))
}

// AppendEncode appends the line encoding of m, newline included, to dst.
func AppendEncode(dst []byte, m *Message) []byte {
	dst = append(dst, string(m.MessageType)...)
	dst = append(dst, ',')
	dst = appendInt(dst, m.TransmissionType)
	dst = append(dst, ',')
	dst = appendInt(dst, m.SessionID)
	dst = append(dst, ',')
	dst = appendInt(dst, m.AircraftID)
	dst = append(dst, ',')
	dst = appendString(dst, m.HexIdent)
	dst = append(dst, ',')
	dst = appendString(dst, m.FlightID)
	dst = append(dst, ',')
	dst = appendTimestamp(dst, m.GenerationTime)
	dst = append(dst, ',')
	dst = appendTimestamp(dst, m.RecordTime)
	dst = append(dst, ',')
	dst = appendString(dst, m.Callsign)
	dst = append(dst, ',')
	dst = appendInt(dst, m.Altitude)
	dst = append(dst, ',')
	dst = appendFloat(dst, m.GroundSpeed)
	dst = append(dst, ',')
	dst = appendFloat(dst, m.Track)
	dst = append(dst, ',')
	dst = appendCoordinate(dst, m.Latitude)
	dst = append(dst, ',')
	dst = appendCoordinate(dst, m.Longitude)
	dst = append(dst, ',')
	dst = appendInt(dst, m.VerticalRate)
	dst = append(dst, ',')
	dst = appendInt(dst, m.Squawk)
	dst = append(dst, ',')
	dst = appendBool(dst, m.SquawkAlert)
	dst = append(dst, ',')
	dst = appendBool(dst, m.Emergency)
	dst = append(dst, ',')
	dst = appendBool(dst, m.SPI)
	dst = append(dst, ',')
	dst = appendBool(dst, m.OnGround)
	return append(dst, '\n')
}
