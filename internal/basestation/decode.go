package basestation

import (
	"strings"
	"time"
)

// columns addresses a split line by index. Indexes past the end read as
// empty, so optional trailing columns need no length checks.
type columns []string

func (c columns) at(i int) string {
	if i < len(c) {
		return c[i]
	}
	return ""
}

// Decode parses one BaseStation line. Trailing line-ending whitespace is
// ignored. Any column that does not match its grammar fails the whole line
// with a *DecodeError; no partial Message is returned.
//
// The placeholders 111, 11111 and 111111 in session_id, aircraft_id and
// flight_id decode as absent. Encode never writes them back.
func Decode(line string) (*Message, error) {
	cols := columns(strings.Split(strings.TrimRight(line, "\r\n \t"), ","))
	if len(cols) < requiredColumns {
		return nil, truncated(len(cols), len(cols))
	}

	msg := &Message{}
	var err error

	if s := cols[colMessageType]; s != "" {
		msg.MessageType = MessageType(strings.ToUpper(s))
	}
	if msg.TransmissionType, err = intColumn(cols, colTransmissionType, ""); err != nil {
		return nil, err
	}
	if msg.SessionID, err = intColumn(cols, colSessionID, sentinelSessionID); err != nil {
		return nil, err
	}
	if msg.AircraftID, err = intColumn(cols, colAircraftID, sentinelAircraftID); err != nil {
		return nil, err
	}
	msg.HexIdent = upperColumn(cols, colHexIdent, "")
	msg.FlightID = upperColumn(cols, colFlightID, sentinelFlightID)

	if msg.GenerationTime, err = timestampColumns(cols, colDateGenerated, colTimeGenerated); err != nil {
		return nil, err
	}
	if msg.RecordTime, err = timestampColumns(cols, colDateLogged, colTimeLogged); err != nil {
		return nil, err
	}
	msg.Callsign = upperColumn(cols, colCallsign, "")

	if !msg.IsTransmission() {
		return msg, nil
	}
	if err := decodeTransmission(msg, cols); err != nil {
		return nil, err
	}
	return msg, nil
}

// decodeTransmission fills the MSG-only columns.
func decodeTransmission(msg *Message, cols columns) error {
	var err error

	if msg.Altitude, err = intColumn(cols, colAltitude, ""); err != nil {
		return err
	}

	// rtl1090 sends MSG,7 with 21 columns carrying only altitude and the
	// ground flag, the latter in the last column.
	if msg.TransmissionType != nil && *msg.TransmissionType == TransmissionAirToAir && len(cols) == airToAirColumns {
		msg.OnGround, err = boolColumn(cols, len(cols)-1)
		return err
	}

	if msg.GroundSpeed, err = floatColumn(cols, colGroundSpeed); err != nil {
		return err
	}
	if msg.Track, err = floatColumn(cols, colTrack); err != nil {
		return err
	}
	if msg.Latitude, err = floatColumn(cols, colLatitude); err != nil {
		return err
	}
	if msg.Longitude, err = floatColumn(cols, colLongitude); err != nil {
		return err
	}
	if msg.VerticalRate, err = intColumn(cols, colVerticalRate, ""); err != nil {
		return err
	}
	if msg.Squawk, err = intColumn(cols, colSquawk, ""); err != nil {
		return err
	}
	if msg.SquawkAlert, err = boolColumn(cols, colAlert); err != nil {
		return err
	}
	if msg.Emergency, err = boolColumn(cols, colEmergency); err != nil {
		return err
	}
	if msg.SPI, err = boolColumn(cols, colSPI); err != nil {
		return err
	}
	if msg.OnGround, err = boolColumn(cols, colOnGround); err != nil {
		return err
	}
	return nil
}

// intColumn parses column i unless it is empty or equals sentinel.
func intColumn(cols columns, i int, sentinel string) (*int, error) {
	s := cols.at(i)
	if s == "" || (sentinel != "" && s == sentinel) {
		return nil, nil
	}
	v, err := parseInt(s)
	if err != nil {
		return nil, malformed(i, s, err)
	}
	return &v, nil
}

func floatColumn(cols columns, i int) (*float64, error) {
	s := cols.at(i)
	if s == "" {
		return nil, nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return nil, malformed(i, s, err)
	}
	return &v, nil
}

func boolColumn(cols columns, i int) (*bool, error) {
	s := cols.at(i)
	if s == "" {
		return nil, nil
	}
	v, err := parseBool(s)
	if err != nil {
		return nil, malformed(i, s, err)
	}
	return &v, nil
}

func upperColumn(cols columns, i int, sentinel string) *string {
	s := cols.at(i)
	if s == "" || (sentinel != "" && s == sentinel) {
		return nil
	}
	v := strings.ToUpper(s)
	return &v
}

// timestampColumns builds a timestamp only when both halves are present.
func timestampColumns(cols columns, dateCol, timeCol int) (*time.Time, error) {
	date, clock := cols.at(dateCol), cols.at(timeCol)
	if date == "" || clock == "" {
		return nil, nil
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, malformed(dateCol, date, err)
	}
	offset, err := parseClock(clock)
	if err != nil {
		return nil, malformed(timeCol, clock, err)
	}
	t := d.Add(offset)
	return &t, nil
}
