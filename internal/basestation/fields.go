package basestation

// Kind is the grammar a column is parsed with.
type Kind int

const (
	KindTag Kind = iota
	KindInt
	KindString
	KindDate
	KindTime
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Field describes one wire column.
type Field struct {
	Index   int
	Name    string
	Kind    Kind
	MSGOnly bool
}

// Column indexes of the 22-column line
const (
	colMessageType = iota
	colTransmissionType
	colSessionID
	colAircraftID
	colHexIdent
	colFlightID
	colDateGenerated
	colTimeGenerated
	colDateLogged
	colTimeLogged
	colCallsign
	colAltitude
	colGroundSpeed
	colTrack
	colLatitude
	colLongitude
	colVerticalRate
	colSquawk
	colAlert
	colEmergency
	colSPI
	colOnGround

	// ColumnCount is the number of columns in a complete line.
	ColumnCount
)

// requiredColumns is the number of leading columns every line must carry.
// Callsign and the MSG columns may be cut off by short producers.
const requiredColumns = colCallsign

// airToAirColumns is the column count of the truncated rtl1090 MSG,7 line.
const airToAirColumns = 21

// Sentinels that some demodulators write instead of leaving a column empty
const (
	sentinelSessionID  = "111"
	sentinelAircraftID = "11111"
	sentinelFlightID   = "111111"
)

// Fields is the column table of the BaseStation format, in wire order.
var Fields = [ColumnCount]Field{
	{colMessageType, "message_type", KindTag, false},
	{colTransmissionType, "transmission_type", KindInt, false},
	{colSessionID, "session_id", KindInt, false},
	{colAircraftID, "aircraft_id", KindInt, false},
	{colHexIdent, "hexident", KindString, false},
	{colFlightID, "flight_id", KindString, false},
	{colDateGenerated, "generation_date", KindDate, false},
	{colTimeGenerated, "generation_time", KindTime, false},
	{colDateLogged, "record_date", KindDate, false},
	{colTimeLogged, "record_time", KindTime, false},
	{colCallsign, "callsign", KindString, false},
	{colAltitude, "altitude", KindInt, true},
	{colGroundSpeed, "ground_speed", KindFloat, true},
	{colTrack, "track", KindFloat, true},
	{colLatitude, "latitude", KindFloat, true},
	{colLongitude, "longitude", KindFloat, true},
	{colVerticalRate, "vertical_rate", KindInt, true},
	{colSquawk, "squawk", KindInt, true},
	{colAlert, "squawk_alert", KindBool, true},
	{colEmergency, "emergency", KindBool, true},
	{colSPI, "spi", KindBool, true},
	{colOnGround, "on_ground", KindBool, true},
}

// FieldAt returns the column description for index i. Indexes past the
// table (extra trailing columns) report an unnamed string column.
func FieldAt(i int) Field {
	if i >= 0 && i < len(Fields) {
		return Fields[i]
	}
	return Field{Index: i, Name: "extra", Kind: KindString}
}
