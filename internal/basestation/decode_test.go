package basestation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLine = "MSG,3,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326,,24400,,,50.65931,6.67709,,,,,,0"

// sbsLine builds a line of n columns with the given columns set.
func sbsLine(n int, set map[int]string) string {
	cols := make([]string, n)
	for i, v := range set {
		cols[i] = v
	}
	return strings.Join(cols, ",")
}

func msgHeader(transmission string) map[int]string {
	return map[int]string{
		0: "MSG",
		1: transmission,
		2: "111",
		3: "11111",
		4: "40621D",
		5: "111111",
		6: "2015/05/01",
		7: "17:06:55.370",
		8: "2015/05/01",
		9: "17:06:55.326",
	}
}

func TestDecode_Sample(t *testing.T) {
	msg, err := Decode(sampleLine)
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Equal(t, TypeMSG, msg.MessageType)
	require.NotNil(t, msg.TransmissionType)
	assert.Equal(t, 3, *msg.TransmissionType)
	require.NotNil(t, msg.HexIdent)
	assert.Equal(t, "3C49CC", *msg.HexIdent)
	require.NotNil(t, msg.Altitude)
	assert.Equal(t, 24400, *msg.Altitude)
	require.NotNil(t, msg.Latitude)
	assert.InDelta(t, 50.65931, *msg.Latitude, 1e-9)
	require.NotNil(t, msg.Longitude)
	assert.InDelta(t, 6.67709, *msg.Longitude, 1e-9)
	require.NotNil(t, msg.OnGround)
	assert.False(t, *msg.OnGround)

	assert.Nil(t, msg.SessionID)
	assert.Nil(t, msg.AircraftID)
	assert.Nil(t, msg.FlightID)
	assert.Nil(t, msg.Callsign)
	assert.Nil(t, msg.GroundSpeed)
	assert.Nil(t, msg.Track)
	assert.Nil(t, msg.VerticalRate)
	assert.Nil(t, msg.Squawk)
	assert.Nil(t, msg.SquawkAlert)
	assert.Nil(t, msg.Emergency)
	assert.Nil(t, msg.SPI)

	require.NotNil(t, msg.GenerationTime)
	assert.Equal(t, time.Date(2015, 5, 1, 17, 6, 55, 370000000, time.UTC), *msg.GenerationTime)
	require.NotNil(t, msg.RecordTime)
	assert.Equal(t, time.Date(2015, 5, 1, 17, 6, 55, 326000000, time.UTC), *msg.RecordTime)
}

func TestDecode_FullTransmission(t *testing.T) {
	line := "msg,3,5,27,4ca2d6,3,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326,ryr1234,37000,451,270.5,51.478,-0.461,-1024,7500,1,Y,off,0\r\n"

	msg, err := Decode(line)
	require.NoError(t, err)

	assert.Equal(t, TypeMSG, msg.MessageType)
	assert.Equal(t, 5, *msg.SessionID)
	assert.Equal(t, 27, *msg.AircraftID)
	assert.Equal(t, "4CA2D6", *msg.HexIdent)
	assert.Equal(t, "3", *msg.FlightID)
	assert.Equal(t, "RYR1234", *msg.Callsign)
	assert.Equal(t, 37000, *msg.Altitude)
	assert.Equal(t, 451.0, *msg.GroundSpeed)
	assert.Equal(t, 270.5, *msg.Track)
	assert.Equal(t, 51.478, *msg.Latitude)
	assert.Equal(t, -0.461, *msg.Longitude)
	assert.Equal(t, -1024, *msg.VerticalRate)
	assert.Equal(t, 7500, *msg.Squawk)
	assert.True(t, *msg.SquawkAlert)
	assert.True(t, *msg.Emergency)
	assert.False(t, *msg.SPI)
	assert.False(t, *msg.OnGround)
}

func TestDecode_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		set      map[int]string
		session  *int
		aircraft *int
		hexIdent *string
		flight   *string
	}{
		{
			name:     "All placeholders",
			set:      map[int]string{0: "AIR", 2: "111", 3: "11111", 4: "111111", 5: "111111"},
			hexIdent: strPtr("111111"), // hexident has no placeholder
		},
		{
			name:     "Real values",
			set:      map[int]string{0: "AIR", 2: "1", 3: "22", 4: "abc123", 5: "f1"},
			session:  intPtr(1),
			aircraft: intPtr(22),
			hexIdent: strPtr("ABC123"),
			flight:   strPtr("F1"),
		},
		{
			name:     "Placeholder of another column is a value",
			set:      map[int]string{0: "AIR", 2: "11111", 3: "111", 5: "111"},
			session:  intPtr(11111),
			aircraft: intPtr(111),
			flight:   strPtr("111"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(sbsLine(10, tt.set))
			require.NoError(t, err)
			assert.Equal(t, tt.session, msg.SessionID)
			assert.Equal(t, tt.aircraft, msg.AircraftID)
			assert.Equal(t, tt.hexIdent, msg.HexIdent)
			assert.Equal(t, tt.flight, msg.FlightID)
		})
	}
}

func TestDecode_AirToAirShortForm(t *testing.T) {
	set := msgHeader("7")
	set[11] = "11000"
	set[20] = "1"
	line := sbsLine(airToAirColumns, set)
	require.Equal(t, 20, strings.Count(line, ","))

	msg, err := Decode(line)
	require.NoError(t, err)

	require.NotNil(t, msg.Altitude)
	assert.Equal(t, 11000, *msg.Altitude)
	require.NotNil(t, msg.OnGround)
	assert.True(t, *msg.OnGround)

	assert.Nil(t, msg.GroundSpeed)
	assert.Nil(t, msg.Track)
	assert.Nil(t, msg.Latitude)
	assert.Nil(t, msg.Longitude)
	assert.Nil(t, msg.VerticalRate)
	assert.Nil(t, msg.Squawk)
	assert.Nil(t, msg.SquawkAlert)
	assert.Nil(t, msg.Emergency)
	assert.Nil(t, msg.SPI)
}

func TestDecode_AirToAirShortFormOnlyLastColumn(t *testing.T) {
	// Columns 12-19 would be malformed in the full form; the short form
	// never reads them.
	set := msgHeader("7")
	set[12] = "fast"
	set[18] = "maybe"
	set[20] = "0"

	msg, err := Decode(sbsLine(airToAirColumns, set))
	require.NoError(t, err)
	assert.Nil(t, msg.Altitude)
	require.NotNil(t, msg.OnGround)
	assert.False(t, *msg.OnGround)
	assert.Nil(t, msg.SPI)
}

func TestDecode_AirToAirFullForm(t *testing.T) {
	set := msgHeader("7")
	set[11] = "11000"
	set[20] = "1"
	set[21] = "0"

	msg, err := Decode(sbsLine(ColumnCount, set))
	require.NoError(t, err)
	require.NotNil(t, msg.SPI)
	assert.True(t, *msg.SPI)
	require.NotNil(t, msg.OnGround)
	assert.False(t, *msg.OnGround)
}

func TestDecode_TwentyOneColumnsOtherTransmission(t *testing.T) {
	set := msgHeader("3")
	set[20] = "1"

	msg, err := Decode(sbsLine(airToAirColumns, set))
	require.NoError(t, err)
	require.NotNil(t, msg.SPI)
	assert.True(t, *msg.SPI)
	assert.Nil(t, msg.OnGround)
}

func TestDecode_NonTransmissionIgnoresMSGColumns(t *testing.T) {
	for _, typ := range []string{"SEL", "ID", "AIR", "STA", "CLK", "XYZ"} {
		t.Run(typ, func(t *testing.T) {
			line := typ + ",,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326,ryr99,abc,xyz,,north,,,,,,,maybe"

			msg, err := Decode(line)
			require.NoError(t, err)
			assert.Equal(t, MessageType(typ), msg.MessageType)
			require.NotNil(t, msg.Callsign)
			assert.Equal(t, "RYR99", *msg.Callsign)
			assert.Nil(t, msg.TransmissionType)
			assert.Nil(t, msg.Altitude)
			assert.Nil(t, msg.GroundSpeed)
			assert.Nil(t, msg.Latitude)
			assert.Nil(t, msg.OnGround)
		})
	}
}

func TestDecode_UnknownTypeKeptVerbatim(t *testing.T) {
	msg, err := Decode("mlat,3,,,ABCDEF,,,,,")
	require.NoError(t, err)
	assert.Equal(t, MessageType("MLAT"), msg.MessageType)
	assert.False(t, msg.MessageType.Known())
	assert.False(t, msg.IsTransmission())
}

func TestDecode_ShortLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		callsign *string
	}{
		{
			name: "No callsign column",
			line: "AIR,,5,179,400AA9,10103,2008/11/28,14:58:51.153,2008/11/28,14:58:51.153",
		},
		{
			name:     "Callsign is last column",
			line:     "ID,,5,179,400AA9,10103,2008/11/28,14:58:51.153,2008/11/28,14:58:51.153,rm",
			callsign: strPtr("RM"),
		},
		{
			name: "MSG without transmission columns",
			line: "MSG,8,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326",
		},
		{
			name: "MSG cut after altitude",
			line: "MSG,5,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326,,2500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.callsign, msg.Callsign)
			assert.Nil(t, msg.OnGround)
			assert.Nil(t, msg.GroundSpeed)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		index int
	}{
		{name: "Empty line", line: "", index: 1},
		{name: "Header only", line: "MSG,3,111,11111", index: 4},
		{name: "Missing record time", line: "MSG,3,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01", index: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(tt.line)
			assert.Nil(t, msg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTruncatedLine))
			assert.False(t, errors.Is(err, ErrMalformedField))

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, tt.index, decErr.Index)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		index int
		value string
		kind  Kind
	}{
		{name: "Transmission type", index: 1, value: "abc", kind: KindInt},
		{name: "Session id", index: 2, value: "1x1", kind: KindInt},
		{name: "Aircraft id", index: 3, value: "12.5", kind: KindInt},
		{name: "Generation date", index: 6, value: "2015-05-01", kind: KindDate},
		{name: "Generation time", index: 7, value: "17:06:55", kind: KindTime},
		{name: "Record time fraction", index: 9, value: "17:06:55.3a0", kind: KindTime},
		{name: "Generation time double fraction", index: 7, value: "12:00:00.1.5", kind: KindTime},
		{name: "Record time double fraction", index: 9, value: "17:06:55.9.370", kind: KindTime},
		{name: "Altitude", index: 11, value: "FL240", kind: KindInt},
		{name: "Ground speed", index: 12, value: "fast", kind: KindFloat},
		{name: "Latitude", index: 14, value: "50.6N", kind: KindFloat},
		{name: "Hex latitude", index: 14, value: "0x1p4", kind: KindFloat},
		{name: "Hex track", index: 13, value: "0x1.8p1", kind: KindFloat},
		{name: "Squawk", index: 17, value: "7x00", kind: KindInt},
		{name: "Emergency", index: 19, value: "maybe", kind: KindBool},
		{name: "On ground", index: 21, value: "2", kind: KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := msgHeader("3")
			set[tt.index] = tt.value

			msg, err := Decode(sbsLine(ColumnCount, set))
			assert.Nil(t, msg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedField))

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, tt.index, decErr.Index)
			assert.Equal(t, tt.value, decErr.Value)
			assert.Equal(t, tt.kind, decErr.Kind)
			assert.Equal(t, Fields[tt.index].Name, decErr.Name)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestDecode_PartialTimestampPairIsAbsent(t *testing.T) {
	tests := []struct {
		name string
		set  map[int]string
	}{
		{name: "Date only", set: map[int]string{0: "STA", 6: "2015/05/01", 8: "2015/05/01"}},
		{name: "Time only", set: map[int]string{0: "STA", 7: "17:06:55.370", 9: "17:06:55.326"}},
		{name: "Malformed half without partner", set: map[int]string{0: "STA", 6: "garbage", 9: "garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(sbsLine(10, tt.set))
			require.NoError(t, err)
			assert.Nil(t, msg.GenerationTime)
			assert.Nil(t, msg.RecordTime)
		})
	}
}

func TestDecode_IndependentCalls(t *testing.T) {
	_, err := Decode("MSG,abc,111,11111,3C49CC,111111,,,,")
	require.Error(t, err)

	msg, err := Decode(sampleLine)
	require.NoError(t, err)
	assert.Equal(t, 3, *msg.TransmissionType)
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func timePtr(t time.Time) *time.Time { return &t }
