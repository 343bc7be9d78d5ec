// Package basestation decodes and encodes BaseStation (SBS-1) lines, the
// comma-separated text format served by dump1090, rtl1090 and similar
// receivers on port 30003.
//
// A line has 22 positional columns:
//
//	MSG,3,111,11111,3C49CC,111111,2015/05/01,17:06:55.370,2015/05/01,17:06:55.326,,24400,,,50.65931,6.67709,,,,,,0
//
// Columns 11 to 21 (altitude through on_ground) are only read for MSG
// lines. Every decoded field is optional and nil when the line carries no
// value for it.
package basestation
