package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendLengthEncodedInteger appends the length-encoded form of n to b. Only
// test fixtures build length-encoded integers on the wire; production code
// exclusively reads them off frames sent by the server.
func appendLengthEncodedInteger(b []byte, n uint64) []byte {
	switch {
	case n <= 250:
		return append(b, byte(n))
	case n <= 0xffff:
		return append(b, 0xfc, byte(n), byte(n>>8))
	case n <= 0xffffff:
		return append(b, 0xfd, byte(n), byte(n>>8), byte(n>>16))
	default:
		return append(b, 0xfe, byte(n), byte(n>>8), byte(n>>16), byte(n>>24),
			byte(n>>32), byte(n>>40), byte(n>>48), byte(n>>56))
	}
}

func TestLengthEncodedIntegerRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 250, 251, 0xffff, 0x10000, 0xffffff, 0x1000000, 1 << 40}
	for _, n := range cases {
		b := appendLengthEncodedInteger(nil, n)
		got, isNull, consumed := readLengthEncodedInteger(b)
		assert.False(t, isNull)
		assert.Equal(t, len(b), consumed)
		assert.Equal(t, n, got)
	}
}

func TestLengthEncodedIntegerNullMarker(t *testing.T) {
	got, isNull, n := readLengthEncodedInteger([]byte{0xfb})
	assert.True(t, isNull)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(0), got)
}

func TestLengthEncodedStringRoundTrip(t *testing.T) {
	b := appendLengthEncodedInteger(nil, 5)
	b = append(b, "hello"...)

	data, isNull, n, err := readLengthEncodedString(b)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, len(b), n)
	assert.Equal(t, "hello", string(data))
}

func TestDecodeOKPacket(t *testing.T) {
	// affectedRows=3, insertId=0, status=0, warnings=0
	data := []byte{iOK, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00}
	decoded, err := decodePacket(data)
	require.NoError(t, err)
	assert.Equal(t, packetOK, decoded.kind)
	assert.Equal(t, uint64(3), decoded.affectedRows)
	assert.Equal(t, uint64(0), decoded.insertID)
	assert.Equal(t, uint16(0), decoded.warnings)
}

func TestDecodeErrorPacket(t *testing.T) {
	data := []byte{iERR, 0x7a, 0x04, '#'}
	data = append(data, "42S02"...)
	data = append(data, "Table doesn't exist"...)

	decoded, err := decodePacket(data)
	require.NoError(t, err)
	assert.Equal(t, packetError, decoded.kind)
	assert.Equal(t, uint16(1146), decoded.errNumber)
	assert.Equal(t, "42S02", decoded.errSQLState)
	assert.Equal(t, "Table doesn't exist", decoded.errMessage)
}

func TestDecodeEOFPacket(t *testing.T) {
	data := []byte{iEOF, 0x00, 0x00, 0x02, 0x00}
	decoded, err := decodePacket(data)
	require.NoError(t, err)
	assert.Equal(t, packetEOF, decoded.kind)
	assert.Equal(t, uint16(0), decoded.eofWarnings)
	assert.Equal(t, statusFlag(2), decoded.eofStatus)
}

func TestDecodeResultSetHeader(t *testing.T) {
	data := []byte{0x02}
	decoded, err := decodePacket(data)
	require.NoError(t, err)
	assert.Equal(t, packetResultSetHeader, decoded.kind)
	assert.Equal(t, 2, decoded.fieldCount)
}

func TestDecodeLocalInFile(t *testing.T) {
	data := append([]byte{iLocalInFile}, "/tmp/data.csv"...)
	decoded, err := decodePacket(data)
	require.NoError(t, err)
	assert.Equal(t, packetLocalInFile, decoded.kind)
	assert.Equal(t, "/tmp/data.csv", decoded.filename)
}
