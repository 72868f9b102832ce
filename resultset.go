package mysql

import "encoding/binary"

// Result-set reader, per spec.md §4.5: given a ResultSetHeader with N
// fields, read N column definitions, one intermediate EOF, then rows
// until EOF/Error.
func (mc *Connection) readResultSet(fieldCount int) (*QueryResult, error) {
	columns := make([]*ColumnInformation, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		data, err := mc.readPacket()
		if err != nil {
			return nil, err
		}
		col, err := decodeColumnDefinition(data)
		if err != nil {
			mc.poison()
			return nil, newProtocolError("malformed column definition: %v", err)
		}
		columns = append(columns, col)
	}

	// Intermediate EOF of the column-definition phase: read and discard,
	// unless the server sent an Error in its place (spec.md §8 scenario 4).
	mid, err := mc.readPacket()
	if err != nil {
		return nil, err
	}
	if len(mid) > 0 && mid[0] == iERR {
		decoded, derr := decodeErrorPacket(mid)
		if derr != nil {
			mc.poison()
			return nil, newProtocolError("malformed error packet: %v", derr)
		}
		return nil, decoded.asQueryError()
	}

	var rows []Row
	var warnings uint16
	for {
		data, err := mc.readRowFrame()
		if err != nil {
			return nil, err
		}

		if len(data) > 0 && data[0] == iERR {
			decoded, derr := decodeErrorPacket(data)
			if derr != nil {
				mc.poison()
				return nil, newProtocolError("malformed error packet: %v", derr)
			}
			return nil, decoded.asQueryError()
		}
		if len(data) < 9 && len(data) > 0 && data[0] == iEOF {
			eof := decodeEOFPacket(data)
			warnings = eof.eofWarnings
			break
		}

		row, err := decodeRow(data, columns)
		if err != nil {
			mc.poison()
			return nil, newProtocolError("malformed row: %v", err)
		}
		rows = append(rows, row)
	}

	return &QueryResult{
		IsResultSet: true,
		Columns:     columns,
		Rows:        rows,
		Warnings:    warnings,
	}, nil
}

// readRowFrame reads one logical row frame, concatenating successive
// physical frames when the prior one's payload was exactly
// maxPacketSize bytes, per spec.md §4.5 "Multi-packet rows". Every frame
// that follows a maxPacketSize frame is appended as a continuation, up to
// and including the first shorter one, so the EOF and Error markers are
// only looked for in the first physical frame of a logical row.
func (mc *Connection) readRowFrame() ([]byte, error) {
	data, err := mc.readPacket()
	if err != nil {
		return nil, err
	}

	if len(data) != maxPacketSize {
		return data, nil
	}

	full := append([]byte(nil), data...)
	for {
		next, err := mc.readPacket()
		if err != nil {
			return nil, err
		}
		full = append(full, next...)
		if len(next) != maxPacketSize {
			return full, nil
		}
	}
}

// decodeColumnDefinition parses Protocol::ColumnDefinition41.
func decodeColumnDefinition(data []byte) (*ColumnInformation, error) {
	pos := 0

	n, err := skipLengthEncodedString(data[pos:]) // catalog
	if err != nil {
		return nil, err
	}
	pos += n

	schema, _, n, err := readLengthEncodedString(data[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	table, _, n, err := readLengthEncodedString(data[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	n, err = skipLengthEncodedString(data[pos:]) // org_table
	if err != nil {
		return nil, err
	}
	pos += n

	name, _, n, err := readLengthEncodedString(data[pos:])
	if err != nil {
		return nil, err
	}
	pos += n

	n, err = skipLengthEncodedString(data[pos:]) // org_name
	if err != nil {
		return nil, err
	}
	pos += n

	// length-encoded filler, always 0x0c.
	_, _, n = readLengthEncodedInteger(data[pos:])
	pos += n

	if pos+10 > len(data) {
		return nil, ErrMalformPkt
	}
	pos += 2 // charset
	length := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	typ := fieldType(data[pos])
	pos++
	flags := fieldFlag(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2
	decimals := data[pos]

	return &ColumnInformation{
		Name:     string(name),
		Table:    string(table),
		Schema:   string(schema),
		Type:     typ,
		Length:   length,
		Flags:    flags,
		Decimals: decimals,
	}, nil
}

// decodeRow parses a text-protocol row: one length-encoded string or NULL
// marker per column, per spec.md §4.5.
func decodeRow(data []byte, columns []*ColumnInformation) (Row, error) {
	row := make(Row, len(columns))
	pos := 0
	for i, col := range columns {
		if pos >= len(data) {
			return nil, ErrMalformPkt
		}
		if data[pos] == 0xfb {
			row[i] = Value{Null: true, Column: col}
			pos++
			continue
		}
		val, isNull, n, err := readLengthEncodedString(data[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		row[i] = Value{Raw: val, Null: isNull, Column: col}
	}
	return row, nil
}
