// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysql

import (
	"encoding/binary"
)

// Packets documentation:
// http://dev.mysql.com/doc/internals/en/client-server-protocol.html
//
// This file is the framer + packet codec of spec.md §4.1/§4.2: it owns the
// sequence counter, reads/writes length-prefixed frames, and decodes the
// polymorphic marker bytes (OK/Error/EOF/ResultSetHeader/LocalInFile).
// Column definitions and rows are decoded in resultset.go since their
// layout never collides with these marker bytes in context.

// readPacket reads one physical frame: a 4-byte header (3-byte little
// endian length, 1-byte sequence number) followed by exactly that many
// payload bytes. It does NOT concatenate multi-packet rows — per spec.md
// §4.1, that's the result-set reader's job. A short read at any point is a
// TransportError.
func (mc *Connection) readPacket() ([]byte, error) {
	header, err := mc.buf.readNext(4)
	if err != nil {
		mc.poison()
		return nil, newTransportError(err)
	}

	pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)

	if header[3] != mc.sequence {
		mc.poison()
		if header[3] > mc.sequence {
			return nil, errPktSyncMul
		}
		return nil, errPktSync
	}
	mc.sequence++

	data, err := mc.buf.readNext(pktLen)
	if err != nil {
		mc.poison()
		return nil, newTransportError(err)
	}

	// Copy out of the buffer's backing array: the caller may hold onto
	// this slice past the next readPacket call (e.g. while concatenating a
	// multi-packet row).
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// writePacket writes one physical frame, splitting into maxPacketSize
// chunks if necessary (spec.md §4.1). data must have 4 bytes of header
// room preceding the payload; pktLen is payload length, i.e. len(data)-4.
func (mc *Connection) writePacket(data []byte) error {
	pktLen := len(data) - 4
	if pktLen > mc.maxAllowedPacket {
		return newProtocolError("packet for query is too large (%d bytes); adjust max_allowed_packet on the server", pktLen)
	}
	totalLen := pktLen

	for {
		var size int
		if pktLen >= maxPacketSize {
			data[0] = 0xff
			data[1] = 0xff
			data[2] = 0xff
			size = maxPacketSize
		} else {
			data[0] = byte(pktLen)
			data[1] = byte(pktLen >> 8)
			data[2] = byte(pktLen >> 16)
			size = pktLen
		}
		data[3] = mc.sequence

		n, err := mc.netConn.Write(data[:4+size])
		if err == nil && n == 4+size {
			mc.sequence++
			if size != maxPacketSize {
				return nil
			}
			pktLen -= size
			data = data[size:]
			continue
		}

		if err == nil { // n != len(data)
			mc.poison()
			return newTransportError(ErrMalformPkt)
		}
		if n == 0 && pktLen == totalLen {
			// Nothing was written yet on the very first iteration.
			return errBadConnNoWrite
		}
		mc.poison()
		return newTransportError(err)
	}
}

// writeCommandPacket resets the sequence counter (spec.md §4.1: "reset at
// the start of each client-initiated command exchange") and sends a
// single command byte with no argument.
func (mc *Connection) writeCommandPacket(command byte) error {
	mc.sequence = 0

	data, err := mc.buf.takeSmallBuffer(4 + 1)
	if err != nil {
		errLog.Print(err)
		return errBadConnNoWrite
	}
	data[4] = command
	return mc.writePacket(data)
}

func (mc *Connection) writeCommandPacketStr(command byte, arg string) error {
	mc.sequence = 0

	pktLen := 1 + len(arg)
	data, err := mc.buf.takeBuffer(pktLen + 4)
	if err != nil {
		errLog.Print(err)
		return errBadConnNoWrite
	}
	data[4] = command
	copy(data[5:], arg)
	return mc.writePacket(data)
}

// decodePacket dispatches on the first payload byte, per spec.md §4.2.
// Only OK/Error/EOF/ResultSetHeader/LocalInFile are recognized here; a
// payload that is none of the marker shapes and not exactly one
// length-encoded integer is rejected with ErrMalformPkt. packetRaw is never
// produced; the binlog dump reader inspects its frames without calling this.
func decodePacket(data []byte) (decodedPacket, error) {
	if len(data) == 0 {
		return decodedPacket{}, ErrMalformPkt
	}

	switch {
	case data[0] == iOK && len(data) >= 7:
		return decodeOKPacket(data)

	case data[0] == iERR:
		return decodeErrorPacket(data)

	case data[0] == iEOF && len(data) < 9:
		return decodeEOFPacket(data), nil

	case data[0] == iLocalInFile:
		return decodedPacket{kind: packetLocalInFile, filename: string(data[1:])}, nil

	default:
		num, _, n := readLengthEncodedInteger(data)
		if n != len(data) {
			return decodedPacket{}, ErrMalformPkt
		}
		return decodedPacket{kind: packetResultSetHeader, fieldCount: int(num)}, nil
	}
}

func decodeOKPacket(data []byte) (decodedPacket, error) {
	var n, m int
	affectedRows, _, n := readLengthEncodedInteger(data[1:])
	insertID, _, m := readLengthEncodedInteger(data[1+n:])
	pos := 1 + n + m
	if pos+2 > len(data) {
		return decodedPacket{}, ErrMalformPkt
	}
	status := readStatus(data[pos : pos+2])
	pos += 2

	var warnings uint16
	var message string
	if pos+2 <= len(data) {
		warnings = binary.LittleEndian.Uint16(data[pos : pos+2])
		pos += 2
	}
	if pos < len(data) {
		msg, _, _, err := readLengthEncodedString(data[pos:])
		if err == nil {
			message = string(msg)
		}
	}

	return decodedPacket{
		kind:         packetOK,
		affectedRows: affectedRows,
		insertID:     insertID,
		statusFlags:  status,
		warnings:     warnings,
		raw:          []byte(message),
	}, nil
}

func decodeErrorPacket(data []byte) (decodedPacket, error) {
	if len(data) < 3 {
		return decodedPacket{}, ErrMalformPkt
	}
	errno := binary.LittleEndian.Uint16(data[1:3])

	pos := 3
	sqlState := ""
	if len(data) > 3 && data[3] == 0x23 && len(data) >= 9 {
		sqlState = string(data[4:9])
		pos = 9
	}

	return decodedPacket{
		kind:        packetError,
		errNumber:   errno,
		errSQLState: sqlState,
		errMessage:  string(data[pos:]),
	}, nil
}

func decodeEOFPacket(data []byte) decodedPacket {
	d := decodedPacket{kind: packetEOF}
	if len(data) == 5 {
		d.eofWarnings = binary.LittleEndian.Uint16(data[1:3])
		d.eofStatus = readStatus(data[3:5])
	}
	return d
}

func readStatus(b []byte) statusFlag {
	return statusFlag(b[0]) | statusFlag(b[1])<<8
}

func (d decodedPacket) asQueryError() *QueryError {
	return &QueryError{Message: d.errMessage, Number: d.errNumber, SQLState: d.errSQLState}
}

/******************************************************************************
*                       Length-encoded int / string                          *
******************************************************************************/

// readLengthEncodedInteger decodes a length-encoded integer per spec.md
// §4.2. Returns the value, whether it was the NULL marker (0xFB, only
// meaningful in row context), and the number of bytes consumed.
func readLengthEncodedInteger(b []byte) (num uint64, isNull bool, n int) {
	if len(b) == 0 {
		return 0, true, 0
	}
	switch b[0] {
	case 0xfb:
		return 0, true, 1
	case 0xfc:
		return uint64(b[1]) | uint64(b[2])<<8, false, 3
	case 0xfd:
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16, false, 4
	case 0xfe:
		return binary.LittleEndian.Uint64(b[1:9]), false, 9
	default:
		return uint64(b[0]), false, 1
	}
}

// readLengthEncodedString decodes a length-encoded string: a
// length-encoded integer followed by that many bytes, or the NULL marker.
func readLengthEncodedString(b []byte) (data []byte, isNull bool, n int, err error) {
	num, isNull, n := readLengthEncodedInteger(b)
	if isNull {
		return nil, true, n, nil
	}
	if n+int(num) > len(b) {
		return nil, false, n, ErrMalformPkt
	}
	return b[n : n+int(num)], false, n + int(num), nil
}

// skipLengthEncodedString returns the number of bytes a length-encoded
// string occupies without allocating its contents.
func skipLengthEncodedString(b []byte) (n int, err error) {
	num, isNull, n := readLengthEncodedInteger(b)
	if isNull {
		return n, nil
	}
	if n+int(num) > len(b) {
		return n, ErrMalformPkt
	}
	return n + int(num), nil
}
