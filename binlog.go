package mysql

import "context"

// Binlog dump reader, per spec.md §4.7. Frames are not interpreted here;
// the caller downstream parses MySQL binary-log events.
//
// Design note §9 Open Question 2: the original source accumulates dump
// frames into an unbounded in-memory list. This is reworked as a lazy
// pull-based sequence, grounded on the Listen/NextEvent shape of the
// Brian110-binlog4go reference — the caller controls memory by choosing
// how many frames to pull.

// DumpReader yields raw binlog event frames one at a time via Next, until
// the server sends EOF.
type DumpReader struct {
	mc   *Connection
	done bool
}

// startBinlogDump issues COM_BINLOG_DUMP and returns a DumpReader, per
// spec.md §4.4's binlogDump row. pos is the starting log position;
// filename, if non-empty, requests a specific binlog file.
func (mc *Connection) startBinlogDump(pos uint32, filename string) (*DumpReader, error) {
	if err := mc.checkUsable(); err != nil {
		return nil, err
	}

	pktLen := 4 + 1 + 4 + 2 + 4 + len(filename)
	data, err := mc.buf.takeBuffer(pktLen)
	if err != nil {
		return nil, errBadConnNoWrite
	}

	mc.sequence = 0
	data[4] = comBinlogDump
	data[5] = byte(pos)
	data[6] = byte(pos >> 8)
	data[7] = byte(pos >> 16)
	data[8] = byte(pos >> 24)
	data[9] = 0 // flags
	data[10] = 0
	data[11] = 0 // server id
	data[12] = 0
	data[13] = 0
	data[14] = 0
	copy(data[15:], filename)

	if err := mc.writePacket(data); err != nil {
		return nil, err
	}

	return &DumpReader{mc: mc}, nil
}

// Next returns the next raw event frame, or (nil, nil) once the stream has
// reached its terminal EOF. A transport failure mid-stream is reported as
// BinlogDumpError, per spec.md §7; the caller restarts the dump, there is
// no recovery within the core. ctx is checked only before each read; a
// read already in progress is not interrupted. Once ctx is done, Next
// returns a BinlogDumpError without reading, and frames still on the wire
// are left unread.
func (d *DumpReader) Next(ctx context.Context) ([]byte, error) {
	if d.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		d.done = true
		return nil, &BinlogDumpError{cause: err}
	}

	data, err := d.mc.readPacket()
	if err != nil {
		d.done = true
		return nil, &BinlogDumpError{cause: err}
	}

	if len(data) > 0 && data[0] == iEOF && len(data) < 9 {
		d.done = true
		return nil, nil
	}
	if len(data) > 0 && data[0] == iERR {
		d.done = true
		decoded, derr := decodeErrorPacket(data)
		if derr != nil {
			return nil, &BinlogDumpError{cause: derr}
		}
		return nil, decoded.asQueryError()
	}

	return data, nil
}

// Done reports whether the stream has reached its terminal EOF or error.
func (d *DumpReader) Done() bool {
	return d.done
}
