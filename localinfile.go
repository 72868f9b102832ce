package mysql

import "io"

// localInfileSource is the file stream spec.md §6 calls "fileStream" in
// executeQuery(query, fileStream). Any io.Reader satisfies it; the
// uploader never buffers more than one chunk of it in memory, per
// spec.md §4.6.
type localInfileSource = io.Reader

// maxWriteSize is the largest payload uploadLocalInFile puts in one frame.
// It must stay below maxPacketSize: writePacket treats a payload of
// exactly maxPacketSize bytes as the first of a multi-frame message and
// follows it with a zero-length frame marking the message's end — which
// for LOCAL INFILE is indistinguishable from the upload's own EOF marker.
// Capping below the boundary keeps every chunk a standalone frame.
const maxWriteSize = maxPacketSize - 1

// uploadLocalInFile streams file in maxWriteSize chunks and terminates
// with a zero-length packet, per spec.md §4.6. This loops until the file
// is exhausted rather than stopping after the first chunk — design note
// §9 Open Question 1 flags the single-chunk behavior in the original
// source as a bug.
func (mc *Connection) uploadLocalInFile(file localInfileSource) (*QueryResult, error) {
	chunk := make([]byte, 4+maxWriteSize)

	for {
		n, err := io.ReadFull(file, chunk[4:])
		if n > 0 {
			if werr := mc.writePacket(chunk[:4+n]); werr != nil {
				return nil, werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			mc.poison()
			return nil, newTransportError(err)
		}
	}

	// Zero-length terminator packet, per spec.md §4.6 step 3.
	if err := mc.writePacket(chunk[:4]); err != nil {
		return nil, err
	}

	return mc.readQueryResponse(nil)
}
