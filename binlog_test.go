package mysql

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpReaderYieldsFramesUntilEOF(t *testing.T) {
	mc, server := newPipeConnection(t)
	mc.connected = true

	go func() {
		header := make([]byte, 4)
		io.ReadFull(server, header)
		pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
		io.ReadFull(server, make([]byte, pktLen))

		server.Write(framePacket([]byte{0x01, 'e', 'v', 'e', 'n', 't'}, 1))
		server.Write(framePacket([]byte{0x02, 'm', 'o', 'r', 'e'}, 2))
		server.Write(framePacket([]byte{iEOF, 0x00, 0x00, 0x00, 0x00}, 3))
	}()

	dump, err := mc.StartBinlogDump(4, "")
	require.NoError(t, err)

	frame1, err := dump.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 'e', 'v', 'e', 'n', 't'}, frame1)
	assert.False(t, dump.Done())

	frame2, err := dump.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 'm', 'o', 'r', 'e'}, frame2)

	frame3, err := dump.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, frame3)
	assert.True(t, dump.Done())
}
