package mysql

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchExecutesInOrderAndClears(t *testing.T) {
	mc, server := newPipeConnection(t)
	mc.connected = true

	queries := []string{"INSERT INTO t VALUES (1)", "INSERT INTO t VALUES (2)"}
	mc.AddToBatch(queries[0])
	mc.AddToBatch(queries[1])

	go func() {
		for i := 0; i < 2; i++ {
			header := make([]byte, 4)
			io.ReadFull(server, header)
			pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
			io.ReadFull(server, make([]byte, pktLen))

			ok := []byte{iOK, byte(i + 1), 0x00, 0x00, 0x00, 0x00, 0x00}
			server.Write(framePacket(ok, 1))
		}
	}()

	results, err := mc.ExecuteBatch()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(1), results[0].AffectedRows)
	assert.Equal(t, uint64(2), results[1].AffectedRows)

	assert.Empty(t, mc.batch)
}

func TestBatchAbortsOnFirstErrorAndStillClears(t *testing.T) {
	mc, server := newPipeConnection(t)
	mc.connected = true

	mc.AddToBatch("INSERT INTO t VALUES (1)")
	mc.AddToBatch("INSERT INTO t VALUES (2)")

	go func() {
		header := make([]byte, 4)
		io.ReadFull(server, header)
		pktLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
		io.ReadFull(server, make([]byte, pktLen))

		errPkt := append([]byte{iERR, 0x01, 0x04, '#'}, "HY000"...)
		errPkt = append(errPkt, "boom"...)
		server.Write(framePacket(errPkt, 1))
	}()

	results, err := mc.ExecuteBatch()
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Empty(t, mc.batch)
}

func TestClearBatch(t *testing.T) {
	mc := &Connection{}
	mc.AddToBatch("SELECT 1")
	mc.ClearBatch()
	assert.Empty(t, mc.batch)
}
