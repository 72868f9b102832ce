package mysql

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferReadNextAcrossFills(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		server.Write([]byte("hello"))
		server.Write([]byte(" world"))
	}()

	buf := newBuffer(client)
	got, err := buf.readNext(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = buf.readNext(6)
	require.NoError(t, err)
	assert.Equal(t, " world", string(got))
}

func TestBufferTakeBufferRejectsWhenBusy(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		server.Write([]byte("xy"))
	}()

	buf := newBuffer(client)
	_, err := buf.readNext(1)
	require.NoError(t, err)

	// One byte of "xy" is still unconsumed, so the buffer is busy.
	_, err = buf.takeBuffer(4)
	assert.Equal(t, ErrBusyBuffer, err)

	_, err = buf.readNext(1)
	require.NoError(t, err)

	_, err = buf.takeBuffer(4)
	assert.NoError(t, err)
}
