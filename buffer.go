// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysql

import (
	"io"
	"net"
	"time"
)

const defaultBufSize = 4096

// buffer is used for both reading and writing. This is possible because
// communication on a connection is always synchronous (spec.md §5: exactly
// one command in flight at a time) — we never read and write at once on
// the same socket. Sized for this specific use case rather than general
// purpose, the way bufio.Reader/Writer is.
type buffer struct {
	buf     []byte // length and capacity are always equal
	nc      net.Conn
	idx     int
	length  int
	timeout time.Duration
}

func newBuffer(nc net.Conn) buffer {
	return buffer{buf: make([]byte, defaultBufSize), nc: nc}
}

// fill reads into the buffer until at least need bytes are available.
func (b *buffer) fill(need int) error {
	n := b.length

	if need > len(b.buf) {
		// Round up to the next multiple of the default size.
		dest := make([]byte, ((need/defaultBufSize)+1)*defaultBufSize)
		if n > 0 {
			copy(dest[:n], b.buf[b.idx:])
		}
		b.buf = dest
		b.idx = 0
	} else if n > 0 {
		copy(b.buf[:n], b.buf[b.idx:])
	}
	b.idx = 0

	for {
		if b.timeout > 0 {
			if err := b.nc.SetReadDeadline(time.Now().Add(b.timeout)); err != nil {
				return err
			}
		}

		nn, err := b.nc.Read(b.buf[n:])
		n += nn

		switch err {
		case nil:
			if n < need {
				continue
			}
			b.length = n
			return nil

		case io.EOF:
			if n >= need {
				b.length = n
				return nil
			}
			return io.ErrUnexpectedEOF

		default:
			return err
		}
	}
}

// readNext returns the next N bytes from the buffer. The returned slice is
// only valid until the next read.
func (b *buffer) readNext(need int) ([]byte, error) {
	if b.length < need {
		if err := b.fill(need); err != nil {
			return nil, err
		}
	}

	offset := b.idx
	b.idx += need
	b.length -= need
	return b.buf[offset:b.idx], nil
}

// takeBuffer returns a buffer with the requested size. If possible, a
// slice of the existing buffer is returned; otherwise a bigger one is
// made. Only one buffer (total) can be in use at a time.
func (b *buffer) takeBuffer(length int) ([]byte, error) {
	if b.length > 0 {
		return nil, ErrBusyBuffer
	}

	if length <= cap(b.buf) {
		return b.buf[:length], nil
	}

	if length < maxPacketSize {
		b.buf = make([]byte, length)
		return b.buf, nil
	}

	// Larger than we want to store permanently.
	return make([]byte, length), nil
}

// takeSmallBuffer is a shortcut usable when length is known to be smaller
// than defaultBufSize. Only one buffer (total) can be in use at a time.
func (b *buffer) takeSmallBuffer(length int) ([]byte, error) {
	if b.length > 0 {
		return nil, ErrBusyBuffer
	}
	return b.buf[:length], nil
}
