package mysql

import (
	"bytes"
	"strings"
)

// handshake drives greeting -> capability negotiation -> authentication
// response -> result, per spec.md §4.3. It is called once, from Connect,
// before the connection is marked usable.
func (mc *Connection) handshake() error {
	data, err := mc.readPacket()
	if err != nil {
		return err
	}

	if err := mc.readGreeting(data); err != nil {
		return err
	}

	// Design note §9 Open Question 3: explicitly validate CLIENT_PROTOCOL_41
	// before computing the native-password hash rather than assuming it.
	if !mc.capabilities.Has(uint32(clientProtocol41)) {
		return ErrOldProtocol
	}

	clientFlags := baseClientCapabilities
	includeDB := mc.database != "" && !mc.config.CreateDB
	if includeDB {
		clientFlags |= clientConnectWithDB
	}

	authResp := scramblePassword(mc.salt, mc.password)

	if err := mc.writeAuthPacket(clientFlags, authResp, includeDB); err != nil {
		return err
	}

	return mc.readAuthResult()
}

// readGreeting parses the fixed-layout initial handshake packet, per
// spec.md §4.2, and populates serverVersion, connectionID, salt, and
// capabilities.
func (mc *Connection) readGreeting(data []byte) error {
	if len(data) < 1 || data[0] < minProtocolVersion {
		return newProtocolError("unsupported protocol version %d", data[0])
	}

	pos := 1

	end := bytes.IndexByte(data[pos:], 0x00)
	if end < 0 {
		return ErrMalformPkt
	}
	mc.serverVersion = string(data[pos : pos+end])
	pos += end + 1

	if pos+4 > len(data) {
		return ErrMalformPkt
	}
	mc.connectionID = uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16 | uint32(data[pos+3])<<24
	pos += 4

	if pos+8 > len(data) {
		return ErrMalformPkt
	}
	salt := make([]byte, 0, 20)
	salt = append(salt, data[pos:pos+8]...)
	pos += 8 + 1 // skip filler

	if pos+2 > len(data) {
		return ErrMalformPkt
	}
	capLow := uint32(data[pos]) | uint32(data[pos+1])<<8
	pos += 2

	if pos+1 > len(data) {
		return ErrMalformPkt
	}
	pos += 1 // charset
	if pos+2 > len(data) {
		return ErrMalformPkt
	}
	pos += 2 // status flags

	if pos+2 > len(data) {
		return ErrMalformPkt
	}
	capHigh := uint32(data[pos]) | uint32(data[pos+1])<<8
	pos += 2

	if pos+1 > len(data) {
		return ErrMalformPkt
	}
	pos += 1 // auth-data length
	pos += 10 // reserved

	if pos < len(data) {
		end = bytes.IndexByte(data[pos:], 0x00)
		if end < 0 {
			end = len(data) - pos
		}
		salt = append(salt, data[pos:pos+end]...)
	}

	mc.capabilities = capabilitiesFromWire(capLow | capHigh<<16)
	mc.salt = salt
	return nil
}

// writeAuthPacket encodes the client auth response, per spec.md §4.3
// step 5.
func (mc *Connection) writeAuthPacket(clientFlags capabilityFlag, authResp []byte, includeDB bool) error {
	pktLen := 4 + 4 + 1 + 23 + len(mc.user) + 1 + 1 + len(authResp)
	if includeDB {
		pktLen += len(mc.database) + 1
	}

	data, err := mc.buf.takeBuffer(pktLen + 4)
	if err != nil {
		return errBadConnNoWrite
	}

	flagsWire := Capabilities{bits: clientFlags}.toWire()

	pos := 4
	data[pos] = byte(flagsWire)
	data[pos+1] = byte(flagsWire >> 8)
	data[pos+2] = byte(flagsWire >> 16)
	data[pos+3] = byte(flagsWire >> 24)
	pos += 4

	// max packet size, fixed at 16MiB per spec.md §4.3 step 5.
	data[pos] = 0x00
	data[pos+1] = 0x00
	data[pos+2] = 0x00
	data[pos+3] = 0x01
	pos += 4

	data[pos] = defaultCollationID
	pos++

	for i := 0; i < 23; i++ {
		data[pos+i] = 0
	}
	pos += 23

	pos += copy(data[pos:], mc.user)
	data[pos] = 0x00
	pos++

	data[pos] = byte(len(authResp))
	pos++
	pos += copy(data[pos:], authResp)

	if includeDB {
		pos += copy(data[pos:], mc.database)
		data[pos] = 0x00
		pos++
	}

	mc.sequence = 1 // the greeting consumed sequence 0
	return mc.writePacket(data[:pos])
}

// readAuthResult reads the server's verdict on the auth packet, per
// spec.md §4.3 step 6.
func (mc *Connection) readAuthResult() error {
	data, err := mc.readPacket()
	if err != nil {
		return err
	}

	decoded, err := decodePacket(data)
	if err != nil {
		return newProtocolError("malformed auth result: %v", err)
	}

	switch decoded.kind {
	case packetOK:
		return nil
	case packetError:
		return decoded.asQueryError()
	default:
		return newProtocolError("unexpected packet (first byte 0x%02x) in auth result", data[0])
	}
}

// getServerVariable issues SELECT @@name and returns its single value, per
// spec.md §6.
func (mc *Connection) getServerVariable(name string) (string, error) {
	res, err := mc.ExecuteQuery("SELECT @@" + strings.TrimPrefix(name, "@@"))
	if err != nil {
		return "", err
	}
	if !res.IsResultSet || len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return "", &ColumnLookupError{Name: name}
	}
	v := res.Rows[0][0]
	if v.Null {
		return "", nil
	}
	return string(v.Raw), nil
}
