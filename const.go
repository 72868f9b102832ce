// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysql

// Protocol-level constants. Grounded on the capability/command/field-type
// enumerations used across the retrieval pack (Philio-GoMySQL, hsyan2008
// sunder) since the teacher repo's own const.go was not part of the
// retrieved file set.

const (
	minProtocolVersion = 10
	maxPacketSize       = 1<<24 - 1 // 16MiB - 1
	defaultAuthPlugin   = "mysql_native_password"
)

// packet indicator bytes (first byte of the payload)
const (
	iOK          byte = 0x00
	iAuthMoreData byte = 0x01
	iLocalInFile byte = 0xfb
	iEOF         byte = 0xfe
	iERR         byte = 0xff
)

// commands, per http://dev.mysql.com/doc/internals/en/text-protocol.html
const (
	comQuit       byte = 0x01
	comInitDB     byte = 0x02
	comQuery      byte = 0x03
	comPing       byte = 0x0e
	comBinlogDump byte = 0x12
)

// client capability flags. Only the subset spec.md §3 names is ever set by
// this client; the type is a plain bitset over the full 32-bit wire word so
// that flags signaled by the server but not named in spec.md still round
// trip through Capabilities.
type capabilityFlag uint32

const (
	clientLongPassword   capabilityFlag = 1 << 0
	clientFoundRows      capabilityFlag = 1 << 1
	clientLongFlag       capabilityFlag = 1 << 2
	clientConnectWithDB  capabilityFlag = 1 << 3
	clientNoSchema       capabilityFlag = 1 << 4
	clientCompress       capabilityFlag = 1 << 5
	clientODBC           capabilityFlag = 1 << 6
	clientLocalFiles     capabilityFlag = 1 << 7
	clientIgnoreSpace    capabilityFlag = 1 << 8
	clientProtocol41     capabilityFlag = 1 << 9
	clientInteractive    capabilityFlag = 1 << 10
	clientSSL            capabilityFlag = 1 << 11
	clientIgnoreSigpipe  capabilityFlag = 1 << 12
	clientTransactions   capabilityFlag = 1 << 13
	clientReserved       capabilityFlag = 1 << 14
	clientSecureConn     capabilityFlag = 1 << 15
	clientMultiStatements capabilityFlag = 1 << 16
	clientMultiResults   capabilityFlag = 1 << 17
	clientPluginAuth     capabilityFlag = 1 << 19
	clientPluginAuthLenEncClientData capabilityFlag = 1 << 21
)

// the fixed set of capabilities this client always proposes, per spec.md §4.3 step 3.
const baseClientCapabilities = clientLongPassword |
	clientIgnoreSpace |
	clientProtocol41 |
	clientTransactions |
	clientSecureConn |
	clientLocalFiles

// status flags, from the OK/EOF packet's 2-byte status word.
type statusFlag uint16

const (
	statusMoreResultsExists statusFlag = 0x0008
)

// column wire types, per Protocol::ColumnType.
type fieldType byte

const (
	fieldTypeDecimal  fieldType = 0x00
	fieldTypeTiny     fieldType = 0x01
	fieldTypeShort    fieldType = 0x02
	fieldTypeLong     fieldType = 0x03
	fieldTypeFloat    fieldType = 0x04
	fieldTypeDouble   fieldType = 0x05
	fieldTypeNULL     fieldType = 0x06
	fieldTypeTimestamp fieldType = 0x07
	fieldTypeLongLong fieldType = 0x08
	fieldTypeInt24    fieldType = 0x09
	fieldTypeDate     fieldType = 0x0a
	fieldTypeTime     fieldType = 0x0b
	fieldTypeDateTime fieldType = 0x0c
	fieldTypeYear     fieldType = 0x0d
	fieldTypeNewDate  fieldType = 0x0e
	fieldTypeVarChar  fieldType = 0x0f
	fieldTypeBit      fieldType = 0x10
	fieldTypeJSON     fieldType = 0xf5
	fieldTypeNewDecimal fieldType = 0xf6
	fieldTypeEnum     fieldType = 0xf7
	fieldTypeSet      fieldType = 0xf8
	fieldTypeTinyBLOB fieldType = 0xf9
	fieldTypeMediumBLOB fieldType = 0xfa
	fieldTypeLongBLOB fieldType = 0xfb
	fieldTypeBLOB     fieldType = 0xfc
	fieldTypeVarString fieldType = 0xfd
	fieldTypeString   fieldType = 0xfe
	fieldTypeGeometry fieldType = 0xff
)

// column flags, per Protocol::ColumnDefinition41.
type fieldFlag uint16

const (
	flagNotNULL     fieldFlag = 1 << 0
	flagPriKey      fieldFlag = 1 << 1
	flagUniqueKey   fieldFlag = 1 << 2
	flagMultipleKey fieldFlag = 1 << 3
	flagBlob        fieldFlag = 1 << 4
	flagUnsigned    fieldFlag = 1 << 5
	flagZeroFill    fieldFlag = 1 << 6
	flagBinary      fieldFlag = 1 << 7
)

// charset = utf8_general_ci. Kept as the single entry this client ever
// sends; a full collation table is out of scope (no collation negotiation
// is described in spec.md §4.3 beyond the fixed charset byte).
const defaultCollationID = 33
