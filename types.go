package mysql

// Capabilities is a bitset over the capability flags defined by the MySQL
// wire protocol (spec.md §3 "Capability set"). It round-trips to and from
// the 4-byte wire word used in the greeting and the client auth packet.
type Capabilities struct {
	bits capabilityFlag
}

func capabilitiesFromWire(word uint32) Capabilities {
	return Capabilities{bits: capabilityFlag(word)}
}

func (c Capabilities) toWire() uint32 { return uint32(c.bits) }

// Has reports whether the named flag is present.
func (c Capabilities) Has(flag uint32) bool {
	return c.bits&capabilityFlag(flag) != 0
}

// ColumnInformation describes one column of a result set. Built once per
// column at the start of a result set, immutable thereafter, and shared by
// reference with every row in that result set (spec.md §3).
type ColumnInformation struct {
	Name     string
	Table    string
	Schema   string
	Type     fieldType
	Length   uint32
	Flags    fieldFlag
	Decimals byte
}

// Value is one field of one row: the raw server-side textual
// representation plus the originating column's metadata. No type
// coercion is performed by the core (spec.md §1 Out of scope) — that is a
// higher-level collaborator's job.
type Value struct {
	Raw    []byte
	Null   bool
	Column *ColumnInformation
}

// Row is one row of a result set: one Value per column, in column order.
type Row []Value

// QueryResult is the variant result of executeQuery, per spec.md §3.
// Exactly one of Update or ResultSet is populated, discriminated by
// IsResultSet; Warnings is set for both.
type QueryResult struct {
	IsResultSet bool

	// Update fields (Warnings is also set for a result set).
	AffectedRows uint64
	InsertID     uint64
	Warnings     uint16
	Message      string

	// ResultSet fields.
	Columns []*ColumnInformation
	Rows    []Row
}

// packetKind tags the decoded variant of a raw frame, per spec.md §3
// "Typed packet" and design note §9 ("reimplement as a tagged variant").
type packetKind int

const (
	packetOK packetKind = iota
	packetError
	packetEOF
	packetResultSetHeader
	packetLocalInFile
	packetRaw
)

// decodedPacket is the tagged-variant decode of one raw frame's first byte,
// used by code paths (readQueryResponse, readAuthResult) that must
// distinguish OK/Error/EOF/ResultSetHeader/LocalInFile before committing to
// a parse strategy. Column definitions and rows have their own dedicated
// parse functions (decodeColumnDefinition, decodeRow) since they are never
// ambiguous with these marker bytes in context.
type decodedPacket struct {
	kind packetKind

	// packetOK
	affectedRows uint64
	insertID     uint64
	statusFlags  statusFlag
	warnings     uint16

	// packetError
	errNumber  uint16
	errSQLState string
	errMessage string

	// packetEOF
	eofWarnings uint16
	eofStatus   statusFlag

	// packetResultSetHeader
	fieldCount int

	// packetLocalInFile
	filename string

	raw []byte
}
