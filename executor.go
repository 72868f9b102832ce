package mysql

// Command executor, per spec.md §4.4: each operation is synchronous and
// strictly request/response, resetting the sequence counter before
// sending. These methods are the exposed operations of spec.md §6.

// ExecuteQuery sends a COM_QUERY and decodes whichever of OK / Error /
// ResultSetHeader comes back, per spec.md §4.4's query row. A LOCAL
// INFILE request (first reply byte 0xFB) with no accompanying file stream
// is a ProtocolError; use ExecuteQueryWithFile for statements expected to
// trigger it.
func (mc *Connection) ExecuteQuery(query string) (*QueryResult, error) {
	return mc.ExecuteQueryWithFile(query, nil)
}

// ExecuteQueryWithFile is ExecuteQuery's variant for statements expected
// to trigger LOCAL INFILE, per spec.md §6
// "executeQuery(query, fileStream)". file may be nil for an ordinary
// query.
func (mc *Connection) ExecuteQueryWithFile(query string, file localInfileSource) (*QueryResult, error) {
	if err := mc.checkUsable(); err != nil {
		return nil, err
	}

	if err := mc.writeCommandPacketStr(comQuery, query); err != nil {
		return nil, err
	}

	return mc.readQueryResponse(file)
}

// readQueryResponse dispatches on the first reply to a command that may
// yield OK / Error / ResultSetHeader / LocalInFile.
func (mc *Connection) readQueryResponse(file localInfileSource) (*QueryResult, error) {
	data, err := mc.readPacket()
	if err != nil {
		return nil, err
	}

	decoded, err := decodePacket(data)
	if err != nil {
		mc.poison()
		return nil, newProtocolError("malformed response: %v", err)
	}

	switch decoded.kind {
	case packetOK:
		return &QueryResult{
			AffectedRows: decoded.affectedRows,
			InsertID:     decoded.insertID,
			Warnings:     decoded.warnings,
			Message:      string(decoded.raw),
		}, nil

	case packetError:
		return nil, decoded.asQueryError()

	case packetLocalInFile:
		if file == nil {
			mc.poison()
			return nil, newProtocolError("server requested LOCAL INFILE %q but no file stream was supplied", decoded.filename)
		}
		return mc.uploadLocalInFile(file)

	case packetResultSetHeader:
		return mc.readResultSet(decoded.fieldCount)

	default:
		mc.poison()
		return nil, newProtocolError("unexpected packet kind in query response")
	}
}

// Ping sends COM_PING, per spec.md §4.4.
func (mc *Connection) Ping() (bool, error) {
	if err := mc.checkUsable(); err != nil {
		return false, err
	}

	if err := mc.writeCommandPacket(comPing); err != nil {
		return false, err
	}

	data, err := mc.readPacket()
	if err != nil {
		return false, err
	}
	decoded, err := decodePacket(data)
	if err != nil {
		mc.poison()
		return false, newProtocolError("malformed ping response: %v", err)
	}
	switch decoded.kind {
	case packetOK:
		return true, nil
	case packetError:
		return false, decoded.asQueryError()
	default:
		mc.poison()
		return false, newProtocolError("unexpected packet kind in ping response")
	}
}

// SelectDB sends COM_INIT_DB, per spec.md §4.4.
func (mc *Connection) SelectDB(name string) error {
	if err := mc.checkUsable(); err != nil {
		return err
	}

	if err := mc.writeCommandPacketStr(comInitDB, name); err != nil {
		return err
	}

	data, err := mc.readPacket()
	if err != nil {
		return err
	}
	decoded, err := decodePacket(data)
	if err != nil {
		mc.poison()
		return newProtocolError("malformed select-db response: %v", err)
	}
	switch decoded.kind {
	case packetOK:
		mc.database = name
		return nil
	case packetError:
		return decoded.asQueryError()
	default:
		mc.poison()
		return newProtocolError("unexpected packet kind in select-db response")
	}
}

// StartBinlogDump issues COM_BINLOG_DUMP and returns a DumpReader, per
// spec.md §6 "startBinlogDump(pos, filename)".
func (mc *Connection) StartBinlogDump(pos uint32, filename string) (*DumpReader, error) {
	return mc.startBinlogDump(pos, filename)
}

// GetServerVariable issues SELECT @@name, per spec.md §6.
func (mc *Connection) GetServerVariable(name string) (string, error) {
	return mc.getServerVariable(name)
}

// DatabaseType parses the server version string to tag the server
// family, per spec.md §6.
func (mc *Connection) DatabaseType() string {
	return mc.getDatabaseType()
}

// AddToBatch appends a query to the pending batch, per spec.md §4.8.
func (mc *Connection) AddToBatch(query string) {
	mc.addToBatch(query)
}

// ExecuteBatch drains the pending batch, per spec.md §4.8.
func (mc *Connection) ExecuteBatch() ([]*QueryResult, error) {
	return mc.executeBatch()
}

// ClearBatch empties the pending batch without executing it.
func (mc *Connection) ClearBatch() {
	mc.clearBatch()
}

// Transactional helpers, per spec.md §4.4: "realized by issuing the
// corresponding SQL text through query; they have no protocol-level
// primitive."

func (mc *Connection) Commit() error {
	_, err := mc.ExecuteQuery("COMMIT")
	return err
}

func (mc *Connection) Rollback() error {
	_, err := mc.ExecuteQuery("ROLLBACK")
	return err
}

func (mc *Connection) RollbackToSavepoint(name string) error {
	_, err := mc.ExecuteQuery("ROLLBACK TO SAVEPOINT " + name)
	return err
}

func (mc *Connection) SetSavepoint(name string) error {
	_, err := mc.ExecuteQuery("SAVEPOINT " + name)
	return err
}

func (mc *Connection) ReleaseSavepoint(name string) error {
	_, err := mc.ExecuteQuery("RELEASE SAVEPOINT " + name)
	return err
}
