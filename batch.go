package mysql

// Batch queue, per spec.md §4.8: an ordered list of pending query strings,
// drained sequentially by executeBatch. No cross-thread sharing is
// required (spec.md §5; design note §9 "Batch list").

// addToBatch appends a query to the pending batch.
func (mc *Connection) addToBatch(query string) {
	mc.batch = append(mc.batch, query)
}

// clearBatch empties the pending batch without executing it.
func (mc *Connection) clearBatch() {
	mc.batch = nil
}

// executeBatch issues each pending query in order, collecting one result
// per entry. Failure of any one query aborts the batch and propagates its
// QueryError; already-produced results are discarded. The queue is always
// cleared afterwards, regardless of success, per spec.md §4.8.
func (mc *Connection) executeBatch() ([]*QueryResult, error) {
	pending := mc.batch
	mc.batch = nil

	results := make([]*QueryResult, 0, len(pending))
	for _, q := range pending {
		res, err := mc.ExecuteQuery(q)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
