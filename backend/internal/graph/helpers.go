package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// StringAt returns the string stored at a column position. ok is false when
// the column is absent, null, or holds a non-string value.
func StringAt(record *neo4j.Record, index int) (string, bool) {
	if record == nil || index < 0 || index >= len(record.Values) {
		return "", false
	}
	str, ok := record.Values[index].(string)
	return str, ok
}

// NewRecord builds a record with positional values. Keys are optional.
func NewRecord(keys []string, values ...any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}
