package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildColumnDefinition(schema, table, name string, typ fieldType, length uint32, flags fieldFlag, decimals byte) []byte {
	var b []byte
	b = appendLengthEncodedInteger(b, 3) // catalog "def"
	b = append(b, "def"...)
	b = appendLengthEncodedInteger(b, uint64(len(schema)))
	b = append(b, schema...)
	b = appendLengthEncodedInteger(b, uint64(len(table)))
	b = append(b, table...)
	b = appendLengthEncodedInteger(b, uint64(len(table))) // org_table
	b = append(b, table...)
	b = appendLengthEncodedInteger(b, uint64(len(name)))
	b = append(b, name...)
	b = appendLengthEncodedInteger(b, uint64(len(name))) // org_name
	b = append(b, name...)
	b = appendLengthEncodedInteger(b, 0x0c) // filler
	b = append(b, 0x21, 0x00)                // charset
	b = append(b, byte(length), byte(length>>8), byte(length>>16), byte(length>>24))
	b = append(b, byte(typ))
	b = append(b, byte(flags), byte(flags>>8))
	b = append(b, decimals)
	b = append(b, 0x00, 0x00) // filler
	return b
}

func TestDecodeColumnDefinition(t *testing.T) {
	data := buildColumnDefinition("mydb", "t", "a", fieldTypeVarString, 255, flagNotNULL, 0)
	col, err := decodeColumnDefinition(data)
	require.NoError(t, err)
	assert.Equal(t, "a", col.Name)
	assert.Equal(t, "t", col.Table)
	assert.Equal(t, "mydb", col.Schema)
	assert.Equal(t, fieldTypeVarString, col.Type)
	assert.Equal(t, uint32(255), col.Length)
	assert.Equal(t, flagNotNULL, col.Flags)
}

func TestDecodeRowWithNull(t *testing.T) {
	columns := []*ColumnInformation{
		{Name: "a"}, {Name: "b"},
	}

	var data []byte
	data = appendLengthEncodedInteger(data, 1)
	data = append(data, "1"...)
	data = append(data, 0xfb) // NULL

	row, err := decodeRow(data, columns)
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, "1", string(row[0].Raw))
	assert.False(t, row[0].Null)
	assert.True(t, row[1].Null)
	assert.Same(t, columns[1], row[1].Column)
}
