package brcode

import (
	"fmt"
	"strconv"
	"strings"
)

// maxFieldLength is the capacity of the two-digit length prefix.
const maxFieldLength = 99

// field encodes one ID+LEN+VALUE element. Values beyond the prefix
// capacity are cut on a rune boundary.
func field(id, value string) string {
	value = truncateBytes(value, maxFieldLength)
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// Field is one decoded TLV element.
type Field struct {
	ID    string
	Value string
}

// Children decodes the value of a composite field.
func (f Field) Children() ([]Field, error) {
	return Parse(f.Value)
}

// Fields is an ordered TLV sequence.
type Fields []Field

// Get returns the value of the first field with the given id.
func (fs Fields) Get(id string) (string, bool) {
	for _, f := range fs {
		if f.ID == id {
			return f.Value, true
		}
	}
	return "", false
}

// Parse splits a TLV string into its top-level fields.
func Parse(data string) (Fields, error) {
	var fields Fields
	for pos := 0; pos < len(data); {
		if len(data)-pos < 4 {
			return nil, fmt.Errorf("truncated field header at offset %d", pos)
		}
		id := data[pos : pos+2]
		n, err := strconv.Atoi(data[pos+2 : pos+4])
		if err != nil || strings.ContainsAny(data[pos+2:pos+4], "+-") {
			return nil, fmt.Errorf("invalid length for field %s at offset %d", id, pos)
		}
		start := pos + 4
		if start+n > len(data) {
			return nil, fmt.Errorf("field %s overruns payload", id)
		}
		fields = append(fields, Field{ID: id, Value: data[start : start+n]})
		pos = start + n
	}
	return fields, nil
}
