package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single name/value pair of a submitted record.
type Field struct {
	Name  string
	Value string
}

// Fields is the ordered field bag of a record. There is no fixed schema:
// consumers must tolerate missing names via fallback chains.
type Fields []Field

// Get returns the value of the first field with the given name, or "".
func (f Fields) Get(name string) string {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// Has reports whether a field with the given name exists.
func (f Fields) Has(name string) bool {
	for _, fld := range f {
		if fld.Name == name {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the bag as a JSON object whose keys appear in field
// order. Order survives in the byte stream even though JSON objects are
// nominally unordered.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fld.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fld.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the bag, preserving the key
// order of the document.
func (f *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected JSON object, got %v", tok)
	}

	out := Fields{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("fields: non-string key %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("fields: value of %q: %w", key, err)
		}
		out = append(out, Field{Name: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}
