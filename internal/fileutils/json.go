package fileutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseJSON unmarshals the data in r into v.
// Numbers are kept as json.Number when v holds interface values.
func ParseJSON(r io.Reader, v any) error {
	// Read the entire content of the io.Reader first to check for errors even if valid json is first.
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading from io.Reader: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("couldn't parse JSON: %v", err)
	}
	if dec.More() {
		return fmt.Errorf("couldn't parse JSON: unexpected data after top-level value")
	}
	return nil
}

// IndentJSON returns data re-indented with indent, preserving key order and number text.
func IndentJSON(data []byte, indent string) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", indent); err != nil {
		return nil, fmt.Errorf("couldn't indent JSON: %v", err)
	}
	return out.Bytes(), nil
}
