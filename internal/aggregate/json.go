package aggregate

import (
	"bytes"
	"encoding/json"
)

// marshal encodes v compactly without HTML escaping
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// quote renders s as a JSON string literal
func quote(s string) string {
	raw, err := marshal(s)
	if err != nil {
		// strings always encode
		return `""`
	}
	return string(raw)
}
