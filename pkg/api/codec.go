// Package api defines the messages exchanged by the Qisst Connect services.
//
// Messages are plain Go structs carried as JSON. JSONCodec replaces Connect's
// default protobuf-JSON codec so handlers and clients can use them directly.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name; requests travel as application/json.
const CodecName = "json"

// JSONCodec is a connect.Codec for plain Go structs.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes data into v. An empty body leaves v at its zero value.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid %T: %w", v, err)
	}
	return nil
}
