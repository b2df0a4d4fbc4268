package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const (
	codecNameJSON            = "json"
	codecNameJSONCharsetUTF8 = "json; charset=utf-8"
)

// Codec marshals plain structs with encoding/json. It registers under
// Connect's "json" name, so it serves application/json requests.
type Codec struct {
	name string
}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (c Codec) Name() string {
	if c.name == "" {
		return codecNameJSON
	}
	return c.name
}

// Marshal implements connect.Codec.
func (c Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (c Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

// HandlerOptions returns the options every iDine handler is built with.
func HandlerOptions(opts ...connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(Codec{}),
		connect.WithCodec(Codec{name: codecNameJSONCharsetUTF8}),
	}, opts...)
}
