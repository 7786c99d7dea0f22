package runs

import (
	"encoding/json"

	"github.com/perfgo/profstore/model"
)

// Codec converts run payloads to and from their on-disk byte encoding.
type Codec interface {
	Encode(p model.Payload) ([]byte, error)
	Decode(data []byte) (model.Payload, error)
}

// JSONCodec stores payloads as JSON. Round-trips arbitrary trees of
// string-keyed mappings, sequences, strings and numbers; numbers come
// back as float64.
type JSONCodec struct{}

func (JSONCodec) Encode(p model.Payload) ([]byte, error) {
	return json.Marshal(p)
}

func (JSONCodec) Decode(data []byte) (model.Payload, error) {
	var p model.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
