package fetch

import "github.com/goccy/go-json"

// Codec is the JSON collaborator: it turns values into UTF-8 bytes
// and back. Implementations must handle arbitrary nested maps,
// slices and scalars.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// goccyCodec is the default Codec.
type goccyCodec struct{}

func (goccyCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (goccyCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
