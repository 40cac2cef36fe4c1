package lendingpb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype gRPC negotiates for this service's
// calls ("application/grpc+json" on the wire), registered below so both
// client and server marshal through encoding/json instead of the default
// proto codec. Every client call in this package sets
// grpc.CallContentSubtype(codecName) to force the negotiation.
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec over plain
// Go structs tagged with "json", letting this service run on a real gRPC
// server and client without any protoc-generated message types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
