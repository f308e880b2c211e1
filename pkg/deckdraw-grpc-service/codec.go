package deckdraw_grpc_service

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec lets the service exchange plain structs over gRPC without a
// compiled protobuf schema. Clients select it with
// grpc.CallContentSubtype(JSONCodecName).
type jsonCodec struct{}

const JSONCodecName = "json"

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return JSONCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
