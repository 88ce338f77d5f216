package ledgerrpc

import "encoding/json"

// jsonCodec marshals gRPC messages as JSON instead of protobuf wire format.
// The ledger node this client talks to is a narrow internal service with no
// generated protobuf stubs in this tree; JSON keeps the request/response
// shapes plain Go structs while still riding real gRPC framing, flow
// control, and transport security.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return "json" }
