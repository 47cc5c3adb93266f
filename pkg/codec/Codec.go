package codec

import "github.com/fxamacker/cbor/v2"
import "google.golang.org/grpc/encoding"


//=========================================== CBOR gRPC Codec


/*
	cbor codec for grpc

	rpc messages are plain go structs marshaled with cbor instead of protobuf
	generated types --> the codec registers itself under the "cbor" content
	subtype, the server resolves it from the request content type and clients
	opt in through grpc.CallContentSubtype on dial (see connpool)
*/

const Name = "cbor"

type cborCodec struct {}

func init() {
	encoding.RegisterCodec(cborCodec{})
}

func (cborCodec) Marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) Name() string {
	return Name
}
