// Package codec is the wire encoding shared by both services: CBOR with
// Core Deterministic Encoding, registered as a gRPC codec under Name.
package codec

import (
	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
)

// Name is the gRPC content-subtype of the codec ("application/grpc+cbor").
const Name = "cbor"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	// Unknown fields are ignored so either side can grow a message first.
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	encoding.RegisterCodec(Codec{})
}

// Marshal encodes v to CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Codec implements encoding.Codec for gRPC.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error)      { return Marshal(v) }
func (Codec) Unmarshal(data []byte, v any) error { return Unmarshal(data, v) }
func (Codec) Name() string                       { return Name }
