package netx

import (
	"github.com/dmitrijs2005/gophauth/internal/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial creates a lazily connecting client for address. Calls default to
// the CBOR codec. Transport security is out of scope; the channel is
// plaintext.
func Dial(address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)),
	}
	return grpc.NewClient(address, append(base, opts...)...)
}
