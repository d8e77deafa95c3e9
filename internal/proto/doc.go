// Package proto holds the message types and gRPC service descriptors of the
// AuthService and ProfileService. Messages are plain structs carried with the
// CBOR codec; clients select it per call, servers pick it from the request's
// content-subtype.
//
// There is no .proto source and no protobuf encoding: peers must speak the
// cbor content-subtype, so protobuf clients of the original services cannot
// call these endpoints.
package proto

import (
	"google.golang.org/grpc"

	"github.com/dmitrijs2005/gophauth/internal/codec"
)

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}
