package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type sample struct {
	Name  string `cbor:"name"`
	Valid bool   `cbor:"valid,omitempty"`
}

type sampleV2 struct {
	Name  string `cbor:"name"`
	Valid bool   `cbor:"valid,omitempty"`
	Extra string `cbor:"extra,omitempty"`
}

func TestCodec_RegisteredWithGRPC(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	b, err := Marshal(map[string]int{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnmarshal_IgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(sampleV2{Name: "alice", Valid: true, Extra: "x"})
	require.NoError(t, err)

	var got sample
	require.NoError(t, Unmarshal(data, &got))
	assert.Equal(t, sample{Name: "alice", Valid: true}, got)
}
