package pubnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestProtoCodec_RoundTrip(t *testing.T) {
	c := Proto()

	in := wrapperspb.String("hello")
	data, err := c.Marshal(in)
	require.NoError(t, err)

	out := &wrapperspb.StringValue{}
	require.NoError(t, c.Unmarshal(data, out))
	assert.Equal(t, "hello", out.GetValue())
}

func TestProtoCodec_MalformedBytes(t *testing.T) {
	c := Proto()

	out := &wrapperspb.StringValue{}
	err := c.Unmarshal([]byte{0xFF, 0xFF}, out)
	assert.Error(t, err)
}

func TestProtoCodec_RejectsNonProtoValues(t *testing.T) {
	c := Proto()

	_, err := c.Marshal(struct{ Name string }{Name: "x"})
	assert.Error(t, err)

	var v struct{ Name string }
	assert.Error(t, c.Unmarshal([]byte{}, &v))
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	c := JSON()

	type event struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	data, err := c.Marshal(event{Name: "click", Count: 42})
	require.NoError(t, err)

	var out event
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, event{Name: "click", Count: 42}, out)
}

func TestJSONCodec_MalformedBytes(t *testing.T) {
	c := JSON()

	var out map[string]any
	assert.Error(t, c.Unmarshal([]byte("not json"), &out))
	assert.Error(t, c.Unmarshal([]byte{0xFF, 0xFF}, &out))
}
