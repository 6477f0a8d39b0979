package ports_test

import (
	"testing"

	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := ports.NewID(), ports.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestDocumentRoundTrip(t *testing.T) {
	reg := schema.NewRegistry()
	k := reg.Define("Note").Prop("text", schema.String()).Prop("n", schema.Int()).MustRegister()

	data, err := ports.EncodeDocument(k.MustNew(schema.Values{"text": "hi", "n": 2}))
	require.NoError(t, err)

	obj, err := ports.DecodeDocument(data, reg)
	require.NoError(t, err)
	assert.Equal(t, "hi", obj.MustGet("text"))
	assert.Equal(t, int64(2), obj.MustGet("n"))
}

func TestDecodeDocumentRejectsInvalid(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Define("Note").Prop("n", schema.Int()).MustRegister()

	_, err := ports.DecodeDocument([]byte("!Note\nn: lots\n"), reg)
	assert.ErrorIs(t, err, schema.ErrValidation)

	_, err = ports.DecodeDocument([]byte("!Other\nn: 1\n"), reg)
	assert.ErrorIs(t, err, schema.ErrLookup)

	_, err = ports.EncodeDocument(nil)
	assert.ErrorIs(t, err, schema.ErrArgument)
}
