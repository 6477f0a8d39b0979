package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/guts/pkg/adapters/memory"
	"github.com/aretw0/guts/pkg/persistence/middleware"
	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userKinds(reg *schema.Registry) *schema.Kind {
	details := reg.Define("Details").
		Prop("address", schema.String()).
		Prop("ssn_number", schema.String()).
		MustRegister()
	return reg.Define("User").
		Prop("username", schema.String()).
		Prop("user_password", schema.String()).
		Prop("pin", schema.Int(schema.Optional())).
		Prop("password_hints", schema.ListOf(schema.String())).
		Prop("details", details.T()).
		MustRegister()
}

func TestRedactMiddleware_Masking(t *testing.T) {
	reg := schema.NewRegistry()
	user := userKinds(reg)
	details, _ := reg.Kind("Details")

	underlying := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{"password", "ssn", "^pin$"})
	require.NoError(t, err)
	store := middleware.Chain(underlying, mw)

	ctx := context.Background()
	obj := user.MustNew(schema.Values{
		"username":       "jdoe",
		"user_password":  "secret123",
		"pin":            1234,
		"password_hints": []any{"pet", "city"},
		"details":        details.MustNew(schema.Values{"address": "123 St", "ssn_number": "999-99-9999"}),
	})

	require.NoError(t, store.Save(ctx, "u1", obj))
	assert.Equal(t, "secret123", obj.MustGet("user_password"), "caller's record must not change")

	stored, err := underlying.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", stored.MustGet("username"))
	assert.Equal(t, middleware.Mask, stored.MustGet("user_password"))
	assert.False(t, stored.IsSet("pin"))
	assert.Equal(t, []any{}, stored.MustGet("password_hints"))

	nested := stored.MustGet("details").(*schema.Object)
	assert.Equal(t, "123 St", nested.MustGet("address"))
	assert.Equal(t, middleware.Mask, nested.MustGet("ssn_number"))
}

func TestRedactMiddleware_RequiredUnmaskable(t *testing.T) {
	reg := schema.NewRegistry()
	k := reg.Define("Card").
		Prop("pin", schema.Pattern(`[0-9]{4}`)).
		MustRegister()

	mw, err := middleware.NewRedactMiddleware([]string{"pin"})
	require.NoError(t, err)
	store := mw(memory.NewStore())

	err = store.Save(context.Background(), "c1", k.MustNew(schema.Values{"pin": "1234"}))
	assert.ErrorIs(t, err, schema.ErrArgument)
}

func TestRedactMiddleware_BadPattern(t *testing.T) {
	_, err := middleware.NewRedactMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestRedactMiddleware_Contract(t *testing.T) {
	reg := schema.NewRegistry()
	mw, err := middleware.NewRedactMiddleware([]string{"^secret$"})
	require.NoError(t, err)
	ports.RunDocumentStoreContract(t, mw(memory.NewStore()), reg)
}
