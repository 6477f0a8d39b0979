package ports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a
// DocumentStore implementation adheres to the interface contract. reg must
// be the registry the store resolves kinds in; the suite declares its own
// kinds there.
func RunDocumentStoreContract(t *testing.T, store DocumentStore, reg *schema.Registry) {
	ctx := context.Background()
	prefix := "contract-" + NewID()

	channel := reg.Define("ContractChannel").Tag("channel").
		Prop("code", schema.String(schema.XMLAttribute())).
		Prop("gain", schema.Float(schema.Optional())).
		MustRegister()
	station := reg.Define("ContractStation").Tag("station").
		Prop("code", schema.String()).
		Prop("opened", schema.Timestamp(schema.Optional())).
		Prop("channels", schema.ListOf(channel.T())).
		Prop("location", schema.TupleOf(2, schema.Float(), schema.Optional())).
		MustRegister()

	newStation := func(code string) *schema.Object {
		return station.MustNew(schema.Values{
			"code":     code,
			"opened":   1262341201.5,
			"channels": []any{channel.MustNew(schema.Values{"code": "BHZ", "gain": 1.5})},
			"location": schema.NewTuple(34.9, -106.5),
		})
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		obj := newStation("ANMO")
		require.NoError(t, store.Save(ctx, id, obj), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "ContractStation", loaded.Kind().Name())
		assert.True(t, schema.Equal(obj, loaded), "%v != %v", obj, loaded)
	})

	t.Run("Save Is Isolated", func(t *testing.T) {
		id := prefix + "-isolated"
		obj := newStation("ANMO")
		require.NoError(t, store.Save(ctx, id, obj))
		require.NoError(t, obj.Set("code", "CHANGED"))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "ANMO", loaded.MustGet("code"))
	})

	t.Run("Overwrite", func(t *testing.T) {
		id := prefix + "-overwrite"
		require.NoError(t, store.Save(ctx, id, newStation("OLD")))
		require.NoError(t, store.Save(ctx, id, newStation("NEW")))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "NEW", loaded.MustGet("code"))
	})

	t.Run("Load Regularizes", func(t *testing.T) {
		id := prefix + "-loose"
		obj := newStation("ANMO")
		require.NoError(t, obj.Set("opened", "2010-01-01 10:20:01.5"))
		require.NoError(t, store.Save(ctx, id, obj))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.InDelta(t, 1262341201.5, loaded.MustGet("opened"), 1e-6)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, prefix+"-missing")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, id, newStation("ANMO")))
		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
		assert.NoError(t, store.Delete(ctx, id), "Delete of a missing id should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-list-1"
		id2 := prefix + "-list-2"
		require.NoError(t, store.Save(ctx, id1, newStation("A")))
		require.NoError(t, store.Save(ctx, id2, newStation("B")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// RunLockerContract verifies that a DistributedLocker provides mutual
// exclusion per key.
func RunLockerContract(t *testing.T, locker DistributedLocker) {
	ctx := context.Background()
	key := "contract-" + NewID()

	t.Run("Exclusive", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, time.Minute)
		require.NoError(t, err)

		short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(short, key, time.Minute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		require.NoError(t, unlock(ctx))
		unlock, err = locker.Lock(ctx, key, time.Minute)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	})

	t.Run("Independent Keys", func(t *testing.T) {
		unlockA, err := locker.Lock(ctx, key+"-a", time.Minute)
		require.NoError(t, err)
		defer func() { _ = unlockA(ctx) }()

		short, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		unlockB, err := locker.Lock(short, key+"-b", time.Minute)
		require.NoError(t, err)
		require.NoError(t, unlockB(ctx))
	})

	t.Run("Serializes Writers", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			overlap bool
		)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, key+"-w", time.Minute)
				if err != nil {
					return
				}
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				_ = unlock(ctx)
			}()
		}
		wg.Wait()
		assert.False(t, overlap)
	})
}
