package prefs

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/model"
)

func TestAdminMode_LoadDefaultsFalse(t *testing.T) {
	am := NewAdminMode(NewMemoryStore())
	on, err := am.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestAdminMode_TogglePersists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	on, err := NewAdminMode(store).Toggle(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, on)

	// a fresh reader over the same store sees the saved flag
	reloaded, err := NewAdminMode(store).Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, reloaded)

	raw, ok, err := store.Load(ctx, "c1", AdminModeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", raw)

	other, err := NewAdminMode(store).Load(ctx, "c2")
	require.NoError(t, err)
	assert.False(t, other, "flags are per client")

	on, err = NewAdminMode(store).Toggle(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestAdminMode_GarbageReadsFalse(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "c1", AdminModeKey, "maybe"))
	on, err := NewAdminMode(store).Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestSettings_DefaultsAndSave(t *testing.T) {
	s := NewSettings(NewMemoryStore())
	ctx := context.Background()

	got, err := s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultUserSettings(), got)

	want := model.UserSettings{Name: " Ada ", Email: "ada@example.com", MembershipLevel: model.MembershipChampion}
	saved, err := s.Save(ctx, "c1", want)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)

	got, err = s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = s.Save(ctx, "c1", model.UserSettings{Name: "x", Email: "y", MembershipLevel: "platinum"})
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "c", "k", "v"))
	require.NoError(t, s.Delete(ctx, "c", "k"))
	_, ok, err := s.Load(ctx, "c", "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestRedisStore runs against a live server when REDIS_TEST_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	client := uuid.NewString()
	s := New(rdb)

	_, ok, err := s.Load(ctx, client, AdminModeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, client, AdminModeKey, "true"))
	assert.Equal(t, "true", rdb.Get(ctx, "prefs:"+client+":"+AdminModeKey).Val())

	require.NoError(t, s.Delete(ctx, client, AdminModeKey))
	_, ok, err = s.Load(ctx, client, AdminModeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
