package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tedomi2525/My-project/types"
)

var teacher = types.Identity{ID: 2, Username: "teacher", DisplayName: "Tran Thi Lan", Role: types.RoleTeacher}

type failingPersister struct{ MemoryPersister }

func (f *failingPersister) Delete(context.Context) error { return errors.New("disk gone") }

func TestEstablishAndClear(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	store := New(persister)

	require.False(t, store.Authenticated())

	require.NoError(t, store.Establish(ctx, Credential{Token: "tok", UserID: 2, Role: types.RoleTeacher}, teacher))
	identity, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, teacher, identity)

	cred, ok := store.Credential()
	require.True(t, ok)
	assert.Equal(t, "tok", cred.Token)

	saved, err := persister.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", saved.Token)
	require.NotNil(t, saved.Identity)
	assert.Equal(t, teacher.ID, saved.Identity.ID)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	assert.False(t, store.Authenticated())
	_, ok = store.Credential()
	assert.False(t, ok)
	_, err = persister.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestEstablishRejectsInvalidPairs(t *testing.T) {
	store := New(nil)
	ctx := context.Background()

	require.Error(t, store.Establish(ctx, Credential{}, teacher))
	require.Error(t, store.Establish(ctx, Credential{Token: "tok"}, types.Identity{ID: 1, Role: "owner"}))
	assert.False(t, store.Authenticated())
}

func TestLoadKeepsIdentityAbsentUntilValidated(t *testing.T) {
	ctx := context.Background()
	persister := NewMemoryPersister()
	require.NoError(t, persister.Save(ctx, Persisted{Token: "tok", Identity: &teacher}))

	store := New(persister)
	require.NoError(t, store.Load(ctx))

	assert.False(t, store.Authenticated())
	cred, snap, pending := store.Pending()
	require.True(t, pending)
	assert.Equal(t, "tok", cred.Token)
	require.NotNil(t, snap)
	assert.Equal(t, teacher.Username, snap.Username)

	err := store.Validate(ctx, Credential{Token: "other"}, teacher)
	require.ErrorIs(t, err, ErrCredentialMismatch)

	require.NoError(t, store.Validate(ctx, Credential{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, teacher))
	assert.True(t, store.Authenticated())
	_, _, pending = store.Pending()
	assert.False(t, pending)
}

func TestLoadWithoutPersistedSession(t *testing.T) {
	store := New(NewMemoryPersister())
	err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoCredential)

	err = store.Validate(context.Background(), Credential{Token: "tok"}, teacher)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestClearDropsStateEvenWhenPersisterFails(t *testing.T) {
	ctx := context.Background()
	store := New(&failingPersister{})
	require.NoError(t, store.Establish(ctx, Credential{Token: "tok"}, teacher))

	err := store.Clear(ctx)
	require.Error(t, err)
	assert.False(t, store.Authenticated())
	_, ok := store.Credential()
	assert.False(t, ok)
}

func TestCredentialExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Credential{Token: "t"}.Expired(now))
	assert.False(t, Credential{Token: "t", ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Credential{Token: "t", ExpiresAt: now}.Expired(now))
}
