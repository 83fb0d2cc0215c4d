package pending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistration(token string) Registration {
	return Registration{
		Email:        "jamie@state.edu",
		PasswordHash: "$2a$10$hash",
		MemberType:   "STUDENT",
		Name:         "Jamie",
		Token:        token,
		CreatedAt:    time.Now(),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "temp-1", testRegistration("tok-1"), time.Hour))

	got, err := s.Get(ctx, "temp-1")
	require.NoError(t, err)
	assert.Equal(t, "jamie@state.edu", got.Email)
	assert.Equal(t, "tok-1", got.Token)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetByToken(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "temp-1", testRegistration("tok-1"), time.Hour))
	require.NoError(t, s.Put(ctx, "temp-2", testRegistration("tok-2"), time.Hour))

	tempID, reg, err := s.GetByToken(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "temp-2", tempID)
	assert.Equal(t, "tok-2", reg.Token)

	_, _, err = s.GetByToken(ctx, "tok-unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ExpiryIsSweptOnAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, "temp-1", testRegistration("tok-1"), time.Minute))

	// Still there just before the deadline.
	now = now.Add(59 * time.Second)
	_, err := s.Get(ctx, "temp-1")
	require.NoError(t, err)

	// Gone after it.
	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "temp-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = s.GetByToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "temp-1", testRegistration("tok-1"), time.Hour))
	require.NoError(t, s.Delete(ctx, "temp-1"))

	_, err := s.Get(ctx, "temp-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent entry is not an error.
	assert.NoError(t, s.Delete(ctx, "temp-1"))
}
