package recipients_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/itristenx/nova-notify/pkg/recipients"
)

func TestCachedRoleSource_HitWithinTTL(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, []string{"oncall"}).
		Return([]string{"u1"}, nil).Once()

	c := recipients.NewCachedRoleSource(src, time.Minute)

	for i := 0; i < 3; i++ {
		members, err := c.RoleMembers(context.Background(), []string{"oncall"})
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, members)
	}

	src.AssertExpectations(t)
}

func TestCachedRoleSource_ExpiresAfterWindow(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, []string{"oncall"}).
		Return([]string{"u1"}, nil).Once()
	src.On("RoleMembers", mock.Anything, []string{"oncall"}).
		Return([]string{"u1", "u2"}, nil).Once()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := recipients.NewCachedRoleSource(src, 30*time.Second,
		recipients.WithClock(func() time.Time { return now }))

	members, err := c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)

	// Just inside the window: still the cached membership.
	now = now.Add(29 * time.Second)
	members, err = c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)

	// Window elapsed: the new membership must be visible.
	now = now.Add(2 * time.Second)
	members, err = c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, members)

	src.AssertExpectations(t)
}

func TestCachedRoleSource_KeyIsOrderInsensitive(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, mock.Anything).
		Return([]string{"u1"}, nil).Once()

	c := recipients.NewCachedRoleSource(src, time.Minute)

	_, err := c.RoleMembers(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	_, err = c.RoleMembers(context.Background(), []string{"b", "a"})
	require.NoError(t, err)

	src.AssertExpectations(t)
}

func TestCachedRoleSource_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, mock.Anything).
		Return(nil, errors.New("down")).Once()
	src.On("RoleMembers", mock.Anything, mock.Anything).
		Return([]string{"u1"}, nil).Once()

	c := recipients.NewCachedRoleSource(src, time.Minute)

	_, err := c.RoleMembers(context.Background(), []string{"oncall"})
	require.Error(t, err)

	members, err := c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, members)

	src.AssertExpectations(t)
}

func TestCachedRoleSource_Invalidate(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, mock.Anything).
		Return([]string{"u1"}, nil).Twice()

	c := recipients.NewCachedRoleSource(src, time.Hour)

	_, err := c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)

	c.Invalidate()

	_, err = c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)

	src.AssertExpectations(t)
}

func TestCachedRoleSource_ZeroTTLPassesThrough(t *testing.T) {
	t.Parallel()

	src := new(MockRoleSource)
	src.On("RoleMembers", mock.Anything, mock.Anything).
		Return([]string{"u1"}, nil).Twice()

	c := recipients.NewCachedRoleSource(src, 0)

	_, err := c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)
	_, err = c.RoleMembers(context.Background(), []string{"oncall"})
	require.NoError(t, err)

	src.AssertExpectations(t)
}
