package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/spire/internal/features/places"
	"github.com/xyz-asif/spire/internal/features/users"
	apperrors "github.com/xyz-asif/spire/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRootCmd_Commands(t *testing.T) {
	cmd := rootCmd()

	for _, name := range []string{"user", "generate", "refresh-preferences", "seed", "token", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	gen, _, _ := cmd.Find([]string{"generate"})
	for _, flag := range []string{"user", "limit", "workers"} {
		assert.NotNil(t, gen.Flags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), Version)
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})

	assert.Error(t, cmd.Execute())
}

type lookupFunc func(ctx context.Context, username string) (*users.User, error)

func (f lookupFunc) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return f(ctx, username)
}

func TestLookupUser(t *testing.T) {
	missing := lookupFunc(func(context.Context, string) (*users.User, error) {
		return nil, apperrors.ErrNotFound
	})
	_, err := lookupUser(context.Background(), missing, "ghost")
	assert.EqualError(t, err, `user "ghost" not found`)

	found := lookupFunc(func(_ context.Context, name string) (*users.User, error) {
		return &users.User{Username: name}, nil
	})
	user, err := lookupUser(context.Background(), found, "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
}

func TestSeedSummary(t *testing.T) {
	got := seedSummary(places.SeedResult{
		PlacesCreated: []string{"Cafe A", "Park B"},
		EventsCreated: []string{"Gig"},
	})
	assert.Equal(t, "Seeded 2 places and 1 events: Cafe A, Park B, Gig", got)

	assert.Equal(t, "Seeded 0 places and 0 events", seedSummary(places.SeedResult{}))
}

type memUsers struct {
	byName map[string]*users.User
}

func (m *memUsers) Create(_ context.Context, user *users.User) error {
	if _, ok := m.byName[user.Username]; ok {
		return apperrors.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	m.byName[user.Username] = user
	return nil
}

func TestCreateUser(t *testing.T) {
	store := &memUsers{byName: map[string]*users.User{}}

	user, err := createUser(context.Background(), store, "  Maya_K ", "maya@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "maya_k", user.Username)
	assert.Equal(t, "maya_k", user.DisplayName)
	assert.False(t, user.ID.IsZero())

	_, err = createUser(context.Background(), store, "maya_k", "other@example.com", "Maya")
	assert.EqualError(t, err, "username or email already taken")

	_, err = createUser(context.Background(), store, "ab", "ab@example.com", "")
	assert.Error(t, err)

	_, err = createUser(context.Background(), store, "valid_name", "not-an-email", "")
	assert.Error(t, err)
	assert.Len(t, store.byName, 1)
}

func TestUserCreateCmd_RequiresFlags(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"user", "create", "--username", "maya"})

	assert.Error(t, cmd.Execute())
}
