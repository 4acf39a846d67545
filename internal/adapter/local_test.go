package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/mock"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

var testApp = config.App{
	TokenSignKey:  "0123456789abcdef0123456789abcdef",
	TokenIssuer:   "client-desk-test",
	TokenDuration: time.Hour,
}

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestLocal(t *testing.T) (*localBackend, store.Storage) {
	t.Helper()
	storage := store.NewMemoryStorage()
	b, err := NewLocalBackend(context.Background(), storage, testApp, logger.Nop(),
		WithBcryptCost(bcrypt.MinCost), WithIDGenerator(&seqIDs{}))
	require.NoError(t, err)
	return b.(*localBackend), storage
}

func TestLocal_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	reg, err := b.Register(ctx, "Alice", "Alice@X.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "id-1", Email: "alice@x.com", Name: "Alice"}, reg.User)
	assert.NotEmpty(t, reg.Token)

	login, err := b.Authenticate(ctx, "ALICE@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User, login.User)

	subject, err := utils.ValidateAndParseJWTToken(login.Token, testApp.TokenSignKey, testApp.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, "id-1", subject)
}

func TestLocal_Authenticate_Failures(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	_, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = b.Authenticate(ctx, "alice@x.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", UserMessage(err))

	_, err = b.Authenticate(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocal_Register_EmailInUse(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	_, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = b.Register(ctx, "Other", "ALICE@x.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Equal(t, "Email already in use", UserMessage(err))
}

func TestLocal_PasswordIsNeverStoredInClear(t *testing.T) {
	ctx := context.Background()
	b, storage := newTestLocal(t)
	_, err := b.Register(ctx, "Alice", "alice@x.com", "secret-password")
	require.NoError(t, err)

	raw, ok, err := storage.Get(ctx, UsersKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "secret-password")

	var users map[string]userRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &users))
	assert.True(t, strings.HasPrefix(users["alice@x.com"].PasswordHash, "$2"))
}

func TestLocal_FetchProfile(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	reg, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	user, err := b.FetchProfile(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User, user)

	_, err = b.FetchProfile(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = b.FetchProfile(ctx, "demo_token_123")
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := utils.GenerateJWTToken(testApp.TokenIssuer, "id-1", time.Hour, "another-key-another-key")
	require.NoError(t, err)
	_, err = b.FetchProfile(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestLocal_TokenIsBoundToItsUser verifies that user B's token resolves to
// user B and never to the first registered user.
func TestLocal_TokenIsBoundToItsUser(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)

	a, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	bob, err := b.Register(ctx, "Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	profile, err := b.FetchProfile(ctx, bob.Token)
	require.NoError(t, err)
	assert.Equal(t, bob.User, profile)

	_, err = b.AddClient(ctx, a.Token, models.NewClient{Name: "Alice's", Status: models.ClientActive})
	require.NoError(t, err)

	bobClients, err := b.ListClients(ctx, bob.Token)
	require.NoError(t, err)
	assert.Empty(t, bobClients)

	aliceClients, err := b.ListClients(ctx, a.Token)
	require.NoError(t, err)
	assert.Len(t, aliceClients, 1)
}

func TestLocal_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	reg, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	name := "Alicia"
	updated, err := b.UpdateProfile(ctx, reg.Token, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: reg.User.ID, Email: "alice@x.com", Name: "Alicia"}, updated)

	email := "Alicia@X.com"
	updated, err = b.UpdateProfile(ctx, reg.Token, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alicia@x.com", updated.Email)

	// login follows the new email, the password is kept
	_, err = b.Authenticate(ctx, "alicia@x.com", "secret1")
	require.NoError(t, err)
	_, err = b.Authenticate(ctx, "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocal_UpdateProfile_Failures(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	reg, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	_, err = b.Register(ctx, "Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	name := "x"
	_, err = b.UpdateProfile(ctx, "", models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = b.UpdateProfile(ctx, "garbage", models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	taken := "bob@x.com"
	_, err = b.UpdateProfile(ctx, reg.Token, models.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Equal(t, "Email already in use", UserMessage(err))

	profile, err := b.FetchProfile(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", profile.Email)
}

func TestLocal_Clients(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestLocal(t)
	reg, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	empty, err := b.ListClients(ctx, reg.Token)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := b.AddClient(ctx, reg.Token, models.NewClient{Name: "A", Email: "a@x.com", Company: "C", Status: models.ClientActive})
	require.NoError(t, err)
	second, err := b.AddClient(ctx, reg.Token, models.NewClient{Name: "B", Email: "b@x.com", Company: "D", Status: models.ClientInactive})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := b.ListClients(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, []models.Client{first, second}, list)

	_, err = b.AddClient(ctx, "", models.NewClient{Name: "C"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = b.ListClients(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLocal_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	b, storage := newTestLocal(t)
	require.NoError(t, storage.Set(ctx, UsersKey, "{not json"))

	_, err := b.Authenticate(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrUnexpected)
}

// TestLocal_GeneratedSignKeyIsReused verifies that a backend without a
// configured key keeps accepting tokens issued before a restart.
func TestLocal_GeneratedSignKeyIsReused(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	app := testApp
	app.TokenSignKey = ""

	first, err := NewLocalBackend(ctx, storage, app, logger.Nop(), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	reg, err := first.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	key, ok, err := storage.Get(ctx, SignKeyKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, key, 2*generatedSignKeyBytes)

	second, err := NewLocalBackend(ctx, storage, app, logger.Nop())
	require.NoError(t, err)
	user, err := second.FetchProfile(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User, user)
}

func TestNewLocalBackend_NilStorage(t *testing.T) {
	_, err := NewLocalBackend(context.Background(), nil, testApp, logger.Nop())
	assert.Error(t, err)
}

// TestLocal_ConcurrentBackendsShareOneDatabase runs two backends on the same
// SQLite file, the way two client processes do, and expects every client
// added by either of them to be kept.
func TestLocal_ConcurrentBackendsShareOneDatabase(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client-desk.db")

	var backends []Backend
	for range 2 {
		storage, err := store.NewStorage(ctx, config.Storage{DSN: dsn}, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = storage.Close() })

		b, err := NewLocalBackend(ctx, storage, testApp, logger.Nop(), WithBcryptCost(bcrypt.MinCost))
		require.NoError(t, err)
		backends = append(backends, b)
	}

	reg, err := backends[0].Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	const perBackend = 5
	var wg sync.WaitGroup
	errs := make(chan error, 2*perBackend)
	for i, b := range backends {
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			for n := range perBackend {
				_, err := b.AddClient(ctx, reg.Token, models.NewClient{
					Name:    fmt.Sprintf("client %d-%d", i, n),
					Email:   fmt.Sprintf("c%d-%d@x.com", i, n),
					Company: "C",
					Status:  models.ClientActive,
				})
				errs <- err
			}
		}(i, b)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := backends[1].ListClients(ctx, reg.Token)
	require.NoError(t, err)
	assert.Len(t, list, 2*perBackend)
}

// plainStorage hides the Update method of the wrapped storage.
type plainStorage struct {
	store.Storage
}

func TestLocal_StorageWithoutUpdate(t *testing.T) {
	ctx := context.Background()
	b, err := NewLocalBackend(ctx, plainStorage{store.NewMemoryStorage()}, testApp, logger.Nop(), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	reg, err := b.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	_, err = b.Register(ctx, "Alice", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailInUse)

	_, err = b.AddClient(ctx, reg.Token, models.NewClient{Name: "A", Email: "a@x.com", Company: "C", Status: models.ClientActive})
	require.NoError(t, err)
	list, err := b.ListClients(ctx, reg.Token)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLocal_UpdateFailureIsUnexpected(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storage := mock.NewMockUpdater(ctrl)

	b, err := NewLocalBackend(ctx, storage, testApp, logger.Nop(), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	storage.EXPECT().Update(gomock.Any(), UsersKey, gomock.Any()).Return(store.ErrStorageUnavailable)

	_, err = b.Register(ctx, "Alice", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Equal(t, "An unexpected error occurred", UserMessage(err))
}
