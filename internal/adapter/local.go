package adapter

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

// Storage keys of the local backend.
const (
	UsersKey   = "client_desk_users"
	ClientsKey = "client_desk_clients"
	SignKeyKey = "client_desk_sign_key"
)

const generatedSignKeyBytes = 32

var (
	errUserNotFound    = errors.New("user not found")
	errWrongPassword   = errors.New("wrong password")
	errEmailRegistered = errors.New("email already registered")
)

// IDGenerator hands out unique record ids.
type IDGenerator interface {
	Generate() string
}

// LocalOption customizes [NewLocalBackend].
type LocalOption func(*localBackend)

// WithBcryptCost overrides the bcrypt cost of new password hashes.
func WithBcryptCost(cost int) LocalOption {
	return func(l *localBackend) {
		l.bcryptCost = cost
	}
}

// WithIDGenerator overrides the generator of user and client ids.
func WithIDGenerator(ids IDGenerator) LocalOption {
	return func(l *localBackend) {
		l.ids = ids
	}
}

type localBackend struct {
	// mu serializes the operations of this process. Writes to the stored
	// documents are atomic through store.Updater, also across processes.
	mu sync.Mutex

	docs *documents
	ids  IDGenerator

	signKey       string
	issuer        string
	tokenDuration time.Duration
	bcryptCost    int

	logger *logger.Logger
}

// NewLocalBackend constructs the fallback [Backend] that keeps users and
// client records in storage instead of a remote API.
//
// Passwords are stored as bcrypt hashes. Tokens are HS256 JWTs whose subject
// is the user id, signed with cfg.TokenSignKey; when that key is empty one is
// generated on first use and kept in storage under [SignKeyKey], so tokens
// survive restarts.
func NewLocalBackend(ctx context.Context, storage store.Storage, cfg config.App, logger *logger.Logger, opts ...LocalOption) (Backend, error) {
	if storage == nil {
		return nil, errors.New("local backend needs a storage")
	}

	l := &localBackend{
		docs:          newDocuments(storage),
		ids:           utils.NewUUIDGenerator(),
		signKey:       cfg.TokenSignKey,
		issuer:        cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		bcryptCost:    bcrypt.DefaultCost,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.signKey == "" {
		key, err := loadOrCreateSignKey(ctx, l.docs)
		if err != nil {
			logger.Err(err).Str("func", "NewLocalBackend").Msg("error resolving token sign key")
			return nil, fmt.Errorf("error resolving token sign key: %w", err)
		}
		l.signKey = key
	}

	return l, nil
}

// loadOrCreateSignKey returns the stored sign key, generating and storing
// one in the same atomic step when there is none yet.
func loadOrCreateSignKey(ctx context.Context, docs *documents) (string, error) {
	var key string
	err := docs.update(ctx, SignKeyKey, func(stored string, ok bool) (string, error) {
		if ok && stored != "" {
			key = stored
			return stored, nil
		}

		buf := make([]byte, generatedSignKeyBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		key = hex.EncodeToString(buf)
		return key, nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Authenticate implements [Backend].
func (l *localBackend) Authenticate(ctx context.Context, email, password string) (models.AuthResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, err := l.docs.loadUsers(ctx)
	if err != nil {
		return models.AuthResult{}, l.fail("localBackend.Authenticate", newError(ErrUnexpected, "", err))
	}

	record, ok := users[normalizeEmail(email)]
	if !ok {
		return models.AuthResult{}, newError(ErrInvalidCredentials, "", errUserNotFound)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return models.AuthResult{}, newError(ErrInvalidCredentials, "", errWrongPassword)
	}

	return l.issue(record)
}

// Register implements [Backend].
func (l *localBackend) Register(ctx context.Context, name, email, password string) (models.AuthResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.bcryptCost)
	if err != nil {
		return models.AuthResult{}, l.fail("localBackend.Register", newError(ErrUnexpected, "", err))
	}

	key := normalizeEmail(email)
	var record userRecord
	err = l.docs.updateUsers(ctx, func(users map[string]userRecord) error {
		if _, exists := users[key]; exists {
			return newError(ErrEmailInUse, "", errEmailRegistered)
		}

		record = userRecord{
			ID:           l.ids.Generate(),
			Name:         strings.TrimSpace(name),
			Email:        key,
			PasswordHash: string(hash),
		}
		users[key] = record
		return nil
	})
	if err != nil {
		return models.AuthResult{}, l.unexpected("localBackend.Register", err)
	}

	return l.issue(record)
}

// FetchProfile implements [Backend].
func (l *localBackend) FetchProfile(ctx context.Context, token string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, record, err := l.resolve(ctx, token, ErrInvalidToken)
	if err != nil {
		return models.User{}, err
	}
	return record.user(), nil
}

// UpdateProfile implements [Backend]. Changing the email to one owned by
// another account fails with [ErrUnexpected] and the "Email already in use"
// message.
func (l *localBackend) UpdateProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, record, err := l.resolve(ctx, token, ErrUnauthenticated)
	if err != nil {
		return models.User{}, err
	}

	err = l.docs.updateUsers(ctx, func(users map[string]userRecord) error {
		oldKey := ""
		for k, u := range users {
			if u.ID == record.ID {
				oldKey, record = k, u
				break
			}
		}
		if oldKey == "" {
			return newError(ErrUnauthenticated, "", errUserNotFound)
		}

		if patch.Name != nil {
			record.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			newKey := normalizeEmail(*patch.Email)
			if other, taken := users[newKey]; taken && other.ID != record.ID {
				return newError(ErrUnexpected, defaultMessages[ErrEmailInUse], errEmailRegistered)
			}
			record.Email = newKey
		}

		delete(users, oldKey)
		users[record.Email] = record
		return nil
	})
	if err != nil {
		return models.User{}, l.unexpected("localBackend.UpdateProfile", err)
	}
	return record.user(), nil
}

// ListClients implements [Backend].
func (l *localBackend) ListClients(ctx context.Context, token string) ([]models.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, record, err := l.resolve(ctx, token, ErrUnauthenticated)
	if err != nil {
		return nil, err
	}

	all, err := l.docs.loadClients(ctx)
	if err != nil {
		return nil, l.fail("localBackend.ListClients", newError(ErrUnexpected, "", err))
	}

	clients := make([]models.Client, 0, len(all))
	for _, c := range all {
		if c.OwnerID == record.ID {
			clients = append(clients, c.client())
		}
	}
	return clients, nil
}

// AddClient implements [Backend].
func (l *localBackend) AddClient(ctx context.Context, token string, c models.NewClient) (models.Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, record, err := l.resolve(ctx, token, ErrUnauthenticated)
	if err != nil {
		return models.Client{}, err
	}

	stored := newClientRecord(record.ID, c.WithID(l.ids.Generate()))
	if err = l.docs.appendClient(ctx, stored); err != nil {
		return models.Client{}, l.fail("localBackend.AddClient", newError(ErrUnexpected, "", err))
	}
	return stored.client(), nil
}

// resolve verifies token and loads the user it was issued for. Token
// failures are reported as kind.
func (l *localBackend) resolve(ctx context.Context, token string, kind error) (map[string]userRecord, userRecord, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, userRecord{}, newError(kind, "", errEmptyToken)
	}

	userID, err := utils.ValidateAndParseJWTToken(token, l.signKey, l.issuer)
	if err != nil {
		return nil, userRecord{}, newError(kind, "", err)
	}

	users, err := l.docs.loadUsers(ctx)
	if err != nil {
		return nil, userRecord{}, l.fail("localBackend.resolve", newError(ErrUnexpected, "", err))
	}

	for _, u := range users {
		if u.ID == userID {
			return users, u, nil
		}
	}
	return nil, userRecord{}, newError(kind, "", errUserNotFound)
}

func (l *localBackend) issue(record userRecord) (models.AuthResult, error) {
	token, err := utils.GenerateJWTToken(l.issuer, record.ID, l.tokenDuration, l.signKey)
	if err != nil {
		return models.AuthResult{}, l.fail("localBackend.issue", newError(ErrUnexpected, "", err))
	}
	return models.AuthResult{User: record.user(), Token: token}, nil
}

// unexpected passes classified errors through and reports anything else,
// such as a storage failure, as [ErrUnexpected].
func (l *localBackend) unexpected(fn string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return l.fail(fn, newError(ErrUnexpected, "", err))
}

func (l *localBackend) fail(fn string, err error) error {
	l.logger.Err(err).Str("func", fn).Msg("local backend failure")
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
