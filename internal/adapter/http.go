package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

// API routes of the remote backend.
const (
	routeLogin   = "/api/auth/login"
	routeSignup  = "/api/auth/signup"
	routeProfile = "/api/users/profile"
	routeUpdate  = "/api/users/update"
	routeClients = "/api/clients"
)

var errMalformedResponse = errors.New("malformed response body")

type httpBackend struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPBackend constructs the HTTP/JSON implementation of [Backend].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPBackend(cfg config.Backend, logger *logger.Logger) (Backend, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid backend http address: %w", err)
	}

	return &httpBackend{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Authenticate implements [Backend]. It POSTs the credentials to
// POST /api/auth/login and decodes {user, token}. HTTP 401 maps to
// [ErrInvalidCredentials].
func (h *httpBackend) Authenticate(ctx context.Context, email, password string) (models.AuthResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.Credentials{Email: email, Password: password}).
		Post(routeLogin)
	if err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Authenticate", mapTransportError(err))
	}
	if err = mapHTTPError(opAuthenticate, resp); err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Authenticate", err)
	}

	result, err := decodeAuthResult(resp.Body())
	if err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Authenticate", err)
	}
	return result, nil
}

// Register implements [Backend]. It POSTs the registration to
// POST /api/auth/signup. HTTP 409, or 400 with a message mentioning an
// existing account, maps to [ErrEmailInUse].
func (h *httpBackend) Register(ctx context.Context, name, email, password string) (models.AuthResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.Registration{Name: name, Email: email, Password: password}).
		Post(routeSignup)
	if err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Register", mapTransportError(err))
	}
	if err = mapHTTPError(opRegister, resp); err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Register", err)
	}

	result, err := decodeAuthResult(resp.Body())
	if err != nil {
		return models.AuthResult{}, h.fail("httpBackend.Register", err)
	}
	return result, nil
}

// FetchProfile implements [Backend]. It GETs /api/users/profile with the
// bearer token. HTTP 401/403 map to [ErrInvalidToken].
func (h *httpBackend) FetchProfile(ctx context.Context, token string) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, newError(ErrInvalidToken, "", errEmptyToken)
	}

	resp, err := h.authedRequest(ctx, token).Get(routeProfile)
	if err != nil {
		return models.User{}, h.fail("httpBackend.FetchProfile", mapTransportError(err))
	}
	if err = mapHTTPError(opFetchProfile, resp); err != nil {
		return models.User{}, h.fail("httpBackend.FetchProfile", err)
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil || user.ID == "" {
		return models.User{}, h.fail("httpBackend.FetchProfile", malformed(err))
	}
	return user, nil
}

// UpdateProfile implements [Backend]. It PUTs the patch to
// /api/users/update and decodes {user}.
func (h *httpBackend) UpdateProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, newError(ErrUnauthenticated, "", errEmptyToken)
	}

	resp, err := h.authedRequest(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Put(routeUpdate)
	if err != nil {
		return models.User{}, h.fail("httpBackend.UpdateProfile", mapTransportError(err))
	}
	if err = mapHTTPError(opUpdateProfile, resp); err != nil {
		return models.User{}, h.fail("httpBackend.UpdateProfile", err)
	}

	var profile models.ProfileResponse
	if err = json.Unmarshal(resp.Body(), &profile); err != nil {
		return models.User{}, h.fail("httpBackend.UpdateProfile", malformed(err))
	}
	return profile.User, nil
}

// ListClients implements [Backend]. It GETs /api/clients.
func (h *httpBackend) ListClients(ctx context.Context, token string) ([]models.Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, newError(ErrUnauthenticated, "", errEmptyToken)
	}

	resp, err := h.authedRequest(ctx, token).Get(routeClients)
	if err != nil {
		return nil, h.fail("httpBackend.ListClients", mapTransportError(err))
	}
	if err = mapHTTPError(opListClients, resp); err != nil {
		return nil, h.fail("httpBackend.ListClients", err)
	}

	var clients []models.Client
	if err = json.Unmarshal(resp.Body(), &clients); err != nil {
		return nil, h.fail("httpBackend.ListClients", malformed(err))
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

// AddClient implements [Backend]. It POSTs the new record to /api/clients
// and returns the stored record with its assigned id.
func (h *httpBackend) AddClient(ctx context.Context, token string, c models.NewClient) (models.Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Client{}, newError(ErrUnauthenticated, "", errEmptyToken)
	}

	resp, err := h.authedRequest(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(c).
		Post(routeClients)
	if err != nil {
		return models.Client{}, h.fail("httpBackend.AddClient", mapTransportError(err))
	}
	if err = mapHTTPError(opAddClient, resp); err != nil {
		return models.Client{}, h.fail("httpBackend.AddClient", err)
	}

	var client models.Client
	if err = json.Unmarshal(resp.Body(), &client); err != nil || client.ID == "" {
		return models.Client{}, h.fail("httpBackend.AddClient", malformed(err))
	}
	return client, nil
}

func (h *httpBackend) authedRequest(ctx context.Context, token string) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token)
}

func (h *httpBackend) fail(fn string, err error) error {
	h.logger.Debug().Err(err).Str("func", fn).Msg("backend request failed")
	return err
}

func decodeAuthResult(body []byte) (models.AuthResult, error) {
	var result models.AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return models.AuthResult{}, malformed(err)
	}
	if result.Token == "" || result.User.ID == "" {
		return models.AuthResult{}, malformed(nil)
	}
	return result, nil
}

func malformed(err error) error {
	if err == nil {
		err = errMalformedResponse
	} else {
		err = fmt.Errorf("%w: %w", errMalformedResponse, err)
	}
	return newError(ErrUnexpected, "", err)
}
