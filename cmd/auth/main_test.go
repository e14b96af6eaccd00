package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/credential-auth/internal/auth/token"
	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	"github.com/AlibekovAA/credential-auth/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

const testJWTSecret = "test-secret-key-that-is-at-least-32-bytes-long"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "auth-test", "ERROR")
	repo := userrepo.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), clock.NewRealClock())
	hasher := commoncrypto.NewArgon2Hasher(commoncrypto.Argon2Params{
		Time:    1,
		Memory:  8 * 1024,
		Threads: 1,
		KeyLen:  constants.Argon2KeyLen,
		SaltLen: constants.Argon2SaltLen,
	})
	signer := token.NewJWTSigner(testJWTSecret, constants.AccessTokenTTL, clock.NewRealClock())

	ts := httptest.NewServer(buildHandler(repo, hasher, signer, log, time.Second))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthFlow_SignupThenMe(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/signup", `{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/users/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer me.Body.Close()

	require.Equal(t, http.StatusOK, me.StatusCode)

	var user map[string]any
	require.NoError(t, json.NewDecoder(me.Body).Decode(&user))
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotEmpty(t, me.Header.Get("X-Trace-ID"))
}

func TestAuthFlow_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)

	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "auth_requests_total")
}
