package addressapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"getset/cmd/identity"
	"getset/cmd/internal/address"
	"getset/cmd/internal/auth"
	authapi "getset/cmd/internal/auth/api"
	"getset/cmd/internal/web"
	"getset/cmd/security/password"
	"getset/cmd/security/token"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	hasher := password.DefaultConfig()
	hasher.Params.Iterations = 1_000

	tokCfg := token.DefaultConfig()
	tokCfg.AccessSecret = []byte("addr-test-access-secret-0123456789")
	tokCfg.RefreshSecret = []byte("addr-test-refresh-secret-0123456789")
	tokens, err := token.NewManager(tokCfg)
	if err != nil {
		t.Fatalf("token.NewManager: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authSvc := auth.NewService(log, identity.NewMemoryStore(), hasher, tokens)
	authHandler := authapi.NewHandler(log, authSvc, authapi.DefaultConfig())

	addrSvc := address.NewService(log, address.NewMemoryStore())
	addrHandler := NewHandler(log, addrSvc, authHandler, 1<<20)

	mux := http.NewServeMux()
	authHandler.Register(mux)
	addrHandler.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return srv, &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func do(t *testing.T, client *http.Client, method, url, body string) (*http.Response, web.Envelope) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env web.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

func signIn(t *testing.T, client *http.Client, base string) {
	t.Helper()
	resp, _ := do(t, client, http.MethodPost, base+"/api/users/register",
		`{"name":"Alice","email":"alice@example.com","phoneNumber":"9812345678","password":"secret123"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status=%d", resp.StatusCode)
	}
	resp, _ = do(t, client, http.MethodPost, base+"/api/users/login",
		`{"email":"alice@example.com","password":"secret123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status=%d", resp.StatusCode)
	}
}

const validAddressBody = `{
	"recipientName": "Alice Smith",
	"phoneNumber": "9812345678",
	"addressLine": "123 Main Street",
	"city": "Kathmandu",
	"state": "Bagmati",
	"postalCode": "44600"
}`

func createAddress(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	resp, env := do(t, client, http.MethodPost, base+"/api/addresses/create", validAddressBody)
	if resp.StatusCode != http.StatusCreated || !env.Success {
		t.Fatalf("create address: status=%d env=%+v", resp.StatusCode, env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data: %T", env.Data)
	}
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("missing address id in %v", data)
	}
	return id
}

func TestAddressEndpoints_RequireAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	// No cookies, no bearer.
	resp, env := do(t, http.DefaultClient, http.MethodPost, srv.URL+"/api/addresses/create", validAddressBody)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d env=%+v", resp.StatusCode, env)
	}
}

func TestCreateAddress_DefaultsInResponse(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)

	resp, env := do(t, client, http.MethodPost, srv.URL+"/api/addresses/create", validAddressBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	data := env.Data.(map[string]any)
	if data["label"] != "Home" || data["country"] != "Nepal" {
		t.Fatalf("defaults not applied: %v", data)
	}
}

func TestCreateAddress_ValidationEnvelope(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)

	resp, env := do(t, client, http.MethodPost, srv.URL+"/api/addresses/create",
		`{"recipientName":"A","phoneNumber":"1","addressLine":"x","city":"K","state":"B","postalCode":"y"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if env.Message != "Address Validation Error" || len(env.Errors) == 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestEditAddress(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)
	id := createAddress(t, client, srv.URL)

	body := strings.Replace(validAddressBody, "Kathmandu", "Pokhara", 1)
	resp, env := do(t, client, http.MethodPatch, srv.URL+"/api/addresses/"+id, body)
	if resp.StatusCode != http.StatusOK || env.Message != "Address updated successfully" {
		t.Fatalf("edit: status=%d env=%+v", resp.StatusCode, env)
	}
	data := env.Data.(map[string]any)
	if data["city"] != "Pokhara" {
		t.Fatalf("city not updated: %v", data)
	}
}

func TestEditAddress_NotFound(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)

	resp, env := do(t, client, http.MethodPatch, srv.URL+"/api/addresses/does-not-exist", validAddressBody)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if env.Message != "Address not found or you don't have permission to edit it" {
		t.Fatalf("message=%q", env.Message)
	}
}

func TestDeleteAddress(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)
	id := createAddress(t, client, srv.URL)

	resp, env := do(t, client, http.MethodDelete, srv.URL+"/api/addresses/"+id, "")
	if resp.StatusCode != http.StatusOK || env.Message != "Address deleted successfully" {
		t.Fatalf("delete: status=%d env=%+v", resp.StatusCode, env)
	}

	resp, _ = do(t, client, http.MethodDelete, srv.URL+"/api/addresses/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: status=%d", resp.StatusCode)
	}
}

func TestListAddresses(t *testing.T) {
	srv, client := newTestServer(t)
	signIn(t, client, srv.URL)
	createAddress(t, client, srv.URL)
	createAddress(t, client, srv.URL)

	resp, env := do(t, client, http.MethodGet, srv.URL+"/api/addresses", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status=%d", resp.StatusCode)
	}
	items, ok := env.Data.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 addresses, got %v", env.Data)
	}
}
