package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/notify"
)

type fakeSession struct {
	mu      sync.Mutex
	current domain.Session
	cleared int
}

func (f *fakeSession) Current() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSession) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = domain.Session{}
	f.cleared++
	return nil
}

func (f *fakeSession) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

func newTestClient(t *testing.T, handler http.Handler, sess *fakeSession) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", 5*time.Second, sess)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return c, srv
}

func swapBus(t *testing.T) *notify.Bus {
	t.Helper()
	old := notify.Default
	bus := notify.NewBus()
	notify.Default = bus
	t.Cleanup(func() { notify.Default = old })
	return bus
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[],"pagination":{}}`))
	})
	sess := &fakeSession{current: domain.Session{Token: "tok123", User: domain.User{Username: "admin"}}}
	c, _ := newTestClient(t, handler, sess)

	_, _, err := c.Assets().List(context.Background(), domain.AssetFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestClientListSendsQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":1,"nama_barang":"Monitor","kode_barang":"BRG-001","kondisi":"Baik"}],"pagination":{"total_items":1,"total_pages":1,"current_page":2,"items_per_page":5}}`))
	})
	c, _ := newTestClient(t, handler, &fakeSession{})

	items, pg, err := c.Assets().List(context.Background(), domain.AssetFilter{Search: "Mon", Condition: domain.CondBaik}, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery["page"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("page = %v, want [2]", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "5" {
		t.Errorf("limit = %v, want [5]", got)
	}
	if got := gotQuery["search"]; len(got) != 1 || got[0] != "Mon" {
		t.Errorf("search = %v, want [Mon]", got)
	}
	if got := gotQuery["condition"]; len(got) != 1 || got[0] != "Baik" {
		t.Errorf("condition = %v, want [Baik]", got)
	}

	// Items and pagination pass through verbatim.
	if len(items) != 1 || items[0].Code != "BRG-001" {
		t.Errorf("unexpected items: %+v", items)
	}
	if pg.CurrentPage != 2 || pg.ItemsPerPage != 5 {
		t.Errorf("unexpected pagination: %+v", pg)
	}
}

func TestClient401ClearsSessionAndNotifiesOnce(t *testing.T) {
	bus := swapBus(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})
	sess := &fakeSession{current: domain.Session{Token: "stale", User: domain.User{Username: "admin"}}}
	c, _ := newTestClient(t, handler, sess)

	_, _, err := c.Assets().List(context.Background(), domain.AssetFilter{}, 1, 10)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}

	if sess.clearCount() != 1 {
		t.Errorf("session cleared %d times, want 1", sess.clearCount())
	}
	msgs := bus.Drain()
	if len(msgs) != 1 || msgs[0].Kind != notify.KindError {
		t.Errorf("expected exactly one error notification, got %+v", msgs)
	}
}

func TestClient401OnLoginIsNotIntercepted(t *testing.T) {
	bus := swapBus(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Username atau password salah."}`))
	})
	sess := &fakeSession{}
	c, _ := newTestClient(t, handler, sess)

	_, err := c.Users().Login(context.Background(), "admin", "wrong")
	if errors.Is(err, ErrSessionExpired) {
		t.Fatal("login 401 must not be treated as session expiry")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "Username atau password salah." {
		t.Errorf("message = %q, want server-supplied message", apiErr.Message)
	}

	if sess.clearCount() != 0 {
		t.Error("login failure must not clear the session")
	}
	if msgs := bus.Drain(); len(msgs) != 0 {
		t.Errorf("login failure must not queue a session notification, got %+v", msgs)
	}
}

func TestClient403NotifiesAndPassesThrough(t *testing.T) {
	bus := swapBus(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden"}`))
	})
	sess := &fakeSession{current: domain.Session{Token: "tok", User: domain.User{Username: "viewer1", Role: domain.RoleViewer}}}
	c, _ := newTestClient(t, handler, sess)

	err := c.Assets().Delete(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Fatalf("error = %v, want 403 *APIError", err)
	}

	if sess.clearCount() != 0 {
		t.Error("403 must not clear the session")
	}
	msgs := bus.Drain()
	if len(msgs) != 1 {
		t.Errorf("expected one not-authorized notification, got %+v", msgs)
	}
}

func TestClientServerMessagePreferred(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"kode_barang sudah digunakan"}`))
	})
	c, _ := newTestClient(t, handler, &fakeSession{})

	_, err := c.Assets().Create(context.Background(), domain.AssetInput{})
	if err == nil || err.Error() != "kode_barang sudah digunakan" {
		t.Errorf("error = %v, want server-supplied message", err)
	}
}

func TestClientGenericMessageFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	})
	c, _ := newTestClient(t, handler, &fakeSession{})

	_, err := c.Locations().Get(context.Background(), 9)
	if err == nil || err.Error() != "server error (HTTP 500)" {
		t.Errorf("error = %v, want generic fallback", err)
	}
}

func TestClientNotFoundHelper(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Barang tidak ditemukan"}`))
	})
	c, _ := newTestClient(t, handler, &fakeSession{})

	_, err := c.Assets().Get(context.Background(), 999)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestLoginNormalizesRole(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok","user":{"id":1,"username":"admin","role":"UserRole.ADMIN"}}`))
	})
	c, _ := newTestClient(t, handler, &fakeSession{})

	sess, err := c.Users().Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", sess.User.Role)
	}
}
