package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Carcandyx/baby-steps-client/client/internal/types"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// memSession is an in-memory Session fake.
type memSession struct {
	mu     sync.Mutex
	token  string
	user   *types.User
	clears int
	setErr error
}

func (m *memSession) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memSession) SetSession(token string, user *types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.token, m.user = token, user
	return nil
}

func (m *memSession) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.user = "", nil
	m.clears++
}

// testBackend wraps an httptest server and counts the requests it served.
type testBackend struct {
	*httptest.Server
	hits atomic.Int64
}

func newTestBackend(t *testing.T, h http.HandlerFunc) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// requester builds a Requester against the backend with a logged-in session.
func (b *testBackend) requester(token string) (*Requester, *memSession) {
	s := &memSession{token: token}
	return &Requester{BaseURL: b.URL, HTTP: b.Client(), Session: s}, s
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
