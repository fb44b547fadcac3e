package client

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Carcandyx/baby-steps-client/client/inflight"
	"github.com/Carcandyx/baby-steps-client/client/internal/api"
	"github.com/Carcandyx/baby-steps-client/client/session"
)

// Version is sent in the User-Agent header.
const Version = "0.3.0"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL        string
	http           *http.Client
	session        *session.Store
	onUnauthorized func()
	pending        *inflight.Set
	req            *api.Requester

	// set by options, applied in New after all options ran
	timeout time.Duration
	debug   bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the backend at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		pending: inflight.New(),
		debug:   debugLoggingRequested(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	if c.session == nil {
		c.session = session.New(session.NewMemoryStorage())
	}

	c.wrapTransport()

	c.req = &api.Requester{
		BaseURL:        c.baseURL,
		HTTP:           c.http,
		Session:        c.session,
		OnUnauthorized: c.handleUnauthorized,
	}
	return c, nil
}

// wrapTransport layers debug dumps, User-Agent and metrics on top of
// whatever transport the options configured.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	c.http.Transport = instrumentTransport(&userAgentTransport{base: base, agent: "baby-steps-client/" + Version})
}

// userAgentTransport wraps an http.RoundTripper to set the User-Agent header.
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(cloned)
}

func (c *Client) handleUnauthorized() {
	sessionInvalidationsTotal.Inc()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// Session returns the store holding the token and cached profile.
func (c *Client) Session() *session.Store { return c.session }

// BaseURL returns the backend URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Login signs in and stores the session. Failures are *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := api.Login(ctx, c.req, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Signup registers a user and stores the session. Failures are *AuthError.
func (c *Client) Signup(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	resp, err := api.Signup(ctx, c.req, SignupRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the local session. The backend is not contacted.
func (c *Client) Logout() { c.session.Clear() }

// IsAuthenticated reports whether a token is stored.
func (c *Client) IsAuthenticated() bool { return c.session.IsAuthenticated() }

// VerifyToken reports whether a token is stored. It makes no network call;
// an expired token surfaces as a 401 on the next request.
func (c *Client) VerifyToken() bool { return c.session.IsAuthenticated() }

// CurrentUser returns the profile cached at login, or nil.
func (c *Client) CurrentUser() *User { return c.session.User() }

// --------------------------------------------------------------------
// Baby operations - delegated to internal/api
// --------------------------------------------------------------------

// ListBabies returns the babies of the signed-in user.
func (c *Client) ListBabies(ctx context.Context) ([]Baby, error) {
	return api.ListBabies(ctx, c.req)
}

// GetBaby retrieves a baby by ID.
func (c *Client) GetBaby(ctx context.Context, babyID string) (*Baby, error) {
	return api.GetBaby(ctx, c.req, babyID)
}

// CreateBaby creates a baby.
func (c *Client) CreateBaby(ctx context.Context, req CreateBabyRequest) (*Baby, error) {
	return api.CreateBaby(ctx, c.req, req)
}

// DeleteBaby deletes a baby.
func (c *Client) DeleteBaby(ctx context.Context, babyID string) error {
	return api.DeleteBaby(ctx, c.req, babyID)
}

// --------------------------------------------------------------------
// Task operations - delegated to internal/api
// --------------------------------------------------------------------

// ListTasksForBaby returns the tasks of one baby.
func (c *Client) ListTasksForBaby(ctx context.Context, babyID string) ([]Task, error) {
	return api.ListTasksForBaby(ctx, c.req, babyID)
}

// ListAllTasks returns every task of the signed-in user.
func (c *Client) ListAllTasks(ctx context.Context) ([]Task, error) {
	return api.ListAllTasks(ctx, c.req)
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	return api.CreateTask(ctx, c.req, req)
}

// SetTaskCompletion sets a task's completed flag.
func (c *Client) SetTaskCompletion(ctx context.Context, taskID string, completed bool, babyID string) (*Task, error) {
	return api.SetTaskCompletion(ctx, c.req, taskID, completed, babyID)
}

// ToggleTask flips task.Completed on the backend. While a toggle for the
// same task is running, further toggles fail with ErrInFlight.
func (c *Client) ToggleTask(ctx context.Context, task Task, babyID string) (*Task, error) {
	if !c.pending.Begin(task.ID) {
		return nil, ErrInFlight
	}
	defer c.pending.Done(task.ID)
	return c.SetTaskCompletion(ctx, task.ID, !task.Completed, babyID)
}

// Updating reports whether a toggle for taskID is in progress.
func (c *Client) Updating(taskID string) bool { return c.pending.Has(taskID) }

// UpdatingTasks returns the IDs of tasks with a toggle in progress.
func (c *Client) UpdatingTasks() []string { return c.pending.IDs() }
