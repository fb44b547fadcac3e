// Package fakebackend is an in-memory stand-in for the baby-steps REST API,
// used by end-to-end tests of the client and the CLI.
//
// It mirrors the real backend's wire format: Mongo-style "_id" fields and
// {error, message, statusCode} error bodies.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type user struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	password  string
}

type baby struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
	Gender    string    `json:"gender"`
	Weight    string    `json:"weight,omitempty"`
	Height    string    `json:"height,omitempty"`
	owner     string
}

type task struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Completed    bool      `json:"completed"`
	DeadlineDate time.Time `json:"deadlineDate"`
	BabyID       string    `json:"babyId"`
	owner        string
}

// Server is an httptest server speaking the backend API.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	users  map[string]*user // by email
	tokens map[string]string
	babies map[string]*baby
	tasks  map[string]*task

	requests  atomic.Int64
	paths     []string
	nextToken string
}

// New starts a server. Callers must Close it.
func New() *Server {
	s := &Server{
		users:  make(map[string]*user),
		tokens: make(map[string]string),
		babies: make(map[string]*baby),
		tasks:  make(map[string]*task),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.count)
	r.HandleFunc("/auth/sign-in", s.signIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/sign-up", s.signUp).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/baby", s.listBabies).Methods(http.MethodGet)
	authed.HandleFunc("/baby", s.createBaby).Methods(http.MethodPost)
	authed.HandleFunc("/baby", s.deleteBaby).Methods(http.MethodDelete)
	authed.HandleFunc("/baby/{id}", s.getBaby).Methods(http.MethodGet)
	authed.HandleFunc("/task", s.listTasks).Methods(http.MethodGet)
	authed.HandleFunc("/task", s.createTask).Methods(http.MethodPost)
	authed.HandleFunc("/task/baby/{id}", s.listBabyTasks).Methods(http.MethodGet)
	authed.HandleFunc("/task/{id}", s.updateTask).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found", "Cannot find route")
	})
	return r
}

// Requests returns how many requests the server has received.
func (s *Server) Requests() int64 { return s.requests.Load() }

// Paths returns "METHOD /path" for every request received, in order.
func (s *Server) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// AddUser registers a user directly and returns its ID.
func (s *Server) AddUser(firstName, lastName, email, password string) string {
	return s.AddUserWithID(uuid.NewString(), firstName, lastName, email, password)
}

// AddUserWithID is AddUser with a caller-chosen ID.
func (s *Server) AddUserWithID(id, firstName, lastName, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = &user{ID: id, FirstName: firstName, LastName: lastName, Email: email, password: password}
	return id
}

// NextToken makes the next successful sign-in or sign-up return tok.
func (s *Server) NextToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextToken = tok
}

// RevokeTokens invalidates every issued token, so the next authenticated
// request gets a 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		s.paths = append(s.paths, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		userID, valid := s.tokens[tok]
		s.mu.Unlock()
		if !ok || !valid {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}
		r.Header.Set("X-Fake-User", userID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueToken(userID string) string {
	tok := s.nextToken
	s.nextToken = ""
	if tok == "" {
		tok = uuid.NewString()
	}
	s.tokens[tok] = userID
	return tok
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(req.Email)]
	if !ok || u.password != req.Password {
		writeError(w, http.StatusBadRequest, "invalid_credentials", "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": s.issueToken(u.ID), "user": u})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	var problems []string
	if req.FirstName == "" {
		problems = append(problems, "firstName should not be empty")
	}
	if !strings.Contains(req.Email, "@") {
		problems = append(problems, "email must be an email")
	}
	if len(req.Password) < 8 {
		problems = append(problems, "password must be longer than or equal to 8 characters")
	}
	if len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Bad Request", "message": problems, "statusCode": http.StatusBadRequest})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[strings.ToLower(req.Email)]; exists {
		writeError(w, http.StatusConflict, "email_taken", "Email already registered")
		return
	}
	u := &user{ID: uuid.NewString(), FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, password: req.Password}
	s.users[strings.ToLower(req.Email)] = u
	writeJSON(w, http.StatusCreated, map[string]any{"token": s.issueToken(u.ID), "user": u})
}

func (s *Server) listBabies(w http.ResponseWriter, r *http.Request) {
	owner := r.Header.Get("X-Fake-User")
	s.mu.Lock()
	out := []baby{}
	for _, b := range s.babies {
		if b.owner == owner {
			out = append(out, *b)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBaby(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var b baby
	stored, ok := s.babies[mux.Vars(r)["id"]]
	if ok {
		b = *stored
	}
	s.mu.Unlock()
	if !ok || b.owner != r.Header.Get("X-Fake-User") {
		writeError(w, http.StatusNotFound, "not_found", "Baby not found")
		return
	}
	writeJSON(w, http.StatusOK, &b)
}

func (s *Server) createBaby(w http.ResponseWriter, r *http.Request) {
	var b baby
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	if b.Name == "" || (b.Gender != "MALE" && b.Gender != "FEMALE") {
		writeError(w, http.StatusBadRequest, "Bad Request", "name and gender are required")
		return
	}
	b.ID = uuid.NewString()
	b.owner = r.Header.Get("X-Fake-User")
	stored := b
	s.mu.Lock()
	s.babies[b.ID] = &stored
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, &b)
}

func (s *Server) deleteBaby(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BabyID string `json:"babyId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.babies[req.BabyID]
	if !ok || b.owner != r.Header.Get("X-Fake-User") {
		writeError(w, http.StatusNotFound, "not_found", "Baby not found")
		return
	}
	delete(s.babies, req.BabyID)
	for id, t := range s.tasks {
		if t.BabyID == req.BabyID {
			delete(s.tasks, id)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.writeTasks(w, r.Header.Get("X-Fake-User"), "")
}

func (s *Server) listBabyTasks(w http.ResponseWriter, r *http.Request) {
	s.writeTasks(w, r.Header.Get("X-Fake-User"), mux.Vars(r)["id"])
}

func (s *Server) writeTasks(w http.ResponseWriter, owner, babyID string) {
	s.mu.Lock()
	out := []task{}
	for _, t := range s.tasks {
		if t.owner == owner && (babyID == "" || t.BabyID == babyID) {
			out = append(out, *t)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].DeadlineDate.Before(out[j].DeadlineDate) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var t task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	owner := r.Header.Get("X-Fake-User")
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.babies[t.BabyID]; !ok || b.owner != owner {
		writeError(w, http.StatusNotFound, "not_found", "Baby not found")
		return
	}
	if t.Title == "" {
		writeError(w, http.StatusBadRequest, "Bad Request", "title should not be empty")
		return
	}
	t.ID = uuid.NewString()
	t.owner = owner
	t.Completed = false
	stored := t
	s.tasks[t.ID] = &stored
	writeJSON(w, http.StatusCreated, &t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed *bool  `json:"completed"`
		BabyID    string `json:"babyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Completed == nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "completed is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[mux.Vars(r)["id"]]
	if !ok || t.owner != r.Header.Get("X-Fake-User") {
		writeError(w, http.StatusNotFound, "not_found", "Task not found")
		return
	}
	t.Completed = *req.Completed
	cp := *t
	writeJSON(w, http.StatusOK, &cp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"error": code, "message": message, "statusCode": status})
}
