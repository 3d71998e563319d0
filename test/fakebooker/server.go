/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fakebooker is an in-memory test double of the booking service API.
// It answers the way the public service does, status texts and all, so the
// client and suites can run without network access.
package fakebooker

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type Server struct {
	username string
	password string
	seedSize int

	store *store

	tokenLock sync.Mutex
	tokens    map[string]struct{}
}

type Option func(*Server)

// WithCredentials sets the accepted username and password.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithSeedSize sets how many bookings exist at start up.
func WithSeedSize(size int) Option {
	return func(s *Server) {
		s.seedSize = size
	}
}

func New(options ...Option) *Server {
	s := &Server{
		username: "admin",
		password: "password123",
		seedSize: DefaultSeedSize,
		tokens:   map[string]struct{}{},
	}

	for _, option := range options {
		option(s)
	}

	s.store = newStore(defaultSeed(s.seedSize))

	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Get("/ping", s.healthCheck)
	router.Post("/auth", s.createToken)

	router.Route("/booking", func(r chi.Router) {
		r.Get("/", s.listBookings)
		r.Post("/", s.createBooking)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getBooking)
			r.Put("/", s.requireAuth(s.updateBooking))
			r.Patch("/", s.requireAuth(s.partialUpdateBooking))
			r.Delete("/", s.requireAuth(s.deleteBooking))
		})
	})

	return router
}

func writeText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newToken() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// authorized accepts either an issued token cookie or basic auth.
func (s *Server) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie("token"); err == nil {
		s.tokenLock.Lock()
		_, ok := s.tokens[cookie.Value]
		s.tokenLock.Unlock()

		if ok {
			return true
		}
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Basic ") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
		if err == nil && string(decoded) == s.username+":"+s.password {
			return true
		}
	}

	return false
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			writeText(w, http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

func bookingID(r *http.Request) (int, error) {
	var id int

	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)

	return id, err
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusCreated)
}

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	if credentials.Username != s.username || credentials.Password != s.password {
		writeJSON(w, http.StatusOK, map[string]string{"reason": "Bad credentials"})
		return
	}

	token := newToken()

	s.tokenLock.Lock()
	s.tokens[token] = struct{}{}
	s.tokenLock.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	var f filter

	query := r.URL.Query()

	params := []struct {
		name string
		dest **string
	}{
		{"firstname", &f.FirstName},
		{"lastname", &f.LastName},
		{"checkin", &f.Checkin},
		{"checkout", &f.Checkout},
	}

	for _, param := range params {
		if err := runtime.BindQueryParameter("form", true, false, param.name, query, param.dest); err != nil {
			writeText(w, http.StatusBadRequest)
			return
		}
	}

	ids := s.store.list(&f)

	out := make([]map[string]int, len(ids))
	for i, id := range ids {
		out[i] = map[string]int{"bookingid": id}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeText(w, http.StatusNotFound)
		return
	}

	b, ok := s.store.get(id)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func decodeBooking(r *http.Request) (*booking, bool) {
	var b booking

	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		return nil, false
	}

	if b.FirstName == "" || b.LastName == "" || b.BookingDates.Checkin == "" || b.BookingDates.Checkout == "" {
		return nil, false
	}

	return &b, true
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := decodeBooking(r)
	if !ok {
		writeText(w, http.StatusInternalServerError)
		return
	}

	id := s.store.create(*b)

	writeJSON(w, http.StatusOK, map[string]any{
		"bookingid": id,
		"booking":   b,
	})
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	b, ok := decodeBooking(r)
	if !ok {
		writeText(w, http.StatusBadRequest)
		return
	}

	if !s.store.replace(id, *b) {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) partialUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	var p partialBooking

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	b, ok := s.store.patch(id, &p)
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	if !s.store.delete(id) {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	writeText(w, http.StatusCreated)
}
