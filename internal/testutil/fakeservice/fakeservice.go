// Package fakeservice runs an in-memory entity service speaking the same
// REST surface as the real ones: GET /:id, GET ?limit&offset, POST, PUT /:id,
// DELETE /:id. Users additionally get POST /login and POST /register.
package fakeservice

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

type Record = map[string]any

// Call is one request observed by the service.
type Call struct {
	Method string
	ID     string
	Token  string
	Body   Record
}

type Service struct {
	Name string

	server *httptest.Server

	mu      sync.Mutex
	records map[string]Record
	order   []string
	seq     int
	calls   []Call
	failing map[string]int
	onWrite func(Call)
}

// New starts a fake service and registers its shutdown with t.
func New(t testing.TB, name string) *Service {
	s := &Service{
		Name:    name,
		records: map[string]Record{},
		failing: map[string]int{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.failures)
	e.GET("/", s.handleList)
	e.GET("/:id", s.handleGet)
	e.POST("/", s.handleCreate)
	e.PUT("/:id", s.handleUpdate)
	e.DELETE("/:id", s.handleDelete)
	if name == "users" {
		e.POST("/login", s.handleLogin)
		e.POST("/register", s.handleRegister)
	}

	s.server = httptest.NewServer(e)
	t.Cleanup(s.server.Close)
	return s
}

func (s *Service) URL() string {
	return s.server.URL
}

// Seed stores a record under id, overwriting any previous one.
func (s *Service) Seed(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(id, rec)
}

func (s *Service) store(id string, rec Record) {
	cp := Record{}
	for k, v := range rec {
		cp[k] = v
	}
	cp["_id"] = id
	if _, ok := s.records[id]; !ok {
		s.order = append(s.order, id)
	}
	s.records[id] = cp
}

// Get returns a copy of the stored record, or nil.
func (s *Service) Get(id string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	cp := Record{}
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}

// Remove deletes a record behind the gateway's back.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

func (s *Service) remove(id string) {
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// FailNext makes the next n requests with the given method answer 500.
func (s *Service) FailNext(method string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[method] = n
}

// OnWrite registers a hook run after every successful write.
func (s *Service) OnWrite(fn func(Call)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = fn
}

func (s *Service) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Service) CountCalls(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Service) failures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method
		s.mu.Lock()
		n := s.failing[method]
		if n > 0 {
			s.failing[method] = n - 1
		}
		s.mu.Unlock()
		if n > 0 {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": s.Name + " unavailable"})
		}
		return next(c)
	}
}

func bearer(c echo.Context) string {
	return strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
}

func (s *Service) record(call Call, write bool) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	hook := s.onWrite
	s.mu.Unlock()
	if write && hook != nil {
		hook(call)
	}
}

func (s *Service) handleGet(c echo.Context) error {
	id := c.Param("id")
	s.record(Call{Method: http.MethodGet, ID: id}, false)

	rec := s.Get(id)
	if rec == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Service) handleList(c echo.Context) error {
	s.record(Call{Method: http.MethodGet}, false)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	s.mu.Lock()
	items := []Record{}
	for i, id := range s.order {
		if i < offset {
			continue
		}
		if limit > 0 && len(items) >= limit {
			break
		}
		items = append(items, s.records[id])
	}
	total := len(s.order)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (s *Service) handleCreate(c echo.Context) error {
	token := bearer(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	body := Record{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("%s-%d", s.Name, s.seq)
	s.store(id, body)
	rec := s.records[id]
	s.mu.Unlock()

	s.record(Call{Method: http.MethodPost, ID: id, Token: token, Body: body}, true)
	return c.JSON(http.StatusCreated, rec)
}

func (s *Service) handleUpdate(c echo.Context) error {
	id := c.Param("id")
	token := bearer(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	body := Record{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	for k, v := range body {
		rec[k] = v
	}
	out := Record{}
	for k, v := range rec {
		out[k] = v
	}
	s.mu.Unlock()

	s.record(Call{Method: http.MethodPut, ID: id, Token: token, Body: body}, true)
	return c.JSON(http.StatusOK, out)
}

func (s *Service) handleDelete(c echo.Context) error {
	id := c.Param("id")
	token := bearer(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		s.remove(id)
	}
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}

	s.record(Call{Method: http.MethodDelete, ID: id, Token: token}, true)
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": 1})
}

func (s *Service) handleLogin(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	s.record(Call{Method: http.MethodPost, ID: "login", Body: Record{"email": body.Email}}, false)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec["email"] == body.Email && rec["password"] == body.Password {
			return c.JSON(http.StatusOK, echo.Map{"jwt": "token-" + body.Email})
		}
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Incorrect email or password"})
}

func (s *Service) handleRegister(c echo.Context) error {
	body := Record{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("%s-%d", s.Name, s.seq)
	s.store(id, body)
	rec := s.records[id]
	s.mu.Unlock()

	s.record(Call{Method: http.MethodPost, ID: id, Body: body}, true)
	return c.JSON(http.StatusCreated, rec)
}
