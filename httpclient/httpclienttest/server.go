// Package httpclienttest provides a recording HTTP backend for client tests.
package httpclienttest

import (
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fetchkit/server"
)

// Server is an httptest server running the echo routes. Every request is
// recorded in arrival order.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []server.Echo
}

// New starts a recording server. routes may add handlers before the echo
// fallback is installed; it is closed when the test ends.
func New(t testing.TB, routes ...func(r *gin.Engine)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{}
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		s.record(server.Capture(c))
		c.Next()
	})
	for _, fn := range routes {
		fn(engine)
	}
	server.RegisterEcho(engine, nil)

	s.Server = httptest.NewServer(engine)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(e server.Echo) {
	s.mu.Lock()
	s.requests = append(s.requests, e)
	s.mu.Unlock()
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []server.Echo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]server.Echo(nil), s.requests...)
}

// Count is the number of requests received.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Last returns the most recent request. It fails the test when there is none.
func (s *Server) Last(t testing.TB) server.Echo {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("httpclienttest: no requests recorded")
	}
	return s.requests[len(s.requests)-1]
}
