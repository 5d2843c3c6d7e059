package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// mapStorage is a fiber.Storage shared by several limiters, like Redis.
type mapStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapStorage() *mapStorage { return &mapStorage{data: make(map[string][]byte)} }

func (s *mapStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *mapStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), val...)
	return nil
}

func (s *mapStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *mapStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *mapStorage) Close() error { return nil }

func TestRateLimit_ScopesShareStorageIndependently(t *testing.T) {
	store := newMapStorage()
	app := fiber.New()
	api := app.Group("/api", RateLimit("api", 60, store))
	api.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	auth := api.Group("/auth", RateLimit("auth", 10, store))
	auth.Post("/login", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 1; i <= 10; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/auth/login", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("auth request %d of 10 rejected with %d", i, resp.StatusCode)
		}
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/api/auth/login", nil))
	if err != nil {
		t.Fatalf("request 11: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("auth request 11 should be limited, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/ping", nil))
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("general limit consumed by auth traffic: %d", resp.StatusCode)
	}
}
