package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestCircuitBreaker_ExecuteSuccess(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.(string) != "ok" {
		t.Errorf("result = %v, want ok", result)
	}
	if cb.IsOpen() {
		t.Error("breaker open after a single success")
	}
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cfg := Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
	cb := New(cfg)

	failing := func() (interface{}, error) {
		return nil, errors.New("provider down")
	}

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(failing)
	}

	if !cb.IsOpen() {
		t.Fatalf("breaker state = %v, want open", cb.State())
	}

	// Open circuit rejects without invoking the function.
	_, err := cb.Execute(func() (interface{}, error) {
		t.Fatal("function called while circuit open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() error = %v, want ErrOpenState", err)
	}
}

func TestCircuitBreaker_BelowMinRequestsStaysClosed(t *testing.T) {
	cfg := DefaultConfig("min-requests")
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("boom")
		})
	}

	if cb.IsOpen() {
		t.Error("breaker tripped below the minimum request count")
	}
}
