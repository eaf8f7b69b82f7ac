package exceptions_test

import (
	"errors"
	"fmt"
	"testing"

	"philcali.me/inventory/internal/exceptions"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"NotFound", exceptions.NotFound("Item", "abc"), 404},
		{"MalformedId", exceptions.MalformedId("Item", "abc"), 404},
		{"NotModified", exceptions.NotModified("Item", "abc"), 304},
		{"Conflict", exceptions.Conflict("Item", "abc"), 409},
		{"InvalidInput", exceptions.InvalidInput("bad"), 400},
		{"Unprocessable", exceptions.Unprocessable("bad"), 422},
		{"InternalServer", exceptions.InternalServer("boom"), 500},
		{"Wrapped", fmt.Errorf("lookup: %w", exceptions.NotFound("Item", "abc")), 404},
		{"Unclassified", errors.New("connection reset"), 500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if code := exceptions.StatusCode(c.err); code != c.expected {
				t.Errorf("expected %d, got %d for %v", c.expected, code, c.err)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	if msg := exceptions.NotFound("Item", "123").Error(); msg != "Item with ID 123 not found" {
		t.Errorf("unexpected not found message: %s", msg)
	}
	if msg := exceptions.NotModified("Item", "123").Error(); msg != "Item with ID 123 did not change" {
		t.Errorf("unexpected not modified message: %s", msg)
	}
}
