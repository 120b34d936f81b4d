package env

import "testing"

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_VALUE", "   ")
	if got := Get("STOREFRONT_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("STOREFRONT_TEST_VALUE", "console")
	if got := Get("STOREFRONT_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_FLAG", "true")
	if !Bool("STOREFRONT_TEST_FLAG", false) {
		t.Fatal("expected true")
	}

	t.Setenv("STOREFRONT_TEST_FLAG", "nope")
	if !Bool("STOREFRONT_TEST_FLAG", true) {
		t.Fatal("malformed value should return fallback")
	}
}
