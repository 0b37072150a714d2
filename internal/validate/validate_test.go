package validate

import "testing"

func TestRequired(t *testing.T) {
	err := Required(Field{"name", "Ram"}, Field{"email", "  "}, Field{"phone", ""})
	if err == nil || err.Error() != "email is required" {
		t.Fatalf("expected first blank field reported, got %v", err)
	}
	if err := Required(Field{"name", "Ram"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEmailAndPhone(t *testing.T) {
	good := []string{"sita@example.com", "a.b+c@farm.com.np"}
	for _, e := range good {
		if err := Email(e); err != nil {
			t.Fatalf("%q should be valid: %v", e, err)
		}
	}
	bad := []string{"", "sita", "sita@", "sita@example"}
	for _, e := range bad {
		if err := Email(e); err == nil {
			t.Fatalf("%q should be invalid", e)
		}
	}

	if err := Phone("+977 98-1234-5678"); err != nil {
		t.Fatalf("formatted phone should be valid: %v", err)
	}
	if err := Phone("12ab"); err == nil {
		t.Fatalf("expected invalid phone")
	}
}

func TestPasswordRules(t *testing.T) {
	if err := Password("12345"); err == nil {
		t.Fatalf("5 characters should be too short")
	}
	if err := Password("123456"); err != nil {
		t.Fatalf("6 characters should pass: %v", err)
	}
	if err := PasswordsMatch("secret1", "secret2"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestRatingQuantityFirst(t *testing.T) {
	for _, r := range []int{0, 6, -1} {
		if Rating(r) == nil {
			t.Fatalf("rating %d should be rejected", r)
		}
	}
	if Rating(5) != nil || Rating(1) != nil {
		t.Fatalf("bounds should be accepted")
	}
	if Quantity(0) == nil {
		t.Fatalf("zero quantity should be rejected")
	}
	err := First(nil, Quantity(-2), Rating(9))
	if err == nil || err.Error() != "quantity must be greater than zero" {
		t.Fatalf("expected first error, got %v", err)
	}
}
