package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCheckInCodeRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rsvpID := uuid.New()
	userID := uuid.New()
	code := CheckInCode(rsvpID, userID)

	gotRSVP, gotUser, err := ParseCheckInCode(code)
	if err != nil {
		t.Fatalf("expected valid code, got %v", err)
	}
	if gotRSVP != rsvpID || gotUser != userID {
		t.Fatalf("ids do not round-trip: %s %s", gotRSVP, gotUser)
	}
}

func TestCheckInCodeTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	code := CheckInCode(uuid.New(), uuid.New())

	// Swap in a different RSVP id while keeping the original signature.
	parts := strings.Split(code, "|")
	parts[0] = uuid.New().String()
	if _, _, err := ParseCheckInCode(strings.Join(parts, "|")); err == nil {
		t.Fatal("tampered code must be rejected")
	}

	if _, _, err := ParseCheckInCode("not-a-code"); err == nil {
		t.Fatal("malformed code must be rejected")
	}
}

func TestCheckInCodeSecretMismatch(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	code := CheckInCode(uuid.New(), uuid.New())

	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, err := ParseCheckInCode(code); err == nil {
		t.Fatal("code signed under a different secret must be rejected")
	}
}
