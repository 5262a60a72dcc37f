package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// CheckInCode builds the signed payload embedded in an RSVP's QR image. The
// HMAC binds the RSVP to its user so a code cannot be replayed for another
// attendee.
func CheckInCode(rsvpID, userID uuid.UUID) string {
	payload := rsvpID.String() + "|" + userID.String()
	return payload + "|" + sign(payload)
}

// ParseCheckInCode verifies the signature and returns the embedded ids.
func ParseCheckInCode(code string) (rsvpID, userID uuid.UUID, err error) {
	parts := strings.Split(code, "|")
	if len(parts) != 3 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid check-in code format")
	}
	payload := parts[0] + "|" + parts[1]
	if !hmac.Equal([]byte(sign(payload)), []byte(parts[2])) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("check-in code signature mismatch")
	}
	rsvpID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid RSVP id in check-in code")
	}
	userID, err = uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id in check-in code")
	}
	return rsvpID, userID, nil
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(os.Getenv("JWT_SECRET")))
	mac.Write([]byte(payload))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
