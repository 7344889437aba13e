package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"review-catalogue-api/models"
)

// ConfirmationCodes issues and verifies signup confirmation codes. A code
// is an HMAC over the user's identity, their per-user secret and a state
// fingerprint (UpdatedAt), so any persisted change to the user invalidates
// every previously issued code. Codes expire after ttl.
type ConfirmationCodes struct {
	secret []byte
	ttl    time.Duration
}

func NewConfirmationCodes(secret []byte, ttl time.Duration) *ConfirmationCodes {
	return &ConfirmationCodes{secret: secret, ttl: ttl}
}

func (g *ConfirmationCodes) Make(user *models.User) string {
	return g.MakeAt(user, time.Now())
}

// MakeAt issues a code bound to the user's current state and the given
// issue time. Format: "<issue-ts-hex>-<mac-prefix-hex>".
func (g *ConfirmationCodes) MakeAt(user *models.User, now time.Time) string {
	ts := now.Unix()
	return fmt.Sprintf("%x-%s", ts, g.mac(user, ts))
}

func (g *ConfirmationCodes) Check(user *models.User, code string) bool {
	return g.CheckAt(user, code, time.Now())
}

// CheckAt verifies a code against the user's current persisted state.
func (g *ConfirmationCodes) CheckAt(user *models.User, code string, now time.Time) bool {
	tsPart, macPart, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 16, 64)
	if err != nil {
		return false
	}

	issued := time.Unix(ts, 0)
	if issued.After(now) || now.Sub(issued) > g.ttl {
		return false
	}

	return hmac.Equal([]byte(g.mac(user, ts)), []byte(macPart))
}

func (g *ConfirmationCodes) mac(user *models.User, ts int64) string {
	h := hmac.New(sha256.New, g.secret)
	// Microsecond precision: the store may truncate finer timestamps, and
	// the fingerprint must survive a persistence round trip.
	fmt.Fprintf(h, "%s|%s|%d|%d", user.Username, user.ConfirmationSecret, user.UpdatedAt.UnixMicro(), ts)
	return hex.EncodeToString(h.Sum(nil)[:10])
}
