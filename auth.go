package inkwell

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 600_000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash of the password, encoded
// as "pbkdf2:sha256:<iterations>$<salt>$<hash>". The plaintext is never stored.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s",
		pbkdf2Iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword recomputes the hash for password using the parameters stored
// in encoded and compares in constant time.
func VerifyPassword(encoded, password string) bool {
	method, rest, ok := strings.Cut(encoded, "$")
	if !ok {
		return false
	}
	saltHex, keyHex, ok := strings.Cut(rest, "$")
	if !ok {
		return false
	}
	parts := strings.Split(method, ":")
	if len(parts) != 3 || parts[0] != "pbkdf2" || parts[1] != "sha256" {
		return false
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// --- Session ---

const sessionName = "inkwell_session"

const sessionUserKey = "user_id"

// signIn records the user id in the session cookie.
func signIn(c echo.Context, userID int64) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessionUserKey] = userID
	return sess.Save(c.Request(), c.Response())
}

// signOut expires the session cookie.
func signOut(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// sessionUserID returns the signed-in user id, if any.
func sessionUserID(c echo.Context) (int64, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[sessionUserKey].(int64)
	return id, ok
}

// --- Flash messages ---

// addFlash queues a one-time message shown on the next rendered page.
func addFlash(c echo.Context, msg string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(msg)
	return sess.Save(c.Request(), c.Response())
}

// takeFlashes drains and returns queued flash messages.
func takeFlashes(c echo.Context) []string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Draining flashes mutates the session, so it must be saved again.
	_ = sess.Save(c.Request(), c.Response())
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
