// Package cookie manages plain and encrypted cookies plus one-shot flash
// values. Encrypted cookies use AES-GCM with a key derived from the
// configured secret, which keeps credentials opaque to the browser.
package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrShortKey  = errors.New("cookie: secret must be at least 32 bytes")
	ErrDecrypt   = errors.New("cookie: decryption failed")
	ErrBadCipher = errors.New("cookie: ciphertext too short")
)

// Manager reads and writes cookies with shared attributes (domain, path,
// Secure, SameSite). A Manager without a secret can only handle plain
// cookies.
type Manager struct {
	secret   []byte
	domain   string
	path     string
	secure   bool
	sameSite http.SameSite
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecret enables encryption. The secret must be at least 32 bytes;
// shorter values are ignored and encrypted operations return ErrNoSecret.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= 32 {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie Domain attribute.
func WithDomain(domain string) Option {
	return func(m *Manager) { m.domain = domain }
}

// WithSecure marks cookies Secure (HTTPS only).
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithSameSite overrides the default Lax SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// New creates a Manager. Defaults: path "/", HttpOnly, SameSite=Lax.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a plain cookie value or ErrNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge follows http.Cookie semantics:
// positive = seconds, 0 = session cookie, negative = delete.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	m.setCookie(w, m.build(name, value, maxAge))
}

// Delete expires a cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	m.setCookie(w, m.build(name, "", -1))
}

// setCookie drops any Set-Cookie already queued for the same name before
// writing, so within one response the last write wins. Browsers and
// (*http.Request).Cookie otherwise disagree on which duplicate counts.
func (m *Manager) setCookie(w http.ResponseWriter, c *http.Cookie) {
	header := w.Header()
	if pending := header.Values("Set-Cookie"); len(pending) > 0 {
		kept := make([]string, 0, len(pending))
		prefix := c.Name + "="
		for _, line := range pending {
			if !strings.HasPrefix(line, prefix) {
				kept = append(kept, line)
			}
		}
		header["Set-Cookie"] = kept
	}
	http.SetCookie(w, c)
}

// GetEncrypted reads and decrypts a cookie value.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrDecrypt
	}
	plain, err := m.open(data)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

// SetEncrypted encrypts and writes a cookie value.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	sealed, err := m.seal([]byte(value))
	if err != nil {
		return err
	}
	m.setCookie(w, m.build(name, base64.RawURLEncoding.EncodeToString(sealed), maxAge))
	return nil
}

// SetFlash stores a one-shot JSON value under "flash_"+key. A second call
// with the same key before the first is read replaces it.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, "flash_"+key, string(data), 0)
}

// Flash reads a flash value into dest and deletes the cookie, so each
// flash renders at most once.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	name := "flash_" + key
	raw, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)
	return json.Unmarshal([]byte(raw), dest)
}

func (m *Manager) build(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}

func (m *Manager) aead() (cipher.AEAD, error) {
	key := sha256.Sum256(m.secret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (m *Manager) seal(plaintext []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (m *Manager) open(ciphertext []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrBadCipher
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	return aead.Open(nil, nonce, sealed, nil)
}
