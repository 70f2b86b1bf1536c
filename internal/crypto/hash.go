package crypto

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// Argon2Params holds the argon2id cost parameters.
type Argon2Params struct {
	Time    uint32 // количество итераций (time cost)
	Memory  uint32 // объем памяти в KB
	Threads uint8  // количество параллельных потоков
	KeyLen  uint32 // длина выходного ключа в байтах
}

// DefaultArgon2Params returns the production cost parameters (64MB, 1 pass, 4 lanes).
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
	}
}

// PasswordHasher derives and verifies password digests with argon2id.
// Hash is CPU and memory bound; callers should not hold locks across it.
type PasswordHasher struct {
	params Argon2Params
}

// NewPasswordHasher creates a hasher with the given parameters.
func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash derives a hex-encoded digest of password concatenated with salt.
// The result is deterministic for a given (password, salt) pair.
func (h *PasswordHasher) Hash(password, salt string) string {
	return hex.EncodeToString(h.derive(password, salt))
}

// Verify reports whether password matches digest under salt.
// A malformed digest yields false.
func (h *PasswordHasher) Verify(password, salt, digest string) bool {
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) != int(h.params.KeyLen) {
		return false
	}

	got := h.derive(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *PasswordHasher) derive(password, salt string) []byte {
	input := []byte(password + salt)
	return argon2.IDKey(input, []byte(salt), h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
}
