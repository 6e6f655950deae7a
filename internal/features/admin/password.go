// Package admin — password.go: хеши Argon2id для пароля админки и токены сессий.
package admin

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"
)

// argonParams — параметры из строки хеша $argon2id$v=19$m=..,t=..,p=..$salt$hash.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// Параметры для новых хешей.
var defaultParams = argonParams{memory: 64 * 1024, time: 3, threads: 2}

const (
	saltLen = 16
	keyLen  = 32
)

var errBadHash = errors.New("некорректный формат хеша Argon2id")

func parseArgon2id(encoded string) (argonParams, error) {
	var p argonParams
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, errBadHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, fmt.Errorf("%w: версия %q", errBadHash, parts[2])
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, fmt.Errorf("%w: %v", errBadHash, err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: соль: %v", errBadHash, err)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, fmt.Errorf("%w: ключ: %v", errBadHash, err)
	}
	return p, nil
}

func (p argonParams) encode() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

// verifyArgon2id сравнивает пароль с хешем в постоянном времени.
// Битый хеш логируется и считается несовпадением.
func verifyArgon2id(password, encodedHash string) bool {
	p, err := parseArgon2id(encodedHash)
	if err != nil {
		log.WithError(err).Error("ADMIN_PASSWORD_HASH не разобран")
		return false
	}
	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(computed, p.key) == 1
}

// hashArgon2id хеширует пароль с заданной солью параметрами по умолчанию.
func hashArgon2id(password string, salt []byte) string {
	p := defaultParams
	p.salt = salt
	p.key = argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, keyLen)
	return p.encode()
}

// HashPassword кодирует пароль со случайной солью для ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("ошибка генерации соли: %w", err)
	}
	return hashArgon2id(password, salt), nil
}

// generateSecureToken — 32 случайных байта в base64url для X-Admin-Token.
func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("ошибка генерации токена: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
