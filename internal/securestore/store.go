// Package securestore persists small string values in an encrypted file.
package securestore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// LastResumeIDKey holds the ID of the most recently created résumé.
const LastResumeIDKey = "lastResumeId"

// PassphraseEnv names the environment variable holding the store passphrase.
const PassphraseEnv = "RESUME_STORE_PASSPHRASE"

const (
	envelopeVersion = 1
	kdfArgon2id     = "argon2id"
	kdfKeyFile      = "keyfile"

	saltSize      = 16
	argonTime     = 1
	argonMemory   = 64 * 1024
	argonThreads  = 4
	keySize       = chacha20poly1305.KeySize
	fileMode      = 0o600
	directoryMode = 0o700
)

// ErrDecrypt is returned when the store cannot be decrypted with the configured key.
var ErrDecrypt = errors.New("failed to decrypt secure store")

// ErrKeyLost is returned when a key-file store exists but its key file does not.
var ErrKeyLost = errors.New("secure store key file is missing")

// Options selects how the encryption key is obtained.
type Options struct {
	// Passphrase derives the key with Argon2id. Takes precedence over KeyPath.
	Passphrase string
	// KeyPath is the random key file used when no passphrase is given.
	// Defaults to the store path with a ".key" suffix.
	KeyPath string
}

// OptionsFromEnv returns options reading the passphrase from PassphraseEnv.
func OptionsFromEnv() Options {
	return Options{Passphrase: os.Getenv(PassphraseEnv)}
}

// Store is an encrypted string map backed by a single file.
type Store struct {
	mu         sync.Mutex
	path       string
	passphrase string
	key        []byte
}

type envelope struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"`
	Salt       []byte `json:"salt,omitempty"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DefaultPath returns the store location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "resume-builder", "store.enc"), nil
}

// Open prepares a store at path. The file itself is created on first write.
func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("secure store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), directoryMode); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &Store{path: path, passphrase: opts.Passphrase}
	if s.passphrase != "" {
		return s, nil
	}

	keyPath := opts.KeyPath
	if keyPath == "" {
		keyPath = path + ".key"
	}
	if _, err := os.Stat(keyPath); errors.Is(err, os.ErrNotExist) {
		switch storedKDF(path) {
		case kdfKeyFile:
			// A fresh key could never decrypt the existing file.
			return nil, fmt.Errorf("%w: %s is missing; delete %s to start over", ErrKeyLost, keyPath, path)
		case kdfArgon2id:
			return s, nil
		}
	}

	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}
	s.key = key
	return s, nil
}

// storedKDF returns the key derivation recorded in the store file at path,
// or "" when the file is missing or unreadable.
func storedKDF(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.KDF
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secure store: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse secure store: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported secure store version %d", env.Version)
	}

	key, err := s.keyFor(env.KDF, env.Salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrDecrypt
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, []byte(env.KDF))
	if err != nil {
		return nil, ErrDecrypt
	}

	values := map[string]string{}
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, fmt.Errorf("failed to parse secure store contents: %w", err)
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode secure store contents: %w", err)
	}

	env := envelope{Version: envelopeVersion, KDF: kdfKeyFile}
	if s.passphrase != "" {
		env.KDF = kdfArgon2id
		env.Salt = make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, env.Salt); err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
	}

	key, err := s.keyFor(env.KDF, env.Salt)
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("failed to initialize cipher: %w", err)
	}
	env.Nonce = make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, env.Nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	env.Ciphertext = aead.Seal(nil, env.Nonce, plaintext, []byte(env.KDF))

	encoded, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode secure store: %w", err)
	}
	return writeFileAtomic(s.path, encoded)
}

func (s *Store) keyFor(kdf string, salt []byte) ([]byte, error) {
	switch kdf {
	case kdfArgon2id:
		if s.passphrase == "" {
			return nil, fmt.Errorf("secure store is passphrase protected; set %s", PassphraseEnv)
		}
		if len(salt) != saltSize {
			return nil, ErrDecrypt
		}
		return argon2.IDKey([]byte(s.passphrase), salt, argonTime, argonMemory, argonThreads, keySize), nil
	case kdfKeyFile:
		if s.key == nil {
			return nil, fmt.Errorf("secure store uses a key file but a passphrase was configured")
		}
		return s.key, nil
	default:
		return nil, fmt.Errorf("unknown secure store key derivation %q", kdf)
	}
}

func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != keySize {
			return nil, fmt.Errorf("key file %s has invalid length %d", path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key = make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if errors.Is(err, os.ErrExist) {
		// Another process created it first.
		return loadOrCreateKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close key file: %w", err)
	}
	return key, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write secure store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync secure store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close secure store: %w", err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set secure store permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace secure store: %w", err)
	}
	return nil
}
