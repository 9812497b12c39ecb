package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PolarWolf314/rsakit/internal/configs"
	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
	"github.com/PolarWolf314/rsakit/internal/utils"
	"github.com/google/uuid"
)

const (
	PublicKeyExt  = ".pub"
	PrivateKeyExt = ".key"
	ManifestFile  = "manifest.toml"
)

// Entry describes a stored key pair.
type Entry struct {
	ID          string    `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Bits        int       `toml:"bits" json:"bits"`
	Fingerprint string    `toml:"fingerprint" json:"fingerprint"`
	CreatedAt   time.Time `toml:"created_at" json:"created_at"`
}

type manifest struct {
	Keys map[string]Entry `toml:"keys"`
}

// Store keeps key pairs as text files in one directory:
// <name>.pub, <name>.key and a manifest.toml with metadata.
type Store struct {
	Dir string

	mu sync.Mutex
}

// New returns a store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// PublicKeyPath returns where the public half of name is stored.
func (s *Store) PublicKeyPath(name string) string {
	return filepath.Join(s.Dir, name+PublicKeyExt)
}

// PrivateKeyPath returns where the private half of name is stored.
func (s *Store) PrivateKeyPath(name string) string {
	return filepath.Join(s.Dir, name+PrivateKeyExt)
}

// Save writes both halves of pair under name and records it in the manifest.
// Each file is written to a temporary file and renamed into place. If a later
// step fails, files that did not exist before the call are removed again, so a
// failed Save never leaves a new half-written pair behind.
//
// Returns ErrInvalidKeyName if name is not a valid key name.
// Returns ErrInvalidKey if the pair is not valid.
// Returns ErrKeyExists if name is in the manifest or either key file is on
// disk, and overwrite is false.
func (s *Store) Save(name string, pair *rsakey.KeyPair, overwrite bool) (*Entry, error) {
	if !utils.IsValidKeyName(name) {
		return nil, fmt.Errorf("saving key %q: %w", name, kerrors.ErrInvalidKeyName)
	}
	if pair == nil || !pair.Valid() {
		return nil, fmt.Errorf("saving key %s: %w", name, kerrors.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	_, inManifest := m.Keys[name]
	privatePath := s.PrivateKeyPath(name)
	publicPath := s.PublicKeyPath(name)
	privateExisted, err := fileExists(privatePath)
	if err != nil {
		return nil, err
	}
	publicExisted, err := fileExists(publicPath)
	if err != nil {
		return nil, err
	}
	if !overwrite && (inManifest || privateExisted || publicExisted) {
		return nil, fmt.Errorf("saving key %s: %w", name, kerrors.ErrKeyExists)
	}

	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key store directory at %s: %w", s.Dir, err)
	}

	var written []string
	rollback := func() {
		for _, path := range written {
			_ = os.Remove(path)
		}
	}

	if err := writeKeyFile(privatePath, pair.Private, 0600); err != nil {
		return nil, fmt.Errorf("failed to write private key to %s: %w", privatePath, err)
	}
	if !privateExisted {
		written = append(written, privatePath)
	}
	// #nosec G306 -- public keys are meant to be shared.
	if err := writeKeyFile(publicPath, pair.Public, 0644); err != nil {
		rollback()
		return nil, fmt.Errorf("failed to write public key to %s: %w", publicPath, err)
	}
	if !publicExisted {
		written = append(written, publicPath)
	}

	entry := Entry{
		ID:          uuid.New().String(),
		Name:        name,
		Bits:        pair.Public.BitLen(),
		Fingerprint: pair.Public.Fingerprint(),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	m.Keys[name] = entry
	if err := s.saveManifest(m); err != nil {
		rollback()
		return nil, err
	}
	return &entry, nil
}

// Exists reports whether name has a manifest entry or either key file on disk.
func (s *Store) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return false, err
	}
	if _, ok := m.Keys[name]; ok {
		return true, nil
	}
	for _, path := range []string{s.PrivateKeyPath(name), s.PublicKeyPath(name)} {
		exists, err := fileExists(path)
		if err != nil || exists {
			return exists, err
		}
	}
	return false, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return true, nil
}

// writeKeyFile writes key to a temporary file next to path and renames it
// into place, so path holds either the old key or the new one.
func writeKeyFile(path string, key rsakey.Key, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(key.String() + "\n"); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadPublic reads the public half of name.
func (s *Store) LoadPublic(name string) (rsakey.Key, error) {
	return s.loadKey(name, s.PublicKeyPath(name))
}

// LoadPrivate reads the private half of name.
func (s *Store) LoadPrivate(name string) (rsakey.Key, error) {
	return s.loadKey(name, s.PrivateKeyPath(name))
}

// LoadPair reads both halves of name.
// Returns ErrKeyMismatch if they do not share a modulus.
func (s *Store) LoadPair(name string) (*rsakey.KeyPair, error) {
	public, err := s.LoadPublic(name)
	if err != nil {
		return nil, err
	}
	private, err := s.LoadPrivate(name)
	if err != nil {
		return nil, err
	}
	pair := &rsakey.KeyPair{Public: public, Private: private}
	if !pair.Valid() {
		return nil, fmt.Errorf("loading key pair %s: %w", name, kerrors.ErrKeyMismatch)
	}
	return pair, nil
}

func (s *Store) loadKey(name, path string) (rsakey.Key, error) {
	if !utils.IsValidKeyName(name) {
		return rsakey.Key{}, fmt.Errorf("loading key %q: %w", name, kerrors.ErrInvalidKeyName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return rsakey.Key{}, fmt.Errorf("loading key %s from %s: %w", name, path, kerrors.ErrKeyNotFound)
	}
	if err != nil {
		return rsakey.Key{}, fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	key, err := rsakey.ParseKey(strings.TrimSpace(string(data)))
	if err != nil {
		return rsakey.Key{}, fmt.Errorf("loading key %s from %s: %w", name, path, err)
	}
	return key, nil
}

// PrivateKeyPermissions returns the permission bits of name's private key file
// and whether they allow access by group or others.
func (s *Store) PrivateKeyPermissions(name string) (os.FileMode, bool, error) {
	info, err := os.Stat(s.PrivateKeyPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, fmt.Errorf("checking key %s: %w", name, kerrors.ErrKeyNotFound)
	}
	if err != nil {
		return 0, false, err
	}
	mode := info.Mode().Perm()
	return mode, mode&0077 != 0, nil
}

// Get returns the manifest entry for name.
func (s *Store) Get(name string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	entry, ok := m.Keys[name]
	if !ok {
		return nil, fmt.Errorf("looking up key %s: %w", name, kerrors.ErrKeyNotFound)
	}
	return &entry, nil
}

// List returns all manifest entries sorted by name.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(m.Keys))
	for _, entry := range m.Keys {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Names returns the names of all stored keys.
func (s *Store) Names() ([]string, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names, nil
}

// Remove deletes both key files of name and its manifest entry.
// Returns ErrKeyNotFound if the store has no such key.
func (s *Store) Remove(name string) ([]string, error) {
	if !utils.IsValidKeyName(name) {
		return nil, fmt.Errorf("removing key %q: %w", name, kerrors.ErrInvalidKeyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	_, inManifest := m.Keys[name]

	var removed []string
	for _, path := range []string{s.PrivateKeyPath(name), s.PublicKeyPath(name)} {
		err := os.Remove(path)
		if err == nil {
			removed = append(removed, path)
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	if !inManifest && len(removed) == 0 {
		return nil, fmt.Errorf("removing key %s: %w", name, kerrors.ErrKeyNotFound)
	}
	if inManifest {
		delete(m.Keys, name)
		if err := s.saveManifest(m); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.Dir, ManifestFile)
}

func (s *Store) loadManifest() (*manifest, error) {
	m := &manifest{Keys: make(map[string]Entry)}

	path := s.manifestPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err := configs.LoadTOML(path, m); err != nil {
		return nil, fmt.Errorf("failed to load key manifest %s: %w", path, err)
	}
	if m.Keys == nil {
		m.Keys = make(map[string]Entry)
	}
	return m, nil
}

func (s *Store) saveManifest(m *manifest) error {
	if err := configs.SaveTOML(s.manifestPath(), m); err != nil {
		return fmt.Errorf("failed to save key manifest: %w", err)
	}
	return nil
}
