package domain

import (
	// Registers sha256 so go-digest reports the algorithm as available.
	_ "crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/opencontainers/go-digest"
	"golang.org/x/mod/semver"
)

// Manifest describes the identity of a package.
type Manifest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Type        string `json:"type"`
}

// ArchiveManifest is a Manifest published in a repository index together with its archive metadata.
type ArchiveManifest struct {
	Manifest

	ArchiveSize int64  `json:"archive_size"`
	ArchiveHash string `json:"archive_hash"`
	ArchiveURL  string `json:"archive_url"`
}

// manifestFields are the text fields every manifest carries besides its id.
var manifestFields = []string{"name", "description", "version", "type"}

// ValidateIdentifier checks that s is usable as a package id.
func ValidateIdentifier(s string) error {
	if s == "" {
		return &ValidationError{Field: "id", Reason: "identifier must not be empty"}
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && !(digit && i > 0) {
			return &ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a valid identifier", s)}
		}
	}
	if strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("%q must not start or end with an underscore", s)}
	}
	if strings.Contains(s, "__") {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("%q must not contain double underscores", s)}
	}
	return nil
}

// ValidateVersion checks that s is a semantic version such as 1.2.3, 1.2.3-rc.1 or 1.2.3+build.
func ValidateVersion(s string) error {
	v := "v" + s
	if strings.HasPrefix(s, "v") || !semver.IsValid(v) || semver.Canonical(v)+semver.Build(v) != v {
		return &ValidationError{Field: "version", Reason: fmt.Sprintf("%q is not a semantic version (major.minor.patch)", s)}
	}
	return nil
}

// CompareVersions orders two valid versions the way semver does, ignoring build metadata.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// ParseArchiveHash parses an "algorithm:hex" string. Only sha256 is accepted.
func ParseArchiveHash(s string) (digest.Digest, error) {
	d, err := digest.Parse(s)
	if err != nil {
		return "", &ValidationError{
			Field:  "archive_hash",
			Reason: fmt.Sprintf("%q is not of the form sha256:<hex>: %v", s, err),
		}
	}
	if d.Algorithm() != digest.SHA256 {
		return "", &ValidationError{
			Field:  "archive_hash",
			Reason: fmt.Sprintf("unsupported algorithm %q", d.Algorithm()),
		}
	}
	return d, nil
}

// ParseManifest builds a Manifest from raw key/value data, rejecting it on the first violation.
func ParseManifest(id string, raw map[string]any) (Manifest, error) {
	values := make(map[string]string, len(manifestFields))
	for _, key := range manifestFields {
		s, err := requireString(raw, key)
		if err != nil {
			return Manifest{}, err
		}
		values[key] = s
	}
	if err := ValidateIdentifier(id); err != nil {
		return Manifest{}, err
	}
	if err := ValidateVersion(values["version"]); err != nil {
		return Manifest{}, err
	}
	return Manifest{
		ID:          id,
		Name:        values["name"],
		Description: values["description"],
		Version:     values["version"],
		Type:        values["type"],
	}, nil
}

// ParseRepositoryEntry builds an ArchiveManifest from a repository index record.
func ParseRepositoryEntry(id string, raw map[string]any) (ArchiveManifest, error) {
	m, err := ParseManifest(id, raw)
	if err != nil {
		return ArchiveManifest{}, err
	}

	size, err := requirePositiveInt(raw, "archive_size")
	if err != nil {
		return ArchiveManifest{}, err
	}

	hash, err := requireString(raw, "archive_hash")
	if err != nil {
		return ArchiveManifest{}, err
	}
	if _, err := ParseArchiveHash(hash); err != nil {
		return ArchiveManifest{}, err
	}

	url, err := requireString(raw, "archive_url")
	if err != nil {
		return ArchiveManifest{}, err
	}
	if url == "" {
		return ArchiveManifest{}, &ValidationError{Field: "archive_url", Reason: "must not be empty"}
	}

	return ArchiveManifest{
		Manifest:    m,
		ArchiveSize: size,
		ArchiveHash: hash,
		ArchiveURL:  url,
	}, nil
}

func requireString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", &ValidationError{Field: key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: fmt.Sprintf("expected a string, got %T", v)}
	}
	return s, nil
}

func requirePositiveInt(raw map[string]any, key string) (int64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &ValidationError{Field: key, Reason: "missing"}
	}

	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, &ValidationError{Field: key, Reason: fmt.Sprintf("expected an integer, got %s", x)}
		}
		n = i
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt64 {
			return 0, &ValidationError{Field: key, Reason: fmt.Sprintf("expected an integer, got %v", x)}
		}
		n = int64(x)
	default:
		return 0, &ValidationError{Field: key, Reason: fmt.Sprintf("expected an integer, got %T", v)}
	}

	if n <= 0 {
		return 0, &ValidationError{Field: key, Reason: fmt.Sprintf("must be positive, got %d", n)}
	}
	return n, nil
}
