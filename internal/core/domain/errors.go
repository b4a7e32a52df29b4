package domain

import (
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrOperationFailed is returned by the application layer once a failure has been reported on the bus.
	ErrOperationFailed = zerr.New("operation failed")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = zerr.New("invalid package manifest")

	// ErrManifestReadFailed is returned when a manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestDecodeFailed is returned when a manifest file is not valid TOML.
	ErrManifestDecodeFailed = zerr.New("failed to decode package manifest")

	// ErrInvalidIndex is returned when a repository index fails validation.
	ErrInvalidIndex = zerr.New("invalid repository index")

	// ErrIndexReadFailed is returned when a repository index cannot be read.
	ErrIndexReadFailed = zerr.New("failed to read repository index")

	// ErrIndexWriteFailed is returned when a repository index cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write repository index")

	// ErrIndexNotSynced is returned when an operation needs the cached index and none exists.
	ErrIndexNotSynced = zerr.New("repository index not found, run sync first")

	// ErrPackageNotFound is returned when a requested package id is not in the repository index.
	ErrPackageNotFound = zerr.New("package not found in repository index")

	// ErrNoPackagesSpecified is returned when install or uninstall is called without ids.
	ErrNoPackagesSpecified = zerr.New("no packages specified")

	// ErrFetchFailed is returned when a remote resource cannot be retrieved.
	ErrFetchFailed = zerr.New("failed to fetch")

	// ErrSequenceConsumed is returned when a fetch sequence is ranged over more than once.
	ErrSequenceConsumed = zerr.New("fetch sequence already consumed")

	// ErrArchiveVerifyFailed is returned when a downloaded or cached archive does not match the index.
	ErrArchiveVerifyFailed = zerr.New("archive verification failed")

	// ErrExtractFailed is returned when an archive cannot be extracted.
	ErrExtractFailed = zerr.New("failed to extract archive")

	// ErrUnsafeArchivePath is returned when an archive entry would be written outside the extraction root.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes extraction directory")

	// ErrInstallFailed is returned when a package cannot be installed.
	ErrInstallFailed = zerr.New("failed to install package")

	// ErrPackagesFailed is returned when one or more packages of a batch failed individually.
	ErrPackagesFailed = zerr.New("one or more packages failed")

	// ErrInvalidPackageID is returned when a package id is not safe to use as a directory name.
	ErrInvalidPackageID = zerr.New("invalid package id")

	// ErrPackageNotInstalled is returned when uninstalling a package that has no install directory.
	ErrPackageNotInstalled = zerr.New("package is not installed")

	// ErrUninstallFailed is returned when an installed package cannot be removed.
	ErrUninstallFailed = zerr.New("failed to uninstall package")

	// ErrSourceDirNotFound is returned when the package source directory does not exist.
	ErrSourceDirNotFound = zerr.New("package source directory not found")

	// ErrOutputConflict is returned when both an output directory and an output file are given.
	ErrOutputConflict = zerr.New("output directory and output file are mutually exclusive")

	// ErrArchiveWriteFailed is returned when an archive cannot be written.
	ErrArchiveWriteFailed = zerr.New("failed to write archive")

	// ErrArchiveReadFailed is returned when an archive cannot be read.
	ErrArchiveReadFailed = zerr.New("failed to read archive")

	// ErrManifestNotInArchive is returned when an archive has no manifest at its root.
	ErrManifestNotInArchive = zerr.New("archive does not contain " + ManifestFileName)

	// ErrRepoDirNotFound is returned when the repository directory does not exist.
	ErrRepoDirNotFound = zerr.New("repository directory not found")

	// ErrMissingRepoDir is returned when a command needs a repository location and none was configured.
	ErrMissingRepoDir = zerr.New("repository location is required (--repo-dir)")

	// ErrMissingLocalDir is returned when a command needs a local directory and none was configured.
	ErrMissingLocalDir = zerr.New("local directory is required (--local-dir)")

	// ErrReplaceFailed is returned when an atomic replace cannot be completed.
	ErrReplaceFailed = zerr.New("failed to replace file atomically")

	// ErrTempCreateFailed is returned when a temporary file or directory cannot be created.
	ErrTempCreateFailed = zerr.New("failed to create temporary path")

	// ErrInvalidOutputType is returned when an unknown output type is requested.
	ErrInvalidOutputType = zerr.New("invalid output type, expected TEXT, JSON or JSON_0")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsDecodeFailed is returned when the settings file is not valid YAML.
	ErrSettingsDecodeFailed = zerr.New("failed to decode settings file")

	// ErrInvalidTimeout is returned when a timeout is not a positive duration.
	ErrInvalidTimeout = zerr.New("invalid timeout")

	// ErrInvalidLocalCache is returned when --local-cache is neither 0 nor 1.
	ErrInvalidLocalCache = zerr.New("invalid local cache flag, expected 0 or 1")

	// ErrInvalidJobs is returned when the number of parallel fetches is below one.
	ErrInvalidJobs = zerr.New("invalid number of jobs, expected at least 1")
)

// ValidationError describes why a manifest, index entry or identifier was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// MismatchError reports a difference between what the repository advertised and what was found.
type MismatchError struct {
	ID       string
	Field    string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("package %q: %s mismatch (expected %s, got %s)", e.ID, e.Field, e.Expected, e.Actual)
}

// PackageError names the packages an error applies to.
type PackageError struct {
	IDs []string
	Err error
}

// Error implements the error interface.
func (e *PackageError) Error() string {
	quoted := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		quoted[i] = strconv.Quote(id)
	}
	noun := "package"
	if len(e.IDs) > 1 {
		noun = "packages"
	}
	return noun + " " + strings.Join(quoted, ", ") + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PackageError) Unwrap() error {
	return e.Err
}

// ForPackages attaches ids to err.
func ForPackages(err error, ids ...string) error {
	return &PackageError{IDs: ids, Err: err}
}
