package domain

import "path/filepath"

const (
	// PrivateDirName is the name of the hidden store inside a local package directory.
	PrivateDirName = ".pak"

	// CacheDirName is the name of the verified archive cache inside the private store.
	CacheDirName = "cache"

	// IndexFileName is the name of the repository index file, both remote and cached.
	IndexFileName = "pak-index.json"

	// ManifestFileName is the name of the manifest file at the root of every package.
	ManifestFileName = "pak.toml"

	// ArchiveExt is the extension of package archives.
	ArchiveExt = ".txz"

	// ExtractSuffix marks the temporary directory a package is extracted into.
	ExtractSuffix = "@"

	// BackupSuffix marks the previous copy of a package while it is being replaced.
	BackupSuffix = "~"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// PrivateDir returns the private store directory of a local package directory.
func PrivateDir(localDir string) string {
	return filepath.Join(localDir, PrivateDirName)
}

// CachedIndexPath returns the path of the cached repository index.
// It joins .pak and pak-index.json.
func CachedIndexPath(localDir string) string {
	return filepath.Join(localDir, PrivateDirName, IndexFileName)
}

// ArchiveCacheDir returns the directory holding verified archives.
// It joins .pak and cache.
func ArchiveCacheDir(localDir string) string {
	return filepath.Join(localDir, PrivateDirName, CacheDirName)
}

// CachedArchivePath returns the cache path of the archive for the given package id.
func CachedArchivePath(localDir, id string) string {
	return filepath.Join(ArchiveCacheDir(localDir), ArchiveFileName(id))
}

// ArchiveFileName returns the archive filename for the given package id.
func ArchiveFileName(id string) string {
	return id + ArchiveExt
}

// InstallPath returns the directory a package is installed into.
func InstallPath(localDir, id string) string {
	return filepath.Join(localDir, id)
}

// ExtractPath returns the temporary sibling directory a package is extracted into.
func ExtractPath(localDir, id string) string {
	return filepath.Join(localDir, id+ExtractSuffix)
}
