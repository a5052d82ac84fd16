package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions for files the application writes: (rw-------).
	// Configuration files may carry client identifiers, so only the owner can read them.
	DefaultFilePermissions os.FileMode = 0o600

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755
)

// Temporary directory name patterns.
const (
	// BrowserProfileDirPattern is the os.MkdirTemp pattern for isolated browser profiles.
	BrowserProfileDirPattern = "authcode-browser-*"
)
