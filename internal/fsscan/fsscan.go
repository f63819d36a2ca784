// Package fsscan implements the low-level directory/file primitives a
// directory scan needs: opendir/readdir/closedir with dirfd, fstatat with
// symlink-nofollow (and, where available, no-automount) flags,
// access(X_OK|R_OK), and mount-table lookup by path. The standard
// library's os package cannot express the dirfd-relative fstatat or the
// AT_NO_AUTOMOUNT flag, so the Linux build uses golang.org/x/sys/unix
// directly; other platforms fall back to a portable approximation built
// on os/syscall, split per platform the same way the rest of this
// package's build-tagged files are.
package fsscan

import "time"

// POSIX mode-bits masks, stable across platforms — kept here rather than
// imported from a platform package so Stat.IsDir works uniformly.
const (
	modeIFMT = 0o170000
	modeIFDIR = 0o040000
)

// Stat is the subset of struct stat a directory-read job needs per entry:
// size, mtime, permission bits, ownership, device/inode identity and link
// count.
type Stat struct {
	Mode  uint32
	Size  int64
	MTime time.Time
	UID   uint32
	GID   uint32
	Dev   uint64
	Ino   uint64
	Nlink uint64
}

// IsDir reports whether this stat result describes a directory.
func (s Stat) IsDir() bool { return s.Mode&modeIFMT == modeIFDIR }

// StatEntry is one directory entry together with its stat result (or the
// error that resulted from trying to stat it — callers synthesize a
// placeholder node rather than aborting).
type StatEntry struct {
	Name string
	Stat Stat
	Err  error
}
