//go:build linux

package fsscan

import (
	"fmt"
	"sort"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// CheckAccess performs an access(X_OK|R_OK) permission pre-check.
func CheckAccess(path string) error {
	return unix.Access(path, unix.R_OK|unix.X_OK)
}

// ReadDirStat opens path, enumerates its entries by i-number (duplicates
// preserved — hard links within one directory share an inode and must not
// be lost), then fstatat's each one with AT_SYMLINK_NOFOLLOW|AT_NO_AUTOMOUNT
// relative to the directory fd.
func ReadDirStat(path string) ([]StatEntry, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opendir %s: %w", path, err)
	}
	defer unix.Close(fd)

	type rawEntry struct {
		name string
		ino  uint64
	}

	var raw []rawEntry
	buf := make([]byte, 32*1024)

	for {
		n, err := unix.ReadDirent(fd, buf)
		if err != nil {
			return nil, fmt.Errorf("readdir %s: %w", path, err)
		}
		if n == 0 {
			break
		}
		data := buf[:n]
		for len(data) > 0 {
			if len(data) < int(unsafe.Offsetof(unix.Dirent{}.Name)) {
				break
			}
			de := (*unix.Dirent)(unsafe.Pointer(&data[0]))
			reclen := int(de.Reclen)
			if reclen <= 0 || reclen > len(data) {
				break
			}

			nameBytes := data[unsafe.Offsetof(unix.Dirent{}.Name):reclen]
			nameLen := 0
			for nameLen < len(nameBytes) && nameBytes[nameLen] != 0 {
				nameLen++
			}
			name := string(nameBytes[:nameLen])

			if name != "." && name != ".." {
				raw = append(raw, rawEntry{name: name, ino: de.Ino})
			}
			data = data[reclen:]
		}
	}

	// Stable sort by inode, never a dedup. Most filesystems lay inodes out
	// in number order on disk, so this minimizes seek cost on rotational
	// media.
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].ino < raw[j].ino })

	entries := make([]StatEntry, 0, len(raw))
	const flags = unix.AT_SYMLINK_NOFOLLOW | unix.AT_NO_AUTOMOUNT

	for _, re := range raw {
		var st unix.Stat_t
		if err := unix.Fstatat(fd, re.name, &st, flags); err != nil {
			entries = append(entries, StatEntry{Name: re.name, Err: err})
			continue
		}
		entries = append(entries, StatEntry{Name: re.name, Stat: statFromUnix(&st)})
	}

	return entries, nil
}

func statFromUnix(st *unix.Stat_t) Stat {
	return Stat{
		Mode:  st.Mode,
		Size:  st.Size,
		MTime: time.Unix(st.Mtim.Sec, st.Mtim.Nsec),
		UID:   st.Uid,
		GID:   st.Gid,
		Dev:   uint64(st.Dev),
		Ino:   st.Ino,
		Nlink: uint64(st.Nlink),
	}
}

// LstatPath lstat's an absolute path — used by jobqueue's
// NewSeedLocalDirJob for the scan root and by PkgJob's addFile synthesis.
func LstatPath(path string) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Stat{}, err
	}
	return statFromUnix(&st), nil
}
