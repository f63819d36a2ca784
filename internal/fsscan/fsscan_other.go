//go:build !linux && !windows

package fsscan

import (
	"os"
	"path/filepath"
	"sort"
	"syscall"
)

// CheckAccess approximates access(X_OK|R_OK); non-Linux Unix variants
// still expose syscall.Access.
func CheckAccess(path string) error {
	return syscall.Access(path, syscall.R_OK|syscall.X_OK)
}

// ReadDirStat is the portable fallback: Go's os package has no dirfd or
// AT_NO_AUTOMOUNT equivalent here, so this lstat's each entry by joined
// path instead of fstatat-relative-to-fd.
func ReadDirStat(path string) ([]StatEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	type rawEntry struct {
		name string
		ino  uint64
	}

	raw := make([]rawEntry, 0, len(names))
	infos := make(map[string]os.FileInfo, len(names))

	for _, name := range names {
		info, lerr := os.Lstat(filepath.Join(path, name))
		if lerr != nil {
			raw = append(raw, rawEntry{name: name, ino: ^uint64(0)})
			continue
		}
		st, ok := info.Sys().(*syscall.Stat_t)
		ino := ^uint64(0)
		if ok {
			ino = uint64(st.Ino)
		}
		raw = append(raw, rawEntry{name: name, ino: ino})
		infos[name] = info
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].ino < raw[j].ino })

	entries := make([]StatEntry, 0, len(raw))
	for _, re := range raw {
		info, ok := infos[re.name]
		if !ok {
			entries = append(entries, StatEntry{Name: re.name, Err: os.ErrNotExist})
			continue
		}
		entries = append(entries, StatEntry{Name: re.name, Stat: statFromInfo(info)})
	}

	return entries, nil
}

func statFromInfo(info os.FileInfo) Stat {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		mode := uint32(modeIFDIR)
		if !info.IsDir() {
			mode = 0o100000
		}
		return Stat{Mode: mode, Size: info.Size(), MTime: info.ModTime()}
	}
	return Stat{
		Mode:  st.Mode,
		Size:  info.Size(),
		MTime: info.ModTime(),
		UID:   st.Uid,
		GID:   st.Gid,
		Dev:   uint64(st.Dev),
		Ino:   uint64(st.Ino),
		Nlink: uint64(st.Nlink),
	}
}

// LstatPath is the portable counterpart of the Linux build's LstatPath.
func LstatPath(path string) (Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Stat{}, err
	}
	return statFromInfo(info), nil
}
