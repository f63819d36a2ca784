//go:build windows

package fsscan

import "os"

// CheckAccess on Windows falls back to an existence check; there is no
// X_OK/R_OK equivalent exposed by os.
func CheckAccess(path string) error {
	_, err := os.Stat(path)
	return err
}

// ReadDirStat has no inode concept on Windows; entries are returned in
// directory order, the best available stand-in for inode order on this
// platform.
func ReadDirStat(path string) ([]StatEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]StatEntry, 0, len(infos))
	for _, info := range infos {
		mode := uint32(0o100000)
		if info.IsDir() {
			mode = modeIFDIR
		}
		entries = append(entries, StatEntry{
			Name: info.Name(),
			Stat: Stat{Mode: mode, Size: info.Size(), MTime: info.ModTime()},
		})
	}
	return entries, nil
}

// LstatPath is the Windows fallback: os.Lstat with a synthesized mode mask.
func LstatPath(path string) (Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Stat{}, err
	}
	mode := uint32(0o100000)
	if info.IsDir() {
		mode = modeIFDIR
	}
	return Stat{Mode: mode, Size: info.Size(), MTime: info.ModTime()}, nil
}
