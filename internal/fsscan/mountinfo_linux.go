//go:build linux

package fsscan

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"sync"
)

// mountPoint is one parsed line of /proc/self/mountinfo.
type mountPoint struct {
	path   string
	device string
}

var (
	mountsOnce sync.Once
	mounts     []mountPoint
)

func loadMounts() {
	mountsOnce.Do(func() {
		f, err := os.Open("/proc/self/mountinfo")
		if err != nil {
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			// Format (man 5 proc): fields up to a literal "-" separator,
			// then fs type, mount source, super options. We only need the
			// mount point (field 5) and mount source (second field after
			// the separator, following the fs type).
			sepIdx := strings.Index(line, " - ")
			if sepIdx < 0 {
				continue
			}
			before := strings.Fields(line[:sepIdx])
			after := strings.Fields(line[sepIdx+3:])
			if len(before) < 5 || len(after) < 2 {
				continue
			}
			mounts = append(mounts, mountPoint{path: before[4], device: after[1]})
		}

		// Longest path first so DeviceForPath's linear scan finds the most
		// specific (nearest) mount point.
		sort.Slice(mounts, func(i, j int) bool { return len(mounts[i].path) > len(mounts[j].path) })
	})
}

// DeviceForPath returns the device string of the mount point covering
// path, used for the logical cross-check between a directory's nearest
// mount point and a candidate mount-point child.
func DeviceForPath(path string) string {
	loadMounts()
	for _, m := range mounts {
		if path == m.path || m.path == "/" || strings.HasPrefix(path, m.path+"/") {
			return m.device
		}
	}
	return ""
}
