//go:build !linux

package fsscan

// DeviceForPath has no portable mount-table source outside Linux's
// /proc/self/mountinfo; callers fall back to the raw device-id comparison,
// which needs no mount table at all.
func DeviceForPath(path string) string {
	return ""
}
