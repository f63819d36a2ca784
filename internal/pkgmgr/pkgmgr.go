// Package pkgmgr supplies the package-manager abstraction PkgReader needs
// to enumerate installed packages and build per-package file-list commands.
// The literal command strings stay specific to each manager (dpkg's
// dpkg-query --show/--listfiles, rpm's rpm -qa/rpm -ql); PkgReader treats them as
// opaque inputs rather than parsing manager-specific output itself.
package pkgmgr

// PkgInfo describes one installed package as reported by a Manager.
type PkgInfo struct {
	BaseName string
	Version  string
	Arch     string
	Manager  string // manager name, for display and for locating the owning Manager again
}

// Manager is the abstract package manager interface: enumerate installed
// packages, and build/parse the per-package file-list command.
type Manager interface {
	Name() string
	Available() bool
	InstalledPackages() ([]PkgInfo, error)
	FileListCommand(pkg PkgInfo) (program string, args []string)
	ParseFileList(output string) []string
}

// Detect returns the first available manager on the running system, or nil
// if none is. This mirrors PkgQuery's primary-manager probe, simplified to
// an availability check — the weaker substitute RpmPkgManager.cpp itself
// documents as acceptable for a secondary manager.
func Detect(managers ...Manager) Manager {
	for _, m := range managers {
		if m.Available() {
			return m
		}
	}
	return nil
}

// DefaultManagers returns the managers this module knows how to drive, in
// probe order.
func DefaultManagers() []Manager {
	return []Manager{NewDpkgManager(), NewRpmManager()}
}
