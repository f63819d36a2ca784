package pkgmgr

import (
	"os/exec"
	"strings"
)

// DpkgManager drives Debian/Ubuntu's dpkg-query (--show and --listfiles) to
// enumerate installed packages and their files.
type DpkgManager struct {
	dpkgQuery string
}

// NewDpkgManager returns a DpkgManager that looks for dpkg-query on PATH.
func NewDpkgManager() *DpkgManager {
	return &DpkgManager{dpkgQuery: "dpkg-query"}
}

func (m *DpkgManager) Name() string { return "dpkg" }

func (m *DpkgManager) Available() bool {
	_, err := exec.LookPath(m.dpkgQuery)
	return err == nil
}

// InstalledPackages runs dpkg-query --show with a format string that
// includes status, keeping only packages reported "install ok installed" —
// exactly DpkgPkgManager::parsePkgList's filter.
func (m *DpkgManager) InstalledPackages() ([]PkgInfo, error) {
	out, err := exec.Command(m.dpkgQuery,
		"--show",
		"--showformat=${Package} | ${Version} | ${Architecture} | ${Status}\n",
	).Output()
	if err != nil {
		return nil, err
	}
	return parseDpkgList(string(out)), nil
}

func parseDpkgList(output string) []PkgInfo {
	var pkgs []PkgInfo
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, " | ")
		if len(fields) != 4 {
			continue
		}
		name, version, arch, status := fields[0], fields[1], fields[2], fields[3]
		if status != "install ok installed" {
			continue
		}
		pkgs = append(pkgs, PkgInfo{BaseName: name, Version: version, Arch: arch, Manager: "dpkg"})
	}
	return pkgs
}

// dpkgQueryName mirrors DpkgPkgManager::queryName, simplified: the original
// only appends version/arch when dpkg reports the package as installed in
// more than one version/arch side by side (isMultiVersion/isMultiArch);
// PkgInfo here doesn't track that, so this appends whenever the fields are
// non-empty, using the same "_version" and ":arch" separators.
func dpkgQueryName(pkg PkgInfo) string {
	name := pkg.BaseName
	if pkg.Version != "" {
		name += "_" + pkg.Version
	}
	if pkg.Arch != "" {
		name += ":" + pkg.Arch
	}
	return name
}

// FileListCommand reproduces DpkgPkgManager::fileListCommand /
// DpkgPkgManager::queryName.
func (m *DpkgManager) FileListCommand(pkg PkgInfo) (string, []string) {
	return m.dpkgQuery, []string{"--listfiles", dpkgQueryName(pkg)}
}

// ParseFileList removes the "/." cruft line dpkg-query --listfiles emits,
// exactly as DpkgPkgManager::parseFileList does.
func (m *DpkgManager) ParseFileList(output string) []string {
	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" || l == "/." {
			continue
		}
		result = append(result, l)
	}
	return result
}
