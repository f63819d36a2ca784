package pkgmgr

import (
	"os/exec"
	"strings"
)

// RpmManager drives rpm -qa and rpm -ql to enumerate RPM packages and
// their installed files.
type RpmManager struct {
	rpmCommand string
}

// NewRpmManager returns an RpmManager that looks for rpm on PATH.
func NewRpmManager() *RpmManager {
	return &RpmManager{rpmCommand: "rpm"}
}

func (m *RpmManager) Name() string { return "rpm" }

func (m *RpmManager) Available() bool {
	_, err := exec.LookPath(m.rpmCommand)
	return err == nil
}

// InstalledPackages runs rpm -qa with a queryformat, mirroring
// RpmPkgManager::installedPkg.
func (m *RpmManager) InstalledPackages() ([]PkgInfo, error) {
	out, err := exec.Command(m.rpmCommand,
		"-qa",
		"--queryformat", "%{name} | %{version}-%{release} | %{arch}\n",
	).Output()
	if err != nil {
		return nil, err
	}
	return parseRpmList(string(out)), nil
}

func parseRpmList(output string) []PkgInfo {
	var pkgs []PkgInfo
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, " | ")
		if len(fields) != 3 {
			continue
		}
		pkgs = append(pkgs, PkgInfo{
			BaseName: strings.TrimSpace(fields[0]),
			Version:  strings.TrimSpace(fields[1]),
			Arch:     strings.TrimSpace(fields[2]),
			Manager:  "rpm",
		})
	}
	return pkgs
}

// rpmQueryName mirrors RpmPkgManager::queryName: the base name alone is
// ambiguous when two versions of the same package are installed side by
// side, so the version and arch are appended to pin down exactly one.
func rpmQueryName(pkg PkgInfo) string {
	name := pkg.BaseName
	if pkg.Version != "" {
		name += "-" + pkg.Version
	}
	if pkg.Arch != "" {
		name += "." + pkg.Arch
	}
	return name
}

// FileListCommand mirrors RpmPkgManager::fileListCommand (rpm -ql NAME).
func (m *RpmManager) FileListCommand(pkg PkgInfo) (string, []string) {
	return m.rpmCommand, []string{"-ql", rpmQueryName(pkg)}
}

// ParseFileList mirrors RpmPkgManager::parseFileList: one path per line,
// with the "(contains no files)" line rpm -ql emits for an empty package
// removed.
func (m *RpmManager) ParseFileList(output string) []string {
	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" || l == "(contains no files)" {
			continue
		}
		result = append(result, l)
	}
	return result
}
