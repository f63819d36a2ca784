package pkgmgr

import "testing"

func TestParseDpkgListFiltersNonInstalled(t *testing.T) {
	out := "bash | 5.2.15-2 | amd64 | install ok installed\n" +
		"foo | 1.0-1 | amd64 | deinstall ok config-files\n"
	pkgs := parseDpkgList(out)
	if len(pkgs) != 1 {
		t.Fatalf("expected 1 installed package, got %d", len(pkgs))
	}
	if pkgs[0].BaseName != "bash" || pkgs[0].Manager != "dpkg" {
		t.Fatalf("unexpected package: %+v", pkgs[0])
	}
}

func TestDpkgParseFileListStripsDotEntry(t *testing.T) {
	m := NewDpkgManager()
	out := "/.\n/usr/bin/bash\n/usr/share/doc/bash\n"
	files := m.ParseFileList(out)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if f == "/." {
			t.Fatalf("expected /. to be stripped")
		}
	}
}

func TestDpkgFileListCommand(t *testing.T) {
	m := NewDpkgManager()
	prog, args := m.FileListCommand(PkgInfo{BaseName: "bash"})
	if prog != "dpkg-query" || len(args) != 2 || args[1] != "bash" {
		t.Fatalf("unexpected command: %s %v", prog, args)
	}
}

func TestDpkgFileListCommandQualifiesWithVersionAndArch(t *testing.T) {
	m := NewDpkgManager()
	prog, args := m.FileListCommand(PkgInfo{BaseName: "foo", Version: "1.0-1", Arch: "amd64"})
	if prog != "dpkg-query" || len(args) != 2 || args[1] != "foo_1.0-1:amd64" {
		t.Fatalf("unexpected command: %s %v", prog, args)
	}
}

func TestParseRpmList(t *testing.T) {
	out := "bash | 5.2-2.fc40 | x86_64\ncoreutils | 9.4-5.fc40 | x86_64\n"
	pkgs := parseRpmList(out)
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(pkgs))
	}
	if pkgs[0].BaseName != "bash" || pkgs[0].Manager != "rpm" {
		t.Fatalf("unexpected package: %+v", pkgs[0])
	}
}

func TestRpmFileListCommand(t *testing.T) {
	m := NewRpmManager()
	prog, args := m.FileListCommand(PkgInfo{BaseName: "bash"})
	if prog != "rpm" || len(args) != 2 || args[0] != "-ql" || args[1] != "bash" {
		t.Fatalf("unexpected command: %s %v", prog, args)
	}
}

func TestRpmFileListCommandQualifiesWithVersionAndArch(t *testing.T) {
	m := NewRpmManager()
	prog, args := m.FileListCommand(PkgInfo{BaseName: "foo", Version: "1.0-1.fc40", Arch: "x86_64"})
	if prog != "rpm" || len(args) != 2 || args[0] != "-ql" || args[1] != "foo-1.0-1.fc40.x86_64" {
		t.Fatalf("unexpected command: %s %v", prog, args)
	}
}

func TestRpmParseFileList(t *testing.T) {
	m := NewRpmManager()
	files := m.ParseFileList("/usr/bin/bash\n/usr/share/doc/bash\n")
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
}

func TestRpmParseFileListStripsContainsNoFiles(t *testing.T) {
	m := NewRpmManager()
	files := m.ParseFileList("(contains no files)\n")
	if len(files) != 0 {
		t.Fatalf("expected 0 files, got %d: %v", len(files), files)
	}
}

type fakeManager struct {
	name      string
	available bool
}

func (f *fakeManager) Name() string      { return f.name }
func (f *fakeManager) Available() bool   { return f.available }
func (f *fakeManager) InstalledPackages() ([]PkgInfo, error) { return nil, nil }
func (f *fakeManager) FileListCommand(pkg PkgInfo) (string, []string) { return "", nil }
func (f *fakeManager) ParseFileList(output string) []string { return nil }

func TestDetectReturnsFirstAvailable(t *testing.T) {
	a := &fakeManager{name: "a", available: false}
	b := &fakeManager{name: "b", available: true}
	c := &fakeManager{name: "c", available: true}

	got := Detect(a, b, c)
	if got == nil || got.Name() != "b" {
		t.Fatalf("expected manager b, got %v", got)
	}
}

func TestDetectReturnsNilWhenNoneAvailable(t *testing.T) {
	a := &fakeManager{name: "a", available: false}
	if got := Detect(a); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
