package tui

import "testing"

func TestDefaultThemeIsRegistered(t *testing.T) {
	theme := defaultTheme()
	if theme.Name == "" {
		t.Fatalf("expected default theme %q to resolve to a named theme", DefaultThemeName)
	}
	if _, ok := themes[DefaultThemeName]; !ok {
		t.Fatalf("DefaultThemeName %q not present in themes map", DefaultThemeName)
	}
}

func TestThemeNamesCoversEveryEntry(t *testing.T) {
	names := themeNames()
	if len(names) != len(themes) {
		t.Fatalf("expected %d theme names, got %d", len(themes), len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := themes[n]; !ok {
			t.Fatalf("themeNames returned unknown theme %q", n)
		}
		seen[n] = true
	}
	for n := range themes {
		if !seen[n] {
			t.Fatalf("themeNames missing %q", n)
		}
	}
}
