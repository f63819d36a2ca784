package excluderules

import "testing"

func TestMatchBaseName(t *testing.T) {
	r := New(Rule{Pattern: "node_modules"})
	if !r.Match("/home/user/project/node_modules", "node_modules") {
		t.Fatalf("expected match on base name")
	}
	if r.Match("/home/user/project/src", "src") {
		t.Fatalf("unexpected match")
	}
}

func TestMatchDirectChildren(t *testing.T) {
	r := New(Rule{Pattern: "*.bak", AppliesToFileChildren: true})
	if !r.MatchDirectChildren([]string{"readme.txt", "backup.bak"}) {
		t.Fatalf("expected *.bak to match a direct child")
	}
	if r.MatchDirectChildren([]string{"readme.txt"}) {
		t.Fatalf("unexpected match")
	}
}

func TestNilRulesNeverMatch(t *testing.T) {
	var r *Rules
	if r.Match("/a/b", "b") || r.MatchDirectChildren([]string{"b"}) {
		t.Fatalf("nil rules must never match")
	}
}
