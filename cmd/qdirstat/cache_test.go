package main

import (
	"testing"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

func TestIndentReflectsDepthFromHolder(t *testing.T) {
	holder := tree.NewDir("cache-root")
	top := tree.NewDir("top")
	holder.InsertChild(top)
	nested := tree.NewDir("nested")
	top.InsertChild(nested)

	if got := indent(holder, top); got != "" {
		t.Fatalf("expected no indent for a direct child of holder, got %q", got)
	}
	if got := indent(holder, nested); got != "  " {
		t.Fatalf("expected one level of indent, got %q", got)
	}
}
