package shapecheck_test

import (
	"testing"

	shapecheck "github.com/shapecheck/shapecheck"
)

func TestPath_RenderRoot(t *testing.T) {
	var p shapecheck.Path
	if got := p.String(); got != "(root)" {
		t.Fatalf("expected (root), got %q", got)
	}
}

func TestPath_RenderNested(t *testing.T) {
	p := shapecheck.Path{}.Field("a").Field("b").Index(2).Field("c")
	if got := p.String(); got != "a.b[2].c" {
		t.Fatalf("expected a.b[2].c, got %q", got)
	}
}

func TestPath_IndexAtRoot(t *testing.T) {
	p := shapecheck.Path{}.Index(0)
	if got := p.String(); got != "[0]" {
		t.Fatalf("expected [0], got %q", got)
	}
}

func TestPath_ExtensionsDoNotAlias(t *testing.T) {
	base := shapecheck.Path{}.Field("items")
	left := base.Index(0)
	right := base.Index(1)
	if left.String() != "items[0]" || right.String() != "items[1]" {
		t.Fatalf("sibling branches aliased: %q / %q", left.String(), right.String())
	}
}
