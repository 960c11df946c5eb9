package pattern

import (
	"strings"
	"testing"
)

const onePatternText = "[test]\n" +
	"v:0,1,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;5\n"

func TestLoadPatternReaderParsesOneRecord(t *testing.T) {
	sets, err := LoadPatternReader(strings.NewReader(onePatternText))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}
	if len(sets.All) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(sets.All))
	}
	p := sets.All[0]
	if p.Name != "test" || p.Type != TypeVulnerable || p.Weight != 5 {
		t.Errorf("unexpected pattern fields: name=%q type=%c weight=%d", p.Name, p.Type, p.Weight)
	}
	if p.Slices[0].Black != 1 {
		t.Errorf("slice 0 Black = %d, want 1", p.Slices[0].Black)
	}
}

func TestLoadPatternReaderTwoNamesRequestsMirror(t *testing.T) {
	text := "[base]\n[base-alt]\n" + "d:0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;1\n"
	sets, err := LoadPatternReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}
	if len(sets.All) != 2 {
		t.Fatalf("expected original + mirror = 2 patterns, got %d", len(sets.All))
	}
	if !sets.All[0].HasMirror {
		t.Error("pattern with two preceding name lines should have HasMirror set")
	}
}

func TestLoadPatternReaderRejectsBadFieldCount(t *testing.T) {
	_, err := LoadPatternReader(strings.NewReader("d:0,0,0,0,0;1\n"))
	if err == nil {
		t.Error("expected error for a line missing slices")
	}
}

func TestLoadPatternReaderSkipsComments(t *testing.T) {
	text := "# a comment\n  also indented, treated as comment\n" + onePatternText
	sets, err := LoadPatternReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}
	if len(sets.All) != 1 {
		t.Errorf("expected comments to be skipped, got %d patterns", len(sets.All))
	}
}

func TestMirrorImageReversesSliceOrder(t *testing.T) {
	sets, err := LoadPatternReader(strings.NewReader(onePatternText))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}
	p := sets.All[0]
	mirrored := p.mirrorImage()
	for d := 0; d < NumDirections; d++ {
		if mirrored.Slices[NumDirections-1-d] != p.Slices[d] {
			t.Errorf("mirrorImage slice %d mismatch", d)
		}
	}
	if mirrored.Type != p.Type || mirrored.Weight != p.Weight {
		t.Error("mirrorImage should preserve type and weight")
	}
}
