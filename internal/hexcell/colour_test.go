package hexcell

import "testing"

func TestColourOther(t *testing.T) {
	if Black.Other() != White {
		t.Error("Black.Other() should be White")
	}
	if White.Other() != Black {
		t.Error("White.Other() should be Black")
	}
}

func TestColourOtherPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic calling Other() on Empty")
		}
	}()
	Empty.Other()
}

func TestColourString(t *testing.T) {
	if Black.String() != "black" || White.String() != "white" || Empty.String() != "empty" {
		t.Error("unexpected colour string form")
	}
}
