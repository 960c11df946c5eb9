package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadPatternFile loads an ASCII pattern file from disk.
func LoadPatternFile(path string) (*PatternSets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPatternReader(f)
}

// LoadPatternReader parses the pattern-file grammar from r:
//
//	[name/]
//	type:slice;slice;slice;slice;slice;slice;weight
//
// with each slice "cells,black,white,marked1,marked2". A `#`-prefixed or
// indented (non-column-1) line is a comment; a blank line ends a
// record. Two name lines before the encoding line requests the mirror
// image also be stored.
func LoadPatternReader(r io.Reader) (*PatternSets, error) {
	sets := &PatternSets{}
	scanner := bufio.NewScanner(r)

	var pendingNames []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			pendingNames = nil
			continue
		}
		if line[0] == '#' || line[0] == ' ' || line[0] == '\t' {
			continue // comment
		}
		if line[0] == '[' {
			name := strings.TrimSuffix(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"), "/")
			pendingNames = append(pendingNames, name)
			continue
		}
		p, err := parsePatternLine(line)
		if err != nil {
			return nil, fmt.Errorf("pattern file line %d: %w", lineNo, err)
		}
		if len(pendingNames) > 0 {
			p.Name = pendingNames[len(pendingNames)-1]
		}
		p.HasMirror = len(pendingNames) >= 2
		sets.All = append(sets.All, p)
		if p.HasMirror {
			sets.All = append(sets.All, p.mirrorImage())
		}
		pendingNames = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sets.finalizeRotations()
	return sets, nil
}

func parsePatternLine(line string) (*Pattern, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return nil, fmt.Errorf("missing type separator in %q", line)
	}
	typeStr := line[:colon]
	if len(typeStr) != 1 {
		return nil, fmt.Errorf("invalid pattern type %q", typeStr)
	}
	fields := strings.Split(line[colon+1:], ";")
	if len(fields) != NumDirections+1 {
		return nil, fmt.Errorf("expected %d fields, got %d", NumDirections+1, len(fields))
	}
	p := &Pattern{Type: Type(typeStr[0])}
	for d := 0; d < NumDirections; d++ {
		s, err := parseSlice(fields[d])
		if err != nil {
			return nil, fmt.Errorf("slice %d: %w", d, err)
		}
		p.Slices[d] = s
	}
	weight, err := strconv.Atoi(strings.TrimSpace(fields[NumDirections]))
	if err != nil {
		return nil, fmt.Errorf("weight: %w", err)
	}
	p.Weight = weight
	return p, nil
}

func parseSlice(s string) (Slice, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return Slice{}, fmt.Errorf("expected 5 comma-separated fields, got %d", len(parts))
	}
	vals := make([]uint32, 5)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return Slice{}, err
		}
		vals[i] = uint32(v)
	}
	return Slice{Cells: vals[0], Black: vals[1], White: vals[2], Marked1: vals[3], Marked2: vals[4]}, nil
}

// mirrorImage returns p transposed about the acute diagonal: direction
// d maps to direction (NumDirections-1-d), matching
// boardgeom.Geometry.Mirror's effect on the six directions.
func (p *Pattern) mirrorImage() *Pattern {
	mp := &Pattern{Name: p.Name + "-mirror", Type: p.Type, Weight: p.Weight}
	for d := 0; d < NumDirections; d++ {
		mp.Slices[NumDirections-1-d] = p.Slices[d]
	}
	return mp
}
