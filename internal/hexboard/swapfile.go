package hexboard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hailam/hexvc/internal/hexcell"
)

// SwapTable records, per board size, which first moves call for the
// second player to swap ("Swap-moves file").
type SwapTable struct {
	entries map[[3]int]bool // [width, height, cellIndex] -> swap
}

// LoadSwapFile loads a swap-moves file from disk.
func LoadSwapFile(path string) (*SwapTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSwapReader(f)
}

// LoadSwapReader parses lines `WxH cell`, skipping `#`-prefixed
// comments and blank lines.
func LoadSwapReader(r io.Reader) (*SwapTable, error) {
	t := &SwapTable{entries: map[[3]int]bool{}}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("swap file line %d: expected \"WxH cell\", got %q", lineNo, line)
		}
		w, h, err := parseSize(fields[0])
		if err != nil {
			return nil, fmt.Errorf("swap file line %d: %w", lineNo, err)
		}
		cell, err := hexcell.ParseCell(fields[1], w)
		if err != nil {
			return nil, fmt.Errorf("swap file line %d: %w", lineNo, err)
		}
		t.entries[[3]int{w, h, int(cell)}] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// ShouldSwap reports whether, on a width x height board, the second
// player should swap after first being played on firstMove
// §8 scenario S1).
func (t *SwapTable) ShouldSwap(width, height int, firstMove hexcell.Cell) bool {
	if t == nil {
		return false
	}
	return t.entries[[3]int{width, height, int(firstMove)}]
}
