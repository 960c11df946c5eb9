// Command hexengine runs the VC/ICE/solver core behind the line-
// oriented command surface, reading commands from stdin and
// writing replies to stdout (flag-parsed options, optional CPU
// profiling, no file-based config).
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/hexvc/internal/command"
	"github.com/hailam/hexvc/internal/hexboard"
	"github.com/hailam/hexvc/internal/pattern"
	"github.com/hailam/hexvc/internal/persist"
	"github.com/hailam/hexvc/internal/solver"
)

// Options collects the CLI-parsed engine configuration: constructor
// arguments, not a config file.
type Options struct {
	PatternFile string
	SwapFile    string
	DBPath      string
	TTBits      uint
	MaxDepth    int
	DBMaxStones int
}

var (
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
	patternFile = flag.String("patterns", "", "path to pattern file")
	swapFile    = flag.String("swapfile", "", "path to swap-moves file")
	dbPath      = flag.String("db", "", "path to persistent solved-state database (disabled if empty)")
	ttBits      = flag.Uint("tt-bits", 20, "log2 of transposition table entry count")
	maxDepth    = flag.Int("max-depth", 40, "solver search depth limit")
	dbMaxStones = flag.Int("db-max-stones", 30, "max played stones for which the persistent DB is consulted")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	opts := Options{
		PatternFile: *patternFile,
		SwapFile:    *swapFile,
		DBPath:      *dbPath,
		TTBits:      *ttBits,
		MaxDepth:    *maxDepth,
		DBMaxStones: *dbMaxStones,
	}

	patterns := loadPatterns(opts.PatternFile)
	swapTable := loadSwapTable(opts.SwapFile)
	s := buildSolver(opts)

	eng := command.New(os.Stdout, patterns, s, swapTable)
	eng.Run(os.Stdin)
}

// loadPatterns loads the pattern file if given, disabling pattern-based
// ICE/VC classification for this run on failure rather than aborting
// ("Resource limit ... I/O errors during pattern/DB loading are
// surfaced as diagnostic warnings and the affected subsystem is
// disabled for that run").
func loadPatterns(path string) *pattern.PatternSets {
	if path == "" {
		return &pattern.PatternSets{}
	}
	sets, err := pattern.LoadPatternFile(path)
	if err != nil {
		log.Printf("warning: pattern file %q not loaded: %v", path, err)
		return &pattern.PatternSets{}
	}
	return sets
}

// loadSwapTable loads the swap-moves file if given, same degrade-not-
// abort policy as loadPatterns.
func loadSwapTable(path string) *hexboard.SwapTable {
	if path == "" {
		return nil
	}
	table, err := hexboard.LoadSwapFile(path)
	if err != nil {
		log.Printf("warning: swap file %q not loaded: %v", path, err)
		return nil
	}
	return table
}

// buildSolver wires the transposition table and, if configured, the
// persistent BadgerDB-backed solved-state store behind one
// persist.Prober.
func buildSolver(opts Options) *solver.Solver {
	tt := solver.NewTranspositionTable(opts.TTBits)

	var prober persist.Prober = persist.NoopProber{}
	if opts.DBPath != "" {
		store, err := persist.Open(opts.DBPath)
		if err != nil {
			log.Printf("warning: solved-state DB %q not opened: %v", opts.DBPath, err)
		} else {
			prober = &persist.CachedProber{
				TT: func(hash uint64) (persist.Record, bool) {
					e, ok := tt.Probe(hash)
					if !ok {
						return persist.Record{}, false
					}
					return persist.Record{Winner: e.Winner, Proof: e.Proof}, true
				},
				Store: store,
			}
		}
	}

	return solver.NewSolver(tt, prober, opts.MaxDepth, opts.DBMaxStones)
}
