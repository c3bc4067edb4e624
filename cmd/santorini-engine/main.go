// Command santorini-engine runs the Santorini search engine as a long-lived
// process speaking spec.md §6's line protocol over stdin/stdout.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/hailam/santorini/internal/engine"
	"github.com/hailam/santorini/internal/protocol"
	"github.com/hailam/santorini/internal/storage"
)

const defaultWeightsName = "santorini.nnue"

var (
	weightsPath = flag.String("weights", "", "path to NNUE weights file (default: auto-detect "+defaultWeightsName+")")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
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

	store, err := storage.NewStorage()
	if err != nil {
		log.Printf("could not open engine storage, running without persistence: %v", err)
		store = nil
	}
	var cfg *storage.EngineConfig
	if store != nil {
		cfg, err = store.LoadConfig()
		if err != nil {
			log.Printf("could not load engine config, using defaults: %v", err)
			cfg = storage.DefaultConfig()
		}
	} else {
		cfg = storage.DefaultConfig()
	}

	weights := *weightsPath
	if weights == "" {
		weights = cfg.WeightsPath
	}
	if weights == "" {
		weights = findWeightsFile()
	}

	eng, err := engine.NewEngine(weights)
	if err != nil {
		log.Fatalf("could not start engine: %v", err)
	}
	if weights == "" {
		log.Printf("no NNUE weights file found, running with randomly initialized weights")
	} else {
		log.Printf("loaded NNUE weights from %s", weights)
	}

	if store != nil {
		eng.Store = store
		defer store.Close()

		cfg.WeightsPath = weights
		if err := store.SaveConfig(cfg); err != nil {
			log.Printf("could not persist engine config: %v", err)
		}
	}

	session := protocol.NewSession(eng, os.Stdout)
	session.SetDefaultMoveTime(cfg.DefaultMoveTime)
	if err := session.Run(os.Stdin); err != nil {
		log.Fatalf("protocol session ended with error: %v", err)
	}
}

// findWeightsFile searches the locations an operator is likely to have
// dropped a trained weights file, mirroring the teacher's autoLoadNNUE
// search order (cmd/chessplay-uci/main.go).
func findWeightsFile() string {
	searchPaths := []string{
		filepath.Join(homeDir(), ".santorini"),
		"./weights",
		".",
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, defaultWeightsName)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
