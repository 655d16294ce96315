// ilogsim drives many concurrent interlog instances against
// storage.Mem, replaying the traffic-shape simulation the core was
// originally validated with: each simulated actor commits random
// batches of random-sized payloads on an irregular schedule until it
// exhausts its pre-generated traffic.
//
// Usage:
//
//	ilogsim [--config path.jsonc] [--seed N] [--report path.json]
//
// With no --seed (and none set in the config file), a random seed is
// picked and printed so the run can be reproduced.
package main

import (
	"bytes"
	cryptorand "crypto/rand"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/abletheabove/interlog/pkg/fs"
)

const maxSimTimeMS = uint64(1000 * 60 * 60) // one hour of simulated time

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("ilogsim", flag.ContinueOnError)

	configPath := flags.String("config", "", "path to a JSONC simulation config")
	seedFlag := flags.Uint64("seed", 0, "deterministic RNG seed (0 picks a random one)")
	reportPath := flags.String("report", "", "path to atomically write a final JSON stats report")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}

	if flags.Changed("seed") {
		cfg.Seed = *seedFlag
	}

	if flags.Changed("report") {
		cfg.ReportPath = *reportPath
	}

	seed := cfg.Seed
	if seed == 0 {
		var buf [8]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			return fmt.Errorf("picking a random seed: %w", err)
		}

		seed = bytesToUint64(buf[:])
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	nLogs := intRange(rng, 0, cfg.MaxLogs)
	environments := make([]*Env, nLogs)

	for i := range environments {
		environments[i] = NewEnv(rng, cfg)
	}

	fmt.Printf("Seed is %d\n", seed)
	fmt.Printf("Number of actors %d\n", len(environments))

	stats := &Stats{Seed: seed, Actors: len(environments)}
	payloadBuf := make([]byte, max(cfg.PayloadSizeMax, 1))

	for ms := uint64(0); ms < maxSimTimeMS; ms += 10 {
		if len(environments) == 0 {
			break
		}

		alive := environments[:0]

		for _, env := range environments {
			more, committed, err := env.Tick(rng, payloadBuf)
			if err != nil {
				return fmt.Errorf("actor %s failed at %dms: %w", env.Log.ID(), ms, err)
			}

			if committed > 0 {
				stats.update(committed)
			}

			if more {
				alive = append(alive, env)
			}
		}

		environments = alive
	}

	fmt.Printf("%+v\n", *stats)

	rate := float64(stats.TotalCommits) / (float64(maxSimTimeMS) / 1000)
	fmt.Printf("%.2f transactions/second\n", rate)

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, stats); err != nil {
			return err
		}
	}

	return nil
}

func writeReport(path string, stats *Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	writer := fs.NewAtomicWriter(fs.NewReal())
	if err := writer.WriteWithDefaults(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	return nil
}

func bytesToUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}

	return v
}
