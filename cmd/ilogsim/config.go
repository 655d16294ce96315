package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config drives one simulation run. Zero-valued fields are filled in by
// [DefaultConfig] before a JSONC file (if any) and CLI flags are layered
// on top, highest precedence last.
type Config struct {
	// Seed seeds the deterministic RNG driving the whole run. Zero means
	// "pick one and report it", matching the original simulator's
	// behavior when no seed argument was given.
	Seed uint64 `json:"seed,omitempty"`

	// MaxLogs bounds how many concurrent logs (environments) the run
	// picks between 0 and this many.
	MaxLogs int `json:"max_logs"`

	// PayloadsPerLogMin/Max bounds how many batches (ticks) each log's
	// environment generates before going dormant; each batch holds a
	// MsgLenMin/Max-bounded number of payloads.
	PayloadsPerLogMin int `json:"payloads_per_log_min"`
	PayloadsPerLogMax int `json:"payloads_per_log_max"`

	// MsgLenMin/Max bounds how many payloads are batched into a single
	// enqueue+commit tick.
	MsgLenMin int `json:"msg_len_min"`
	MsgLenMax int `json:"msg_len_max"`

	// PayloadSizeMin/Max bounds each individual payload's byte size.
	PayloadSizeMin int `json:"payload_size_min"`
	PayloadSizeMax int `json:"payload_size_max"`

	// StorageCapacity is the fixed byte capacity given to each log's
	// storage.Mem. Runs that exceed it fail loudly (the simulator treats
	// disk overflow as a harness bug, not a scenario under test), same
	// as the capacity constants it was modeled on.
	StorageCapacity int `json:"storage_capacity"`

	// ReadCacheCapacity, KeyIndexCapacity, TxnWriteBufCapacity, and
	// DiskReadBufCapacity size each log's four interlog buffers.
	ReadCacheCapacity   int `json:"read_cache_capacity"`
	KeyIndexCapacity    int `json:"key_index_capacity"`
	TxnWriteBufCapacity int `json:"txn_write_buf_capacity"`
	DiskReadBufCapacity int `json:"disk_read_buf_capacity"`

	// ReportPath, if non-empty, is where a final JSON stats report is
	// written atomically once the run completes.
	ReportPath string `json:"report_path,omitempty"`
}

// DefaultConfig mirrors the constants the original Rust simulator used.
func DefaultConfig() Config {
	return Config{
		MaxLogs:             256,
		PayloadsPerLogMin:   100,
		PayloadsPerLogMax:   1000,
		MsgLenMin:           0,
		MsgLenMax:           50,
		PayloadSizeMin:      0,
		PayloadSizeMax:      4096,
		StorageCapacity:     10_000_000,
		ReadCacheCapacity:   1 << 20,
		KeyIndexCapacity:    1 << 20,
		TxnWriteBufCapacity: 50 * 4096,
		DiskReadBufCapacity: 4096,
	}
}

// LoadConfig reads a JSONC config file at path, merging it over
// [DefaultConfig]. A missing path is not an error: the defaults are
// returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI flag
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
