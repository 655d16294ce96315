package main

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/abletheabove/interlog/pkg/interlog"
	"github.com/abletheabove/interlog/pkg/storage"
)

// Env is one simulated actor: a log plus the pre-generated shape of the
// traffic it will produce. Batch and payload sizes are drawn from the RNG
// up front; payload contents are drawn from the shared RNG as each tick
// runs.
type Env struct {
	Log *interlog.Log
	mem *storage.Mem

	// msgLens and payloadSizes are consumed from the back, mirroring the
	// original simulator's Vec::pop-driven traffic generation.
	msgLens      []int
	payloadSizes []int
}

func intRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + rng.IntN(hi-lo)
}

func fillRandom(rng *rand.Rand, buf []byte) {
	for len(buf) >= 8 {
		binary.LittleEndian.PutUint64(buf, rng.Uint64())
		buf = buf[8:]
	}

	if len(buf) > 0 {
		var tail [8]byte

		binary.LittleEndian.PutUint64(tail[:], rng.Uint64())
		copy(buf, tail[:len(buf)])
	}
}

// NewEnv mints a fresh log over a [storage.Mem] and pre-generates its
// entire traffic shape from rng.
func NewEnv(rng *rand.Rand, cfg Config) *Env {
	id := interlog.AddressFromWords(rng.Uint64(), rng.Uint64())

	mem := storage.NewMem(cfg.StorageCapacity)

	log := interlog.NewLog(id, mem, interlog.Config{
		ReadCacheCapacity:   cfg.ReadCacheCapacity,
		KeyIndexCapacity:    cfg.KeyIndexCapacity,
		TxnWriteBufCapacity: cfg.TxnWriteBufCapacity,
		DiskReadBufCapacity: cfg.DiskReadBufCapacity,
	})

	payloadsPerActor := intRange(rng, cfg.PayloadsPerLogMin, cfg.PayloadsPerLogMax)

	msgLens := make([]int, payloadsPerActor)

	totalMsgs := 0

	for i := range msgLens {
		msgLens[i] = intRange(rng, cfg.MsgLenMin, cfg.MsgLenMax)
		totalMsgs += msgLens[i]
	}

	payloadSizes := make([]int, totalMsgs)
	for i := range payloadSizes {
		payloadSizes[i] = intRange(rng, cfg.PayloadSizeMin, cfg.PayloadSizeMax)
	}

	return &Env{Log: log, mem: mem, msgLens: msgLens, payloadSizes: payloadSizes}
}

func popInt(s *[]int) (int, bool) {
	n := len(*s)
	if n == 0 {
		return 0, false
	}

	v := (*s)[n-1]
	*s = (*s)[:n-1]

	return v, true
}

// Tick enqueues and commits one batch of payloads, if this env still has
// traffic to produce. ok is false once the env has exhausted its
// pre-generated traffic and should be dropped from the simulation.
func (e *Env) Tick(rng *rand.Rand, payloadBuf []byte) (ok bool, eventsCommitted int, err error) {
	msgLen, more := popInt(&e.msgLens)
	if !more {
		return false, 0, nil
	}

	// An empty batch has nothing to commit.
	if msgLen == 0 {
		return true, 0, nil
	}

	for range msgLen {
		size, ok := popInt(&e.payloadSizes)
		if !ok {
			panic("ilogsim: zero message lens means zero payload sizes")
		}

		payload := payloadBuf[:size]
		fillRandom(rng, payload)

		if err := e.Log.Enqueue(payload); err != nil {
			return false, 0, err
		}
	}

	before := e.Log.Len()

	if err := e.Log.Commit(); err != nil {
		return false, 0, err
	}

	return true, e.Log.Len() - before, nil
}
