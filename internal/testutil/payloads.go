package testutil

import "math/rand/v2"

// RandomPayload returns a payload of a random length in [minLen, maxLen]
// (inclusive), filled with random bytes.
func RandomPayload(rng *rand.Rand, minLen, maxLen int) []byte {
	length := minLen
	if maxLen > minLen {
		length += rng.IntN(maxLen - minLen + 1)
	}

	payload := make([]byte, length)
	for i := range payload {
		payload[i] = byte(rng.IntN(256))
	}

	return payload
}

// RandomBatches partitions n payloads into randomly sized batches of
// [minBatch, maxBatch] payloads each, the last batch possibly smaller.
// Each payload's length is itself random within [minLen, maxLen].
func RandomBatches(rng *rand.Rand, n, minBatch, maxBatch, minLen, maxLen int) [][][]byte {
	var batches [][][]byte

	remaining := n

	for remaining > 0 {
		size := minBatch
		if maxBatch > minBatch {
			size += rng.IntN(maxBatch - minBatch + 1)
		}

		if size > remaining {
			size = remaining
		}

		batch := make([][]byte, size)
		for i := range batch {
			batch[i] = RandomPayload(rng, minLen, maxLen)
		}

		batches = append(batches, batch)
		remaining -= size
	}

	return batches
}
