package container

import (
	"math"
	"sort"
)

// DictionaryOptions names the four "local-coverage-norms" parameters from
// original_source/include/dict_local_coverage_norms.hpp, plus the target
// dictionary size and epoch traversal order.
type DictionaryOptions struct {
	SampleBlock    int     // window size considered as a dictionary candidate
	EstimatorBlock int     // sub-window size used to estimate coverage
	DownSize       int     // reservoir-sampling stride divisor
	Norm           float64 // exponent applied to a candidate's distinct-hash count
	TargetSize     int     // final dictionary size in bytes
	Traversal      string  // "SEQ" or "RAND"
}

// Dictionary is spec section 3's immutable byte array. The suffix array
// the factoriser needs is built by BuildRlzStore for its own use and is not
// kept here; readers only need Bytes and Reversed.
type Dictionary struct {
	Bytes    []byte
	Reversed bool // always false; see DESIGN.md

	sa []int32 // not set by any builder in this package
}

// splitmix64 is the fixed-seed 64-bit permutation-mix spec section 4.7
// asks for when hashing estimator-block windows.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func hashWindow(data []byte, seed uint64) uint64 {
	h := seed
	for _, b := range data {
		h = splitmix64(h ^ uint64(b))
	}
	return h
}

const dictSeed = 0xD1C7_1047_A5A5_A5A5

// BuildDictionary implements the local-coverage-norms strategy of spec
// section 4.7, grounded in original_source's dict_local_coverage_norms.hpp:
// reservoir-sample estimator-block hashes, score each epoch's candidate
// sample-block windows by how many of their distinct hashes are not yet
// covered (weighted by Norm), greedily pick the best-scoring window per
// epoch, and concatenate the picks (sorted by offset) into the dictionary,
// truncated to TargetSize.
func BuildDictionary(data []byte, opts DictionaryOptions) *Dictionary {
	if opts.SampleBlock <= 0 {
		opts.SampleBlock = 1024
	}
	if opts.EstimatorBlock <= 0 {
		opts.EstimatorBlock = 8
	}
	if opts.DownSize <= 0 {
		opts.DownSize = 8
	}
	if opts.Norm == 0 {
		opts.Norm = 0.5
	}
	if opts.TargetSize <= 0 || opts.TargetSize > len(data) {
		opts.TargetSize = len(data)
	}

	n := len(data)
	if n == 0 {
		return &Dictionary{Bytes: nil}
	}

	// Step 1+2: reservoir-sample estimator-block windows (geometric skip)
	// and build exact counts of their hashes.
	counts := make(map[uint64]int)
	rng := splitmix64(dictSeed)
	for i := 0; i+opts.EstimatorBlock <= n; {
		h := hashWindow(data[i:i+opts.EstimatorBlock], dictSeed)
		counts[h]++
		rng = splitmix64(rng)
		skip := 1 + int(rng%uint64(opts.DownSize*2))
		i += skip
	}

	scale := n / opts.TargetSize
	if scale < 1 {
		scale = 1
	}
	epochSize := scale * opts.SampleBlock
	if epochSize < opts.SampleBlock {
		epochSize = opts.SampleBlock
	}

	var epochs []int
	for e := 0; e*epochSize < n; e++ {
		epochs = append(epochs, e)
	}
	if opts.Traversal == "RAND" {
		r := splitmix64(dictSeed ^ 0xABCDEF)
		for i := len(epochs) - 1; i > 0; i-- {
			r = splitmix64(r)
			j := int(r % uint64(i+1))
			epochs[i], epochs[j] = epochs[j], epochs[i]
		}
	}

	covered := make(map[uint64]bool)
	var picks []int
	for _, e := range epochs {
		lo := e * epochSize
		hi := lo + epochSize
		if hi > n {
			hi = n
		}
		bestOff := -1
		bestScore := -1.0
		for off := lo; off+opts.SampleBlock <= hi; off++ {
			var distinct int
			seen := make(map[uint64]bool)
			for j := off; j+opts.EstimatorBlock <= off+opts.SampleBlock; j += opts.EstimatorBlock {
				h := hashWindow(data[j:j+opts.EstimatorBlock], dictSeed)
				if seen[h] || covered[h] {
					continue
				}
				seen[h] = true
				if cnt := counts[h]; cnt > 0 {
					distinct++
				}
			}
			score := weightedScore(distinct, opts.Norm)
			if score > bestScore {
				bestScore = score
				bestOff = off
			}
		}
		if bestOff < 0 {
			continue
		}
		picks = append(picks, bestOff)
		for j := bestOff; j+opts.EstimatorBlock <= bestOff+opts.SampleBlock; j += opts.EstimatorBlock {
			covered[hashWindow(data[j:j+opts.EstimatorBlock], dictSeed)] = true
		}
	}

	sort.Ints(picks)
	dict := make([]byte, 0, opts.TargetSize)
	for _, off := range picks {
		end := off + opts.SampleBlock
		if end > n {
			end = n
		}
		dict = append(dict, data[off:end]...)
		if len(dict) >= opts.TargetSize {
			break
		}
	}
	if len(dict) > opts.TargetSize {
		dict = dict[:opts.TargetSize]
	}
	return &Dictionary{Bytes: dict}
}

func weightedScore(distinct int, norm float64) float64 {
	if distinct == 0 {
		return 0
	}
	return math.Pow(float64(distinct), norm)
}
