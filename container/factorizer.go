package container

import "sort"

// buildSuffixArray returns the indices of dict's suffixes in lexicographic
// order. A plain sort.Slice comparison is cubic-ish in the worst case, but
// the dictionaries this factoriser targets are bounded by DictionaryOptions
// .TargetSize (typically a few MB), which this keeps fast enough for a
// build-time, non-hot-path index step.
func buildSuffixArray(dict []byte) []int32 {
	n := len(dict)
	sa := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(a, b int) bool {
		return lessSuffix(dict, int(sa[a]), int(sa[b]))
	})
	return sa
}

func lessSuffix(dict []byte, a, b int) bool {
	for a < len(dict) && b < len(dict) {
		if dict[a] != dict[b] {
			return dict[a] < dict[b]
		}
		a++
		b++
	}
	return a == len(dict) && b != len(dict)
}

func compareSuffix(dict []byte, suffix int, pattern []byte) int {
	i := suffix
	for _, pb := range pattern {
		if i >= len(dict) {
			return -1
		}
		if dict[i] != pb {
			if dict[i] < pb {
				return -1
			}
			return 1
		}
		i++
	}
	return 0
}

// longestMatch finds the longest prefix of text shared with any suffix of
// dict: one binary search finds where text sorts among the suffix array's
// suffixes, and the common prefix length is then measured against the
// suffixes just before, at and after that position. Among equally long
// matches the first one checked (the one before that position) wins.
func longestMatch(dict []byte, sa []int32, text []byte) (offset int, length int) {
	if len(text) == 0 || len(sa) == 0 {
		return 0, 0
	}

	lo, hi := 0, len(sa)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareSuffix(dict, int(sa[mid]), text) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(sa) {
		lo--
	}

	best := 0
	bestOff := int(sa[lo])
	for _, cand := range []int{lo - 1, lo, lo + 1} {
		if cand < 0 || cand >= len(sa) {
			continue
		}
		off := int(sa[cand])
		l := commonPrefixLen(dict[off:], text)
		if l > best {
			best = l
			bestOff = off
		}
	}
	return bestOff, best
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Factor is one parsed unit of a factorised block: either a Copy referencing
// [DictOffset, DictOffset+Length) in the dictionary, or a single Literal
// byte. Length==0 is reserved for the "no match at all" case and is always
// encoded as a Literal, per spec section 4.7.
type Factor struct {
	Copy   bool
	Offset int
	Length int
	Lit    byte
}

// FactorizeBlock greedily parses data against dict using longestMatch,
// emitting a Copy whenever the longest match exceeds literalThreshold and a
// run of Literal factors otherwise — this is the "emit literals instead of
// a short copy, since the copy's offset would cost more bits than the
// literals it saves" rule spec section 4.7 describes, and resolves literal
// test scenario 4 (dictionary "ABCABCX", block "ABCX" matches length 4 at
// offset 3, emitted as a single Copy with zero literals).
func FactorizeBlock(dict *Dictionary, sa []int32, data []byte, literalThreshold int) []Factor {
	var factors []Factor
	for i := 0; i < len(data); {
		off, length := longestMatch(dict.Bytes, sa, data[i:])
		if length > literalThreshold {
			factors = append(factors, Factor{Copy: true, Offset: off, Length: length})
			i += length
			continue
		}
		factors = append(factors, Factor{Lit: data[i]})
		i++
	}
	return factors
}
