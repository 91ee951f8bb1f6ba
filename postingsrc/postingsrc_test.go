package postingsrc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildD2si renders the d2si binary format described in spec section 6:
// docs is [1][num_docs] then per term [list_len][doc_id x list_len];
// freqs is [list_len][freq x list_len] per term with no header.
func buildD2si(numDocs int, lists [][2][]uint32) (docs, freqs []byte) {
	var d, f bytes.Buffer
	binary.Write(&d, binary.LittleEndian, uint32(1))
	binary.Write(&d, binary.LittleEndian, uint32(numDocs))
	for _, l := range lists {
		binary.Write(&d, binary.LittleEndian, uint32(len(l[0])))
		binary.Write(&d, binary.LittleEndian, l[0])
		binary.Write(&f, binary.LittleEndian, uint32(len(l[1])))
		binary.Write(&f, binary.LittleEndian, l[1])
	}
	return d.Bytes(), f.Bytes()
}

func TestSourceRoundTrip(t *testing.T) {
	lists := [][2][]uint32{
		{{1, 3, 7}, {2, 1, 4}},
		{{2, 4, 5, 9}, {1, 1, 1, 3}},
		{{100}, {9}},
	}
	docs, freqs := buildD2si(100, lists)

	src, err := Open(bytes.NewReader(docs), bytes.NewReader(freqs))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.NumDocs != 100 {
		t.Fatalf("NumDocs = %d, want 100", src.NumDocs)
	}

	var got [][2][]uint64
	for {
		docIDs, freqVals, ok, err := src.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, [2][]uint64{append([]uint64(nil), docIDs...), append([]uint64(nil), freqVals...)})
	}

	if len(got) != len(lists) {
		t.Fatalf("got %d lists, want %d", len(got), len(lists))
	}
	for i, l := range lists {
		wantDocs := make([]uint64, len(l[0]))
		for j, v := range l[0] {
			wantDocs[j] = uint64(v)
		}
		wantFreqs := make([]uint64, len(l[1]))
		for j, v := range l[1] {
			wantFreqs[j] = uint64(v)
		}
		if diff := cmp.Diff(wantDocs, got[i][0]); diff != "" {
			t.Errorf("list %d docIDs mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(wantFreqs, got[i][1]); diff != "" {
			t.Errorf("list %d freqs mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestSourceBadHeader(t *testing.T) {
	var d bytes.Buffer
	binary.Write(&d, binary.LittleEndian, uint32(2)) // must be 1
	binary.Write(&d, binary.LittleEndian, uint32(10))
	_, err := Open(bytes.NewReader(d.Bytes()), bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected an error for a malformed docs header")
	}
}

func TestSourceLengthMismatch(t *testing.T) {
	docs, _ := buildD2si(10, [][2][]uint32{{{1, 2}, {1, 1}}})
	var badFreqs bytes.Buffer
	binary.Write(&badFreqs, binary.LittleEndian, uint32(3)) // docs list_len is 2
	binary.Write(&badFreqs, binary.LittleEndian, []uint32{1, 1, 1})

	src, err := Open(bytes.NewReader(docs), bytes.NewReader(badFreqs.Bytes()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, _, _, err := src.Next(); err == nil {
		t.Fatal("expected a docs/freqs length mismatch error")
	}
}

func TestSourceNonIncreasingDocIDs(t *testing.T) {
	docs, freqs := buildD2si(10, [][2][]uint32{{{5, 3}, {1, 1}}})
	src, err := Open(bytes.NewReader(docs), bytes.NewReader(freqs))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, _, _, err := src.Next(); err == nil {
		t.Fatal("expected an error for non-increasing doc IDs")
	}
}
