// Command buildinvidx is the collaborator CLI spec section 6 describes:
// it parses the builder flags, drives postingsrc against a d2si input
// prefix, and writes a flat inverted index through package container. It
// is a thin wrapper — all compression logic lives in the core packages —
// following the teacher's own internal/tool/bench/main.go convention of a
// stdlib flag.FlagSet plus plain fmt.Fprintf progress output, no logging
// library, no config file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsnet/invidx/container"
	"github.com/dsnet/invidx/listfmt"
	"github.com/dsnet/invidx/postingsrc"
)

func main() {
	var (
		collDir  = flag.String("c", "", "collection output directory (required)")
		inPrefix = flag.String("i", "", "input prefix; reads <prefix>.docs and <prefix>.freqs (required)")
		encoding = flag.String("e", "vbyte", "doc/freq list encoding: u32|vbyte|s16|op4|interp|ef")
		force    = flag.Bool("f", false, "force rebuild even if the collection dir already has an index")
		blockRst = flag.Bool("b", false, "use interp_block (per-list-block restart) for doc lists instead of plain interp")
		_        = flag.Int("t", 1, "thread count (accepted for flag-surface parity; the flat index build is single-pass)")
	)
	flag.Parse()

	if *collDir == "" || *inPrefix == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !*force {
		if _, err := os.Stat(filepath.Join(*collDir, "raw_data.meta")); err == nil {
			fmt.Fprintf(os.Stderr, "buildinvidx: %s already has an index; use -f to force a rebuild\n", *collDir)
			return
		}
	}

	if err := os.MkdirAll(*collDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}

	docFormat, freqFormat, err := pickFormats(*encoding, *blockRst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}

	docsFile, err := os.Open(*inPrefix + ".docs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}
	defer docsFile.Close()
	freqsFile, err := os.Open(*inPrefix + ".freqs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}
	defer freqsFile.Close()

	src, err := postingsrc.Open(docsFile, freqsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "buildinvidx: building %s (encoding=%s, num_docs=%d)\n", *collDir, *encoding, src.NumDocs)
	idx, err := container.BuildFlatIndex(src, src.NumDocs, docFormat, freqFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}
	if err := idx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}

	if err := container.SaveFlatIndex(*collDir, idx); err != nil {
		fmt.Fprintf(os.Stderr, "buildinvidx: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "buildinvidx: wrote %d lists, %d postings\n", idx.NumLists, idx.NumPostings)
}

// encodingAliases maps spec section 6's short CLI flag values onto the
// listfmt catalogue's names.
var encodingAliases = map[string]string{
	"s16": "simple16",
}

func pickFormats(encoding string, blockRestart bool) (doc, freq listfmt.ListFormat, err error) {
	if blockRestart && encoding == "interp" {
		return listfmt.InterpBlock{BlockSize: 128}, listfmt.FreqFormats()["interp"], nil
	}
	if alias, ok := encodingAliases[encoding]; ok {
		encoding = alias
	}
	docs := listfmt.DocFormats()
	freqs := listfmt.FreqFormats()
	d, ok := docs[encoding]
	if !ok {
		return nil, nil, fmt.Errorf("unknown encoding %q", encoding)
	}
	f := freqs[encoding]
	return d, f, nil
}
