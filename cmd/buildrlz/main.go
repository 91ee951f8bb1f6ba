// Command buildrlz is spec section 6's RLZ builder collaborator: it reads
// a raw byte stream, learns a dictionary against it with the
// local-coverage-norms strategy, factorises the stream block-by-block,
// and writes the fingerprint-keyed RlzStore files through package
// container. Flag surface and plain-fmt progress output follow the same
// convention as cmd/buildinvidx.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dsnet/invidx/container"
)

const (
	defaultBlockSize        = 64 * 1024
	defaultLiteralThreshold = 3
)

func main() {
	var (
		collDir  = flag.String("c", "", "collection output directory (required)")
		inFile   = flag.String("i", "", "input file to factorise against a learned dictionary (required)")
		dictMB   = flag.Int("s", 4, "target dictionary size, in MiB")
		force    = flag.Bool("f", false, "force rebuild even if the collection dir already exists")
		_        = flag.Int("t", 1, "thread count (accepted for flag-surface parity; dictionary build and factorisation here are single-threaded)")
	)
	flag.Parse()

	if *collDir == "" || *inFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildrlz: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "buildrlz: learning a %d MiB dictionary from %d bytes\n", *dictMB, len(data))
	dict := container.BuildDictionary(data, container.DictionaryOptions{
		SampleBlock:    4096,
		EstimatorBlock: 8,
		DownSize:       8,
		Norm:           0.5,
		TargetSize:     *dictMB * 1 << 20,
	})

	fp := container.RlzFingerprint(data, dict.Bytes)
	if !*force {
		if _, err := os.Stat(*collDir); err == nil {
			fmt.Fprintf(os.Stderr, "buildrlz: %s already exists; use -f to force a rebuild\n", *collDir)
			return
		}
	}
	if err := os.MkdirAll(*collDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "buildrlz: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "buildrlz: factorising against a %d-byte dictionary\n", len(dict.Bytes))
	store, err := container.BuildRlzStore(dict, defaultBlockSize, data, defaultLiteralThreshold, container.DefaultFactorCoder())
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildrlz: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(container.DictFilePath(*collDir, fp), dict.Bytes, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "buildrlz: %v\n", err)
		os.Exit(1)
	}
	if err := container.SaveRlzStore(*collDir, store, fp, "rlz"); err != nil {
		fmt.Fprintf(os.Stderr, "buildrlz: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "buildrlz: wrote %d blocks\n", len(store.BlockOffsets))
}
