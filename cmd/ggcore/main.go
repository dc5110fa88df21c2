// Ggcore builds a plot from a CSV file and a YAML plot description and
// prints the resolved panels.
//
// Usage:
//
//	ggcore [flags] plot.yaml data.csv
//
// The flags are:
//
//	-json
//		print JSON instead of tables
//	-seed n
//		seed the jitter adjustments
//	-debug
//		trace facet layout and scale training to stderr
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vdobler/ggcore"
)

var (
	jsonFlag  = flag.Bool("json", false, "print JSON")
	seedFlag  = flag.Int64("seed", 0, "seed for jitter, 0 means random")
	debugFlag = flag.Bool("debug", false, "trace the build")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ggcore [flags] plot.yaml data.csv\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ggcore: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	ggcore.SetDebug(*debugFlag)

	ds, err := readCSVFile(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}
	p, err := readPlotFile(flag.Arg(0), ds)
	if err != nil {
		log.Fatal(err)
	}

	opts := ggcore.Options{}
	if *seedFlag != 0 {
		opts.Seed = seedFlag
	}
	b, err := ggcore.Build(p, opts)
	if err != nil {
		var se *ggcore.SpecError
		if errors.As(err, &se) {
			log.Fatalf("bad plot description: %v", se)
		}
		log.Fatal(err)
	}

	if *jsonFlag {
		err = writeJSON(os.Stdout, b)
	} else {
		err = writeTables(os.Stdout, b)
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(b.LayerErrors) > 0 {
		os.Exit(1)
	}
}
