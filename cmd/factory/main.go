// Command factory plans steady-state production rates for a crafting
// plant. It reads one JSON plant document from stdin and writes either a
// sustainable plan or a bottleneck report as JSON to stdout.
//
// An unreachable target is a normal result (exit 0, hints on stdout);
// malformed or structurally invalid input exits 1 with a message on stderr.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/beltflow/schema"
	"github.com/katalvlaran/beltflow/steady"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "factory:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	plant, err := schema.ParsePlant(data)
	if err != nil {
		return err
	}

	res, err := steady.Solve(plant, steady.DefaultOptions())
	if err != nil {
		return err
	}

	doc, err := schema.EncodePlantResult(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(doc))

	return err
}
