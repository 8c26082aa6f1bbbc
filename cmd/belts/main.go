// Command belts solves a lower-bounded belt-network feasibility problem.
// It reads one JSON problem document from stdin and writes either a flow
// assignment or an infeasibility certificate as JSON to stdout.
//
// Infeasibility is a normal result (exit 0, certificate on stdout);
// malformed or structurally invalid input exits 1 with a message on stderr.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/beltflow/flownet"
	"github.com/katalvlaran/beltflow/schema"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "belts:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	problem, opts, err := schema.ParseNetwork(data)
	if err != nil {
		return err
	}

	res, err := flownet.Solve(problem, opts)
	if err != nil {
		return err
	}

	doc, err := schema.EncodeNetworkResult(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(doc))

	return err
}
