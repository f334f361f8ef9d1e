// Command redosdump decodes a regexp VM bytecode file and pretty-prints it.
//
// Usage: redosdump FILE
package main

import (
	"fmt"
	"os"

	"github.com/seclab-tools/redosprobe"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: redosdump FILE")
		os.Exit(2)
	}

	buf, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "redosdump:", err)
		os.Exit(1)
	}

	program, err := redosprobe.Decode(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "redosdump:", err)
		os.Exit(1)
	}

	if err := redosprobe.DumpProgram(program); err != nil {
		fmt.Fprintln(os.Stderr, "redosdump:", err)
		os.Exit(1)
	}
}
