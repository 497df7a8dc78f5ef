// solidarioctl administers a Sou Solidário backend from the command line.
//
// Usage:
//
//	solidarioctl seed --file seed.yaml [--storage mongo --mongo-uri ...]
//	solidarioctl seed --example
//	solidarioctl progress <id|code>
//	solidarioctl code [--count n]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultOpener).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
