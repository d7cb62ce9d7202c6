// Command governance is the operator CLI for the capability governance
// toolkit, exposing the C5-C10 operations (materialize, digest, diff,
// lock, check, attest, verify-pin, scan, index, review) as cobra
// subcommands — one file per command, RunE closures, and main printing any
// returned error and exiting with status 1 — mirroring the teacher's cmd/mcpproxy command tree. CLI
// behavior is out of spec.md's scope; this is the ambient tooling
// convention carried regardless (SPEC_FULL.md §2).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "governance:", err)
		os.Exit(1)
	}
}
