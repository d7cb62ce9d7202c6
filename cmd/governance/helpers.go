package main

import (
	"time"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
)

// contractDigestHex computes just the hex tool digest for one contract,
// discarding the per-component breakdown digest.ComputeToolDigest also
// returns — diff.Diff only needs the final digest string on each side.
func contractDigestHex(c contract.ToolContract, name string, now time.Time) (string, error) {
	entry, err := digest.ComputeToolDigest(name, c, now)
	if err != nil {
		return "", err
	}
	return entry.Digest, nil
}
