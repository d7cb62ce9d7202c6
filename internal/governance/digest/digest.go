// Package digest computes content-addressed fingerprints over capability
// contracts: one digest per contract component, a combined tool digest,
// and an aggregate ServerDigest over every tool a server exposes.
package digest

import (
	"sort"
	"time"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/hash"
)

// ComputeToolDigest computes the four component digests and the combined
// tool digest for one contract (§4.5).
func ComputeToolDigest(name string, c contract.ToolContract, now time.Time) (contract.ToolDigestEntry, error) {
	surfaceDigest, err := hash.OfValue(c.Surface)
	if err != nil {
		return contract.ToolDigestEntry{}, err
	}
	behaviorDigest, err := hash.OfValue(c.Behavior)
	if err != nil {
		return contract.ToolDigestEntry{}, err
	}
	econDigest, err := hash.OfValue(c.TokenEconomics)
	if err != nil {
		return contract.ToolDigestEntry{}, err
	}
	entDigest, err := hash.OfValue(c.Entitlements)
	if err != nil {
		return contract.ToolDigestEntry{}, err
	}

	components := contract.DigestComponents{
		Surface:        surfaceDigest,
		Behavior:       behaviorDigest,
		TokenEconomics: econDigest,
		Entitlements:   entDigest,
	}

	toolDigest, err := hash.OfValue([]string{
		components.Surface,
		components.Behavior,
		components.TokenEconomics,
		components.Entitlements,
	})
	if err != nil {
		return contract.ToolDigestEntry{}, err
	}

	return contract.ToolDigestEntry{
		Digest:     toolDigest,
		Components: components,
		ComputedAt: now,
		ToolName:   name,
	}, nil
}

// ComputeServerDigest computes a ServerDigest over every contract a server
// exposes (§3, §4.5). Contracts are iterated in sorted-name order so the
// result is deterministic regardless of map iteration order.
func ComputeServerDigest(contracts map[string]contract.ToolContract, now time.Time) (contract.ServerDigest, error) {
	names := contract.SortedNames(contracts)

	tools := make(map[string]contract.ToolDigestEntry, len(names))
	digestsByName := make(map[string]string, len(names))
	for _, name := range names {
		entry, err := ComputeToolDigest(name, contracts[name], now)
		if err != nil {
			return contract.ServerDigest{}, err
		}
		tools[name] = entry
		digestsByName[name] = entry.Digest
	}

	serverDigest, err := hash.OfValue(digestsByName)
	if err != nil {
		return contract.ServerDigest{}, err
	}

	return contract.ServerDigest{
		Digest:     serverDigest,
		Tools:      tools,
		ComputedAt: now,
	}, nil
}

// ComparisonResult is the outcome of comparing two ServerDigests (§4.5).
type ComparisonResult struct {
	ServerDigestChanged bool
	Added               []string
	Removed             []string
	Changed             []string
	Unchanged           []string
}

// CompareServerDigests partitions the union of tool names across before and
// after into added/removed/changed/unchanged (§4.5). The four lists
// partition the union; only changed and unchanged intersect both sides.
func CompareServerDigests(before, after contract.ServerDigest) ComparisonResult {
	result := ComparisonResult{ServerDigestChanged: before.Digest != after.Digest}

	for name, afterEntry := range after.Tools {
		beforeEntry, existed := before.Tools[name]
		switch {
		case !existed:
			result.Added = append(result.Added, name)
		case beforeEntry.Digest != afterEntry.Digest:
			result.Changed = append(result.Changed, name)
		default:
			result.Unchanged = append(result.Unchanged, name)
		}
	}
	for name := range before.Tools {
		if _, stillPresent := after.Tools[name]; !stillPresent {
			result.Removed = append(result.Removed, name)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)
	sort.Strings(result.Unchanged)
	return result
}
