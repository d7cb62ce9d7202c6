package lockfile

import (
	"sort"
	"time"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
	"github.com/vinkius-labs/mcp-fusion-go/internal/hash"
)

// DriftCheck is the result of comparing a sealed lockfile against a
// server's current contracts (§4.7 "Drift check").
type DriftCheck struct {
	OK               bool
	Message          string
	Added            []string
	Removed          []string
	Changed          []string
	Unchanged        []string
	AddedPrompts     []string
	RemovedPrompts   []string
	ChangedPrompts   []string
	UnchangedPrompts []string
}

// CheckLockfileOptions carries the current prompt set for comparison.
type CheckLockfileOptions struct {
	Prompts []PromptInput
}

// CheckLockfile compares a lockfile's sealed tool/prompt surface against
// the server's current contracts (§4.7). The fast path recomputes the
// current top-level integrity digest and short-circuits to ok=true when it
// matches the lockfile's; otherwise it partitions names by presence and
// per-record digest. now is the reference time used only to stamp
// intermediate digest computations, which do not depend on it.
func CheckLockfile(l CapabilityLockfile, currentContracts map[string]contract.ToolContract, opts CheckLockfileOptions, now time.Time) (DriftCheck, error) {
	currentServerDigest, err := digest.ComputeServerDigest(currentContracts, now)
	if err != nil {
		return DriftCheck{}, err
	}

	currentPromptRecords, err := buildPromptRecords(opts.Prompts)
	if err != nil {
		return DriftCheck{}, err
	}

	currentTopLevel, err := topLevelIntegrityDigest(currentServerDigest.Digest, currentPromptRecords)
	if err != nil {
		return DriftCheck{}, err
	}

	if "sha256:"+currentTopLevel == l.IntegrityDigest {
		return DriftCheck{OK: true, Message: "up to date"}, nil
	}

	check := DriftCheck{}

	for name, entry := range currentServerDigest.Tools {
		record, sealed := l.Capabilities.Tools[name]
		switch {
		case !sealed:
			check.Added = append(check.Added, name)
		case "sha256:"+entry.Digest == record.IntegrityDigest:
			check.Unchanged = append(check.Unchanged, name)
		default:
			check.Changed = append(check.Changed, name)
		}
	}
	for name := range l.Capabilities.Tools {
		if _, current := currentServerDigest.Tools[name]; !current {
			check.Removed = append(check.Removed, name)
		}
	}

	for name, record := range currentPromptRecords {
		sealed, existed := l.Capabilities.Prompts[name]
		switch {
		case !existed:
			check.AddedPrompts = append(check.AddedPrompts, name)
		case record.IntegrityDigest == sealed.IntegrityDigest:
			check.UnchangedPrompts = append(check.UnchangedPrompts, name)
		default:
			check.ChangedPrompts = append(check.ChangedPrompts, name)
		}
	}
	for name := range l.Capabilities.Prompts {
		if _, current := currentPromptRecords[name]; !current {
			check.RemovedPrompts = append(check.RemovedPrompts, name)
		}
	}

	sort.Strings(check.Added)
	sort.Strings(check.Removed)
	sort.Strings(check.Changed)
	sort.Strings(check.Unchanged)
	sort.Strings(check.AddedPrompts)
	sort.Strings(check.RemovedPrompts)
	sort.Strings(check.ChangedPrompts)
	sort.Strings(check.UnchangedPrompts)

	check.OK = len(check.Added) == 0 && len(check.Removed) == 0 && len(check.Changed) == 0 &&
		len(check.AddedPrompts) == 0 && len(check.RemovedPrompts) == 0 && len(check.ChangedPrompts) == 0

	if check.OK {
		check.Message = "up to date"
	} else {
		check.Message = "lockfile is stale: current server surface no longer matches the sealed capability set"
	}

	return check, nil
}

func buildPromptRecords(prompts []PromptInput) (map[string]PromptRecord, error) {
	out := make(map[string]PromptRecord, len(prompts))
	for _, p := range prompts {
		promptDigest, err := hash.OfValue(p)
		if err != nil {
			return nil, err
		}
		out[p.Name] = PromptRecord{
			Description:      p.Description,
			Title:            p.Title,
			Arguments:        sortedCopy(p.Arguments),
			Tags:             sortedCopy(p.Tags),
			HydrationTimeout: p.HydrationTimeout,
			HasMiddleware:    p.HasMiddleware,
			IntegrityDigest:  "sha256:" + promptDigest,
		}
	}
	return out, nil
}
