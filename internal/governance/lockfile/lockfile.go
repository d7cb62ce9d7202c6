// Package lockfile implements the capability lockfile engine (§4.7): it
// serializes the accepted set of tool and prompt contracts into a sealed,
// canonical JSON artifact, and checks a server's current contracts for
// drift against a previously-generated lockfile.
package lockfile

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang.org/x/mod/semver"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/digest"
	"github.com/vinkius-labs/mcp-fusion-go/internal/hash"
)

const lockfileVersion = 1

// ToolRecord is the per-tool entry inside a CapabilityLockfile (§4.7 step 1).
type ToolRecord struct {
	Surface struct {
		Description       *string  `json:"description,omitempty"`
		Tags              []string `json:"tags"`
		Actions           []string `json:"actions"`
		InputSchemaDigest string   `json:"inputSchemaDigest"`
	} `json:"surface"`
	Behavior struct {
		DestructiveActions []string `json:"destructiveActions"`
		ReadOnlyActions    []string `json:"readOnlyActions"`
		EgressSchemaDigest *string  `json:"egressSchemaDigest,omitempty"`
	} `json:"behavior"`
	TokenEconomics  contract.TokenEconomics `json:"tokenEconomics"`
	Entitlements    contract.Entitlements   `json:"entitlements"`
	IntegrityDigest string                  `json:"integrityDigest"`
}

// PromptRecord is the per-prompt entry inside a CapabilityLockfile (§4.7
// step 2).
type PromptRecord struct {
	Description      string   `json:"description"`
	Title            string   `json:"title"`
	Arguments        []string `json:"arguments"`
	Tags             []string `json:"tags"`
	HydrationTimeout *int     `json:"hydrationTimeout"`
	HasMiddleware    bool     `json:"hasMiddleware"`
	IntegrityDigest  string   `json:"integrityDigest"`
}

// Capabilities groups the sealed tool and prompt records.
type Capabilities struct {
	Tools   map[string]ToolRecord   `json:"tools"`
	Prompts map[string]PromptRecord `json:"prompts,omitempty"`
}

// CapabilityLockfile is the sealed, integrity-digested artifact recording a
// server's accepted tool/prompt surface (§4.7).
type CapabilityLockfile struct {
	LockfileVersion int          `json:"lockfileVersion"`
	ServerName      string       `json:"serverName"`
	FusionVersion   string       `json:"fusionVersion"`
	GeneratedAt     time.Time    `json:"generatedAt"`
	IntegrityDigest string       `json:"integrityDigest"`
	Capabilities    Capabilities `json:"capabilities"`

	// extra preserves any unknown top-level fields encountered while
	// parsing, so round-tripping a lockfile written by a newer version
	// of this toolkit does not silently drop data (§4.7 "Parsing").
	extra map[string]json.RawMessage
}

// PromptInput is the materialized-prompt-builder projection the lockfile
// generator consumes (§4.7: "prompts: a sequence of prompt builders").
type PromptInput struct {
	Name             string
	Description      string
	Title            string
	Tags             []string
	Arguments        []string
	HasMiddleware    bool
	HydrationTimeout *int
}

// Options carries the optional prompt set for GenerateLockfile.
type Options struct {
	Prompts []PromptInput
}

// GenerateLockfile builds a sealed CapabilityLockfile from a server's
// current contracts (and, optionally, prompts) (§4.7).
func GenerateLockfile(serverName string, contracts map[string]contract.ToolContract, fusionVersion string, opts Options, now time.Time) (CapabilityLockfile, error) {
	serverDigest, err := digest.ComputeServerDigest(contracts, now)
	if err != nil {
		return CapabilityLockfile{}, err
	}

	tools := make(map[string]ToolRecord, len(contracts))
	for _, name := range contract.SortedNames(contracts) {
		c := contracts[name]
		entry := serverDigest.Tools[name]

		var record ToolRecord
		record.Surface.Description = c.Surface.Description
		record.Surface.Tags = sortedCopy(c.Surface.Tags)
		record.Surface.Actions = sortedCopy(c.SortedActionNames())
		record.Surface.InputSchemaDigest = c.Surface.InputSchemaDigest

		record.Behavior.EgressSchemaDigest = c.Behavior.EgressSchemaDigest
		for _, actionName := range c.SortedActionNames() {
			action := c.Surface.Actions[actionName]
			if action.Destructive {
				record.Behavior.DestructiveActions = append(record.Behavior.DestructiveActions, actionName)
			}
			if action.ReadOnly {
				record.Behavior.ReadOnlyActions = append(record.Behavior.ReadOnlyActions, actionName)
			}
		}

		record.TokenEconomics = c.TokenEconomics
		record.Entitlements = c.Entitlements
		record.IntegrityDigest = "sha256:" + entry.Digest

		tools[name] = record
	}

	prompts, err := buildPromptRecords(opts.Prompts)
	if err != nil {
		return CapabilityLockfile{}, err
	}

	topLevelDigest, err := topLevelIntegrityDigest(serverDigest.Digest, prompts)
	if err != nil {
		return CapabilityLockfile{}, err
	}

	return CapabilityLockfile{
		LockfileVersion: lockfileVersion,
		ServerName:      serverName,
		FusionVersion:   fusionVersion,
		GeneratedAt:     now,
		IntegrityDigest: "sha256:" + topLevelDigest,
		Capabilities: Capabilities{
			Tools:   tools,
			Prompts: prompts,
		},
	}, nil
}

// topLevelIntegrityDigest folds the server digest and the prompt record
// set into one combined digest (§4.7 step 3: "include prompt digests in
// the same aggregation input").
func topLevelIntegrityDigest(serverDigest string, prompts map[string]PromptRecord) (string, error) {
	if len(prompts) == 0 {
		return serverDigest, nil
	}
	return hash.OfValue(struct {
		ServerDigest string                  `json:"serverDigest"`
		Prompts      map[string]PromptRecord `json:"prompts"`
	}{serverDigest, prompts})
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// SerializeLockfile renders a lockfile as canonical JSON with a trailing
// newline (§4.7 "Serialization").
func SerializeLockfile(l CapabilityLockfile) (string, error) {
	canonical, err := hash.Canonical(l)
	if err != nil {
		return "", err
	}
	return canonical + "\n", nil
}

// ParseLockfile returns the parsed lockfile only if it satisfies every
// structural requirement in §4.7 ("Parsing"); otherwise it reports ok=false
// with no error, matching the spec's "sentinel absence" contract.
func ParseLockfile(text string) (CapabilityLockfile, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return CapabilityLockfile{}, false
	}

	var version int
	if v, ok := raw["lockfileVersion"]; !ok || json.Unmarshal(v, &version) != nil || version != lockfileVersion {
		return CapabilityLockfile{}, false
	}

	required := []string{"serverName", "fusionVersion", "generatedAt", "integrityDigest", "capabilities"}
	for _, field := range required {
		if _, ok := raw[field]; !ok {
			return CapabilityLockfile{}, false
		}
	}

	var capsRaw map[string]json.RawMessage
	if err := json.Unmarshal(raw["capabilities"], &capsRaw); err != nil {
		return CapabilityLockfile{}, false
	}
	if _, ok := capsRaw["tools"]; !ok {
		return CapabilityLockfile{}, false
	}

	var l CapabilityLockfile
	if err := json.Unmarshal([]byte(text), &l); err != nil {
		return CapabilityLockfile{}, false
	}

	extra := make(map[string]json.RawMessage)
	known := map[string]bool{
		"lockfileVersion": true, "serverName": true, "fusionVersion": true,
		"generatedAt": true, "integrityDigest": true, "capabilities": true,
	}
	for k, v := range raw {
		if !known[k] {
			extra[k] = v
		}
	}
	l.extra = extra

	return l, true
}

// ValidateFusionVersion reports whether a fusionVersion string is a valid
// semantic version understood by golang.org/x/mod/semver (§4.7 generation
// input validation).
func ValidateFusionVersion(version string) error {
	v := version
	if len(v) == 0 || v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("lockfile: %q is not a valid fusionVersion", version)
	}
	return nil
}
