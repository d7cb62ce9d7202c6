package contract

import (
	"sort"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/entitlements"
	"github.com/vinkius-labs/mcp-fusion-go/internal/hash"
)

// Materialize projects a single tool builder's public surface into a
// normalized ToolContract (§4.4). Two materializations of the same
// builder state always produce byte-equal contracts (I4, §4.4 closing
// paragraph).
func Materialize(b ToolBuilder) (ToolContract, error) {
	def := b.BuildToolDefinition()

	inputDigest, err := hash.OfValue(def.InputSchema)
	if err != nil {
		return ToolContract{}, err
	}

	tags := append([]string(nil), b.GetTags()...)
	sort.Strings(tags)

	actions, err := materializeActions(b)
	if err != nil {
		return ToolContract{}, err
	}

	var description *string
	if d := b.GetDescription(); d != "" {
		description = &d
	}

	surface := Surface{
		Name:              b.GetName(),
		Description:       description,
		Tags:              tags,
		InputSchemaDigest: inputDigest,
		Actions:           actions,
	}

	behavior, err := materializeBehavior(b)
	if err != nil {
		return ToolContract{}, err
	}

	econ := materializeTokenEconomics(b.GetPresenterInfo())

	ent, err := materializeEntitlements(b)
	if err != nil {
		return ToolContract{}, err
	}

	return ToolContract{
		Surface:        surface,
		Behavior:       behavior,
		TokenEconomics: econ,
		Entitlements:   ent,
	}, nil
}

func materializeActions(b ToolBuilder) (map[string]ActionContract, error) {
	names := append([]string(nil), b.GetActionNames()...)
	sort.Strings(names)

	actions := make(map[string]ActionContract, len(names))
	for _, name := range names {
		meta := b.GetActionMetadata(name)

		digest, err := hash.OfValue(meta.InputSchema)
		if err != nil {
			return nil, err
		}

		required := append([]string(nil), meta.RequiredFields...)
		sort.Strings(required)

		var presenter *string
		if meta.PresenterName != "" {
			p := meta.PresenterName
			presenter = &p
		}

		actions[name] = ActionContract{
			Description:       meta.Description,
			Destructive:       meta.Destructive,
			Idempotent:        meta.Idempotent,
			ReadOnly:          meta.ReadOnly,
			RequiredFields:    required,
			PresenterName:     presenter,
			InputSchemaDigest: digest,
			HasMiddleware:     meta.HasMiddleware,
		}
	}
	return actions, nil
}

func materializeBehavior(b ToolBuilder) (Behavior, error) {
	info := b.GetPresenterInfo()

	var egressDigest *string
	if len(info.SchemaDigestInputs) > 0 {
		d, err := hash.OfValue(info.SchemaDigestInputs)
		if err != nil {
			return Behavior{}, err
		}
		egressDigest = &d
	}

	topology := append([]string(nil), info.SuggestedActions...)
	sort.Strings(topology)

	presenters := append([]string(nil), info.EmbeddedPresenterNames...)
	sort.Strings(presenters)

	return Behavior{
		EgressSchemaDigest:     egressDigest,
		SystemRulesFingerprint: systemRulesFingerprint(info.SystemRules),
		CognitiveGuardrails:    b.GetCognitiveGuardrails(),
		MiddlewareChain:        append([]string(nil), b.GetMiddlewareChain()...),
		StateSyncFingerprint:   b.GetStateSyncFingerprint(),
		ConcurrencyFingerprint: b.GetConcurrencyFingerprint(),
		AffordanceTopology:     topology,
		EmbeddedPresenters:     presenters,
	}, nil
}

// systemRulesFingerprint implements the §4.4/§9 rule: when every rule is
// a constant literal the fingerprint is prefixed "static:", otherwise
// "dynamic:". Any rule that passed through a function application counts
// as dynamic, per the resolved Open Question (DESIGN.md).
func systemRulesFingerprint(rules []SystemRule) string {
	static := true
	combined := ""
	for _, r := range rules {
		if !r.IsStatic {
			static = false
		}
		combined += r.Value + "\x00"
	}

	prefix := "dynamic:"
	if static {
		prefix = "static:"
	}
	return prefix + hash.StringHash(combined)
}

func materializeTokenEconomics(info PresenterInfo) TokenEconomics {
	baseOverhead := info.SchemaFieldCount * 8 // header/wrapper overhead per field, see econ package for the full runtime model
	risk := ClassifyInflationRisk(info.SchemaFieldCount, info.UnboundedCollection)

	return TokenEconomics{
		SchemaFieldCount:    info.SchemaFieldCount,
		UnboundedCollection: info.UnboundedCollection,
		BaseOverheadTokens:  baseOverhead,
		InflationRisk:       risk,
	}
}

// ClassifyInflationRisk implements the §4.2 risk tiers: low (<10 fields,
// bounded), medium (10-20), high (20-50), critical (>50, or unbounded
// with >=10 fields). Exported so the standalone econ profiler (which
// performs the same classification against a hypothetical shape, before
// any builder exists to materialize) shares one definition of the tiers.
func ClassifyInflationRisk(fieldCount int, unbounded bool) InflationRisk {
	switch {
	case unbounded && fieldCount >= 10:
		return InflationCritical
	case fieldCount > 50:
		return InflationCritical
	case fieldCount > 20:
		return InflationHigh
	case fieldCount >= 10:
		return InflationMedium
	default:
		return InflationLow
	}
}

func materializeEntitlements(b ToolBuilder) (Entitlements, error) {
	source, ok := b.GetHandlerSource()
	if !ok {
		return Entitlements{}, nil
	}

	report := entitlements.Scan(source)
	built := entitlements.BuildEntitlements(report.Matches)

	return Entitlements{
		Filesystem:     built.Filesystem,
		Network:        built.Network,
		Subprocess:     built.Subprocess,
		Crypto:         built.Crypto,
		CodeEvaluation: built.CodeEvaluation,
		Raw:            toContractMatches(report.Matches),
	}, nil
}

func toContractMatches(in []entitlements.Match) []EntitlementMatch {
	if len(in) == 0 {
		return nil
	}
	out := make([]EntitlementMatch, len(in))
	for i, m := range in {
		out[i] = EntitlementMatch{
			Category:   EntitlementCategory(m.Category),
			Identifier: m.Identifier,
			Line:       m.Line,
			File:       m.File,
		}
	}
	return out
}

// CompileContracts materializes every builder and returns a mapping from
// tool name to contract, iterated in sorted-name order by the caller via
// SortedNames (§4.4 closing paragraph: compileContracts(builders)).
func CompileContracts(builders []ToolBuilder) (map[string]ToolContract, error) {
	out := make(map[string]ToolContract, len(builders))
	for _, b := range builders {
		c, err := Materialize(b)
		if err != nil {
			return nil, err
		}
		out[c.Surface.Name] = c
	}
	return out, nil
}

// SortedNames returns the names of a contract map in ascending order.
func SortedNames(contracts map[string]ToolContract) []string {
	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
