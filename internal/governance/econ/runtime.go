package econ

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

// criticalTokenThreshold is the point above which an emitted response is
// flagged as a cognitive-overload risk for the consuming agent (§4.2).
const criticalTokenThreshold = 10_000

// cognitiveOverloadMarker is the advisory string the caller can match on;
// it must appear verbatim in any advisory produced above the threshold.
const cognitiveOverloadMarker = "COGNITIVE OVERLOAD"

// defaultEncoding mirrors the teacher's DefaultEncoding constant: the BPE
// vocabulary used when no model-specific encoding is requested.
const defaultEncoding = "cl100k_base"

// ContentBlock is one unit of an emitted tool response, in emission order.
type ContentBlock struct {
	Text string
}

// BlockProfile is the accounting for a single content block.
type BlockProfile struct {
	Index  int
	Bytes  int
	Tokens int
}

// RuntimeProfile is the accumulated accounting over an entire response
// (§4.2's runtime block profiler).
type RuntimeProfile struct {
	Blocks        []BlockProfile
	TotalBytes    int
	TotalTokens   int
	InflationRisk contract.InflationRisk
	Advisory      string
}

// BlockProfiler tokenizes content blocks using a real BPE encoding,
// loading the encoding once at construction and keeping it on the
// profiler, since tiktoken-go's encoding load is not cheap to repeat per
// call.
type BlockProfiler struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewBlockProfiler builds a BlockProfiler for the given encoding name,
// defaulting to cl100k_base when empty, validating it eagerly so a
// misconfigured encoding fails at construction rather than mid-profile.
func NewBlockProfiler(encoding string) (*BlockProfiler, error) {
	if encoding == "" {
		encoding = defaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("invalid token encoding %q: %w", encoding, err)
	}

	return &BlockProfiler{encoding: encoding, enc: enc}, nil
}

// Profile accumulates per-block token/byte counts over an ordered content
// block sequence, classifies the overall risk from the total token count,
// and attaches a COGNITIVE OVERLOAD advisory once the critical threshold
// is crossed (§4.2).
func (p *BlockProfiler) Profile(blocks []ContentBlock) RuntimeProfile {
	profile := RuntimeProfile{Blocks: make([]BlockProfile, len(blocks))}

	for i, block := range blocks {
		tokenCount := len(p.enc.Encode(block.Text, nil, nil))
		byteCount := len(block.Text)

		profile.Blocks[i] = BlockProfile{Index: i, Bytes: byteCount, Tokens: tokenCount}
		profile.TotalBytes += byteCount
		profile.TotalTokens += tokenCount
	}

	profile.InflationRisk = classifyRuntimeRisk(profile.TotalTokens)
	if profile.TotalTokens > criticalTokenThreshold {
		profile.Advisory = fmt.Sprintf(
			"%s: this response is %d tokens, exceeding the %d-token threshold for reliable agent comprehension; consider paginating or summarizing",
			cognitiveOverloadMarker, profile.TotalTokens, criticalTokenThreshold,
		)
	}

	return profile
}

// classifyRuntimeRisk maps a total token count onto the same four-tier
// scale the static profile and the materialized contract use, so a caller
// comparing a tool's declared risk against its observed runtime risk is
// comparing like with like.
func classifyRuntimeRisk(totalTokens int) contract.InflationRisk {
	switch {
	case totalTokens > criticalTokenThreshold:
		return contract.InflationCritical
	case totalTokens > criticalTokenThreshold/2:
		return contract.InflationHigh
	case totalTokens > criticalTokenThreshold/10:
		return contract.InflationMedium
	default:
		return contract.InflationLow
	}
}
