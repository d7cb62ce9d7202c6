// Package index is the capability search index (SPEC_FULL.md §4
// supplemented feature 2): full-text and faceted search over materialized
// tool contracts, so an operator can answer "which tools have entitlement
// X" or "which tools are in the critical token-inflation tier" across an
// entire fleet of servers. Adapted from the teacher's bleve-backed tool
// registry search (internal/index/bleve.go), generalized from a
// name/description index into one that also indexes entitlement and
// risk facets.
package index

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"go.uber.org/zap"

	"github.com/vinkius-labs/mcp-fusion-go/internal/governance/contract"
)

// ContractDocument is one indexed tool contract.
type ContractDocument struct {
	ToolName       string `json:"tool_name"`
	ServerName     string `json:"server_name"`
	Description    string `json:"description"`
	Tags           string `json:"tags"`
	InflationRisk  string `json:"inflation_risk"`
	Entitlements   string `json:"entitlements"`
	Digest         string `json:"digest"`
	SearchableText string `json:"searchable_text"`
}

// CapabilityIndex wraps a bleve index of materialized tool contracts.
type CapabilityIndex struct {
	index  bleve.Index
	logger *zap.SugaredLogger
}

// Open opens (or creates) the capability index rooted at dataDir.
func Open(dataDir string, logger *zap.SugaredLogger) (*CapabilityIndex, error) {
	indexPath := filepath.Join(dataDir, "capability.bleve")

	idx, err := bleve.Open(indexPath)
	if err != nil {
		logger.Infow("creating new capability index", "path", indexPath)
		idx, err = createIndex(indexPath)
		if err != nil {
			return nil, fmt.Errorf("create capability index: %w", err)
		}
	} else {
		logger.Infow("opened existing capability index", "path", indexPath)
	}

	return &CapabilityIndex{index: idx, logger: logger}, nil
}

func createIndex(indexPath string) (bleve.Index, error) {
	mapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	keywordField := func(name string) {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = keyword.Name
		field.Store = true
		field.Index = true
		docMapping.AddFieldMappingsAt(name, field)
	}
	textField := func(name string, stored bool) {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = standard.Name
		field.Store = stored
		field.Index = true
		docMapping.AddFieldMappingsAt(name, field)
	}

	keywordField("tool_name")
	keywordField("server_name")
	keywordField("inflation_risk")
	textField("description", true)
	textField("tags", true)
	textField("entitlements", true)
	keywordField("digest")
	textField("searchable_text", false)

	mapping.AddDocumentMapping("contract", docMapping)
	mapping.DefaultMapping = docMapping

	return bleve.New(indexPath, mapping)
}

// Close closes the underlying index.
func (c *CapabilityIndex) Close() error { return c.index.Close() }

// IndexContract upserts one tool contract document.
func (c *CapabilityIndex) IndexContract(serverName string, tc contract.ToolContract, digest string) error {
	entitlements := activeEntitlementLabels(tc.Entitlements)

	description := ""
	if tc.Surface.Description != nil {
		description = *tc.Surface.Description
	}

	doc := &ContractDocument{
		ToolName:      tc.Surface.Name,
		ServerName:    serverName,
		Description:   description,
		Tags:          strings.Join(tc.Surface.Tags, " "),
		InflationRisk: string(tc.TokenEconomics.InflationRisk),
		Entitlements:  strings.Join(entitlements, " "),
		Digest:        digest,
		SearchableText: fmt.Sprintf("%s %s %s %s",
			tc.Surface.Name, description, strings.Join(tc.Surface.Tags, " "), strings.Join(entitlements, " ")),
	}

	docID := fmt.Sprintf("%s:%s", serverName, tc.Surface.Name)
	return c.index.Index(docID, doc)
}

// DeleteContract removes one tool's document from the index.
func (c *CapabilityIndex) DeleteContract(serverName, toolName string) error {
	return c.index.Delete(fmt.Sprintf("%s:%s", serverName, toolName))
}

// SearchResult is one ranked hit.
type SearchResult struct {
	ToolName      string
	ServerName    string
	Description   string
	InflationRisk string
	Score         float64
}

// Search runs a free-text query across tool name, description, tags, and
// entitlement labels.
func (c *CapabilityIndex) Search(queryStr string, limit int) ([]SearchResult, error) {
	if queryStr == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 20
	}

	boolQuery := bleve.NewBooleanQuery()

	exact := bleve.NewTermQuery(queryStr)
	exact.SetField("tool_name")
	exact.SetBoost(5.0)
	boolQuery.AddShould(exact)

	prefix := bleve.NewPrefixQuery(queryStr)
	prefix.SetField("tool_name")
	prefix.SetBoost(3.0)
	boolQuery.AddShould(prefix)

	fullText := bleve.NewMatchQuery(queryStr)
	fullText.SetField("searchable_text")
	fullText.SetBoost(1.0)
	boolQuery.AddShould(fullText)

	return c.runSearch(boolQuery, limit)
}

// ByEntitlement returns every tool whose materialized contract claims the
// given capability category, e.g. "network" or "subprocess" — the
// operator-facing query this package exists to serve.
func (c *CapabilityIndex) ByEntitlement(category contract.EntitlementCategory, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	query := bleve.NewMatchQuery(string(category))
	query.SetField("entitlements")
	return c.runSearch(query, limit)
}

// ByInflationRisk returns every tool materialized at exactly the given
// token-inflation tier.
func (c *CapabilityIndex) ByInflationRisk(risk contract.InflationRisk, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	query := bleve.NewTermQuery(string(risk))
	query.SetField("inflation_risk")
	return c.runSearch(query, limit)
}

func (c *CapabilityIndex) runSearch(query bleve.Query, limit int) ([]SearchResult, error) {
	req := bleve.NewSearchRequest(query)
	req.Size = limit
	req.Fields = []string{"tool_name", "server_name", "description", "inflation_risk"}

	result, err := c.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("capability index search: %w", err)
	}

	out := make([]SearchResult, 0, len(result.Hits))
	for _, hit := range result.Hits {
		out = append(out, SearchResult{
			ToolName:      getStringField(hit.Fields, "tool_name"),
			ServerName:    getStringField(hit.Fields, "server_name"),
			Description:   getStringField(hit.Fields, "description"),
			InflationRisk: getStringField(hit.Fields, "inflation_risk"),
			Score:         hit.Score,
		})
	}
	return out, nil
}

// DocumentCount returns the number of indexed contracts.
func (c *CapabilityIndex) DocumentCount() (uint64, error) {
	return c.index.DocCount()
}

func activeEntitlementLabels(e contract.Entitlements) []string {
	var out []string
	for _, category := range contract.AllEntitlementCategories {
		if e.Get(category) {
			out = append(out, string(category))
		}
	}
	return out
}

func getStringField(fields map[string]interface{}, name string) string {
	if val, ok := fields[name]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
