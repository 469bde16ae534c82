package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Fixed values sent when creating engines and data stores.
const (
	SolutionTypeSearch      = "SOLUTION_TYPE_SEARCH"
	IndustryVerticalGeneric = "GENERIC"
	AppTypeIntranet         = "APP_TYPE_INTRANET"
	SearchAddOnLLM          = "SEARCH_ADD_ON_LLM"
	ContentRequired         = "CONTENT_REQUIRED"
)

// SearchTier selects the engine's pricing and feature tier.
type SearchTier string

// Available search tiers.
const (
	SearchTierStandard   SearchTier = "SEARCH_TIER_STANDARD"
	SearchTierEnterprise SearchTier = "SEARCH_TIER_ENTERPRISE"
)

// IsValid returns true if the search tier is recognised.
func (t SearchTier) IsValid() bool {
	return t == SearchTierStandard || t == SearchTierEnterprise
}

// SearchEngineConfig configures search behaviour of an engine.
type SearchEngineConfig struct {
	SearchTier   string   `json:"searchTier,omitempty" yaml:"searchTier,omitempty"`
	SearchAddOns []string `json:"searchAddOns,omitempty" yaml:"searchAddOns,omitempty"`
}

// CommonConfig holds settings shared by all engine types.
type CommonConfig struct {
	CompanyName string `json:"companyName,omitempty" yaml:"companyName,omitempty"`
}

// Engine is a search engine ("app") backed by zero or more data stores.
type Engine struct {
	Name               string              `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName        string              `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	SolutionType       string              `json:"solutionType,omitempty" yaml:"solutionType,omitempty"`
	IndustryVertical   string              `json:"industryVertical,omitempty" yaml:"industryVertical,omitempty"`
	AppType            string              `json:"appType,omitempty" yaml:"appType,omitempty"`
	DataStoreIDs       []string            `json:"dataStoreIds,omitempty" yaml:"dataStoreIds,omitempty"`
	SearchEngineConfig *SearchEngineConfig `json:"searchEngineConfig,omitempty" yaml:"searchEngineConfig,omitempty"`
	CommonConfig       *CommonConfig       `json:"commonConfig,omitempty" yaml:"commonConfig,omitempty"`
	Features           map[string]string   `json:"features,omitempty" yaml:"features,omitempty"`
	CreateTime         string              `json:"createTime,omitempty" yaml:"createTime,omitempty"`
}

// EnabledFeatures returns the sorted names of features whose state contains "ON".
func (e *Engine) EnabledFeatures() []string {
	var on []string
	for name, state := range e.Features {
		if strings.Contains(state, "ON") {
			on = append(on, name)
		}
	}
	sort.Strings(on)
	return on
}

// EngineSpec describes an engine to create.
type EngineSpec struct {
	EngineID     string
	DisplayName  string
	DataStoreIDs []string
	SearchTier   SearchTier
	CompanyName  string
}

// Validate checks the fields before any request is sent.
func (s EngineSpec) Validate() error {
	if s.EngineID == "" {
		return fmt.Errorf("%w: engine ID is required", ErrInvalidInput)
	}
	if s.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if s.SearchTier != "" && !s.SearchTier.IsValid() {
		return fmt.Errorf("%w: unknown search tier %q", ErrInvalidInput, s.SearchTier)
	}
	return nil
}

// Engine builds the create-request body.
// DataStoreIDs and CommonConfig are left nil when not supplied so they are
// omitted from the request.
func (s EngineSpec) Engine() Engine {
	tier := s.SearchTier
	if tier == "" {
		tier = SearchTierStandard
	}

	e := Engine{
		DisplayName:      s.DisplayName,
		SolutionType:     SolutionTypeSearch,
		IndustryVertical: IndustryVerticalGeneric,
		AppType:          AppTypeIntranet,
		SearchEngineConfig: &SearchEngineConfig{
			SearchTier:   string(tier),
			SearchAddOns: []string{SearchAddOnLLM},
		},
	}
	if len(s.DataStoreIDs) > 0 {
		e.DataStoreIDs = append([]string(nil), s.DataStoreIDs...)
	}
	if s.CompanyName != "" {
		e.CommonConfig = &CommonConfig{CompanyName: s.CompanyName}
	}
	return e
}

// EngineCreateResult reports the outcome of an engine create workflow.
type EngineCreateResult struct {
	EngineName string `json:"engine_name" yaml:"engine_name"`
	Status     string `json:"status" yaml:"status"`
}

// EngineConfig is an engine together with the data stores it serves.
type EngineConfig struct {
	Engine     *Engine     `json:"engine" yaml:"engine"`
	DataStores []DataStore `json:"data_stores" yaml:"data_stores"`
}
