package domain

import (
	"fmt"
	"sort"
)

// ContractKind identifies one deployable Stargate contract variant
type ContractKind string

const (
	KindAdapterMainchain      ContractKind = "adapter-mainchain"
	KindAdapterSidechain      ContractKind = "adapter-sidechain"
	KindIntegrationMainchain  ContractKind = "integration-mainchain"
	KindIntegrationSidechain  ContractKind = "integration-sidechain"
	KindIntegrationStandalone ContractKind = "stargate-integration"
)

// Strategy represents how a contract instance is created
type Strategy string

const (
	// StrategyDirect creates the contract through its constructor
	StrategyDirect Strategy = "DIRECT"
	// StrategyProxy creates an upgradeable instance behind a proxy and calls its initializer
	StrategyProxy Strategy = "PROXY"
)

// ClassRequirement restricts the networks a kind may deploy on
type ClassRequirement string

const (
	RequireMainchain    ClassRequirement = "mainchain"
	RequireNotMainchain ClassRequirement = "not-mainchain"
	RequireAny          ClassRequirement = "any"
)

// Allows reports whether a network class satisfies the requirement
func (r ClassRequirement) Allows(class NetworkClass) bool {
	switch r {
	case RequireMainchain:
		return class.IsMainchain()
	case RequireNotMainchain:
		return !class.IsMainchain()
	case RequireAny:
		return true
	default:
		return false
	}
}

// KindSpec is the fixed deployment record for a contract kind
type KindSpec struct {
	Kind         ContractKind
	ContractName string
	Strategy     Strategy
	Requirement  ClassRequirement
	Params       []ParamSpec
	Command      string
	Description  string
	// SkipMessage is reported when the network class does not satisfy Requirement
	SkipMessage string
}

// ParamSpec describes one named string parameter of a kind
type ParamSpec struct {
	Name        string
	Flag        string
	Description string
}

// Registry maps every contract kind to its deployment record
type Registry struct {
	specs map[ContractKind]*KindSpec
}

// NewRegistry builds the registry of all Stargate contract kinds
func NewRegistry() *Registry {
	specs := []*KindSpec{
		{
			Kind:         KindAdapterMainchain,
			ContractName: "StargateAdapterMainchain",
			Strategy:     StrategyProxy,
			Requirement:  RequireMainchain,
			Params: []ParamSpec{
				{Name: ParamLzEndpoint, Flag: "lz-endpoint", Description: "LayerZero Endpoint V2 on the mainchain"},
			},
			Command:     "deploy-adapter-mainchain",
			Description: "Deploy StargateAdapterMainchain",
			SkipMessage: "Should be deployed on the mainchain",
		},
		{
			Kind:         KindAdapterSidechain,
			ContractName: "StargateAdapterSidechain",
			Strategy:     StrategyProxy,
			Requirement:  RequireNotMainchain,
			Params: []ParamSpec{
				{Name: ParamStgAdapterMainchain, Flag: "stg-adapter-mainchain", Description: "StargateAdapterMainchain address"},
			},
			Command:     "deploy-adapter-sidechain",
			Description: "Deploy StargateAdapterSidechain",
			SkipMessage: "Should be deployed on other chains",
		},
		{
			Kind:         KindIntegrationMainchain,
			ContractName: "StargateIntegrationMainchain",
			Strategy:     StrategyDirect,
			Requirement:  RequireMainchain,
			Command:      "deploy-integration-mainchain",
			Description:  "Deploy StargateIntegrationMainchain",
			SkipMessage:  "Should be deployed on the mainchain",
		},
		{
			Kind:         KindIntegrationSidechain,
			ContractName: "StargateIntegrationSidechain",
			Strategy:     StrategyDirect,
			Requirement:  RequireNotMainchain,
			Params: []ParamSpec{
				{Name: ParamStgIntegrationMainchain, Flag: "stg-integration-mainchain", Description: "StargateIntegrationMainchain address"},
			},
			Command:     "deploy-integration-sidechain",
			Description: "Deploy StargateIntegrationSidechain",
			SkipMessage: "Should be deployed on other chains",
		},
		{
			Kind:         KindIntegrationStandalone,
			ContractName: "StargateIntegration",
			Strategy:     StrategyDirect,
			Requirement:  RequireAny,
			Command:      "deploy-stargate-integration",
			Description:  "Deploy StargateIntegration",
		},
	}

	r := &Registry{specs: make(map[ContractKind]*KindSpec, len(specs))}
	for _, s := range specs {
		r.specs[s.Kind] = s
	}
	return r
}

// Get returns the record for a kind
func (r *Registry) Get(kind ContractKind) (*KindSpec, error) {
	spec, ok := r.specs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return spec, nil
}

// All returns every record ordered by command name
func (r *Registry) All() []*KindSpec {
	out := make([]*KindSpec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Command < out[j].Command })
	return out
}

// ByContractName looks a record up by its Solidity contract name
func (r *Registry) ByContractName(name string) (*KindSpec, bool) {
	for _, s := range r.specs {
		if s.ContractName == name {
			return s, true
		}
	}
	return nil, false
}

// StrategyFor returns the fixed deployment strategy of a kind.
// Adapter kinds are upgradeable proxies, integration kinds are immutable.
func StrategyFor(kind ContractKind) Strategy {
	switch kind {
	case KindAdapterMainchain, KindAdapterSidechain:
		return StrategyProxy
	default:
		return StrategyDirect
	}
}
