package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Parameter names accepted by the deployment commands
const (
	ParamLzEndpoint              = "lzEndpoint"
	ParamStgAdapterMainchain     = "stgAdapterMainchain"
	ParamStgIntegrationMainchain = "stgIntegrationMainchain"
)

// Params is the typed parameter set of one contract kind
type Params interface {
	// Validate checks that every required field is present
	Validate() error
	// Args returns the ordered constructor or initializer arguments
	Args() []string
}

// NoParams is used by kinds without parameters
type NoParams struct{}

func (NoParams) Validate() error { return nil }
func (NoParams) Args() []string  { return []string{} }

// AdapterMainchainParams are the initializer parameters of StargateAdapterMainchain
type AdapterMainchainParams struct {
	LzEndpoint string `yaml:"lzEndpoint" json:"lzEndpoint"`
}

func (p AdapterMainchainParams) Validate() error {
	if p.LzEndpoint == "" {
		return &ValidationError{Kind: KindAdapterMainchain, Field: ParamLzEndpoint}
	}
	return nil
}

func (p AdapterMainchainParams) Args() []string { return []string{p.LzEndpoint} }

// AdapterSidechainParams are the initializer parameters of StargateAdapterSidechain
type AdapterSidechainParams struct {
	StgAdapterMainchain string `yaml:"stgAdapterMainchain" json:"stgAdapterMainchain"`
}

func (p AdapterSidechainParams) Validate() error {
	if p.StgAdapterMainchain == "" {
		return &ValidationError{Kind: KindAdapterSidechain, Field: ParamStgAdapterMainchain}
	}
	return nil
}

func (p AdapterSidechainParams) Args() []string { return []string{p.StgAdapterMainchain} }

// IntegrationSidechainParams are the constructor parameters of StargateIntegrationSidechain
type IntegrationSidechainParams struct {
	StgIntegrationMainchain string `yaml:"stgIntegrationMainchain" json:"stgIntegrationMainchain"`
}

func (p IntegrationSidechainParams) Validate() error {
	if p.StgIntegrationMainchain == "" {
		return &ValidationError{Kind: KindIntegrationSidechain, Field: ParamStgIntegrationMainchain}
	}
	return nil
}

func (p IntegrationSidechainParams) Args() []string { return []string{p.StgIntegrationMainchain} }

// ParseParams converts a raw name/value bag into the typed parameters of a kind.
// Unknown names are rejected so a misspelled parameter never reads as absent.
func ParseParams(kind ContractKind, raw map[string]string) (Params, error) {
	var (
		params  Params
		allowed []string
	)

	switch kind {
	case KindAdapterMainchain:
		params = AdapterMainchainParams{LzEndpoint: raw[ParamLzEndpoint]}
		allowed = []string{ParamLzEndpoint}
	case KindAdapterSidechain:
		params = AdapterSidechainParams{StgAdapterMainchain: raw[ParamStgAdapterMainchain]}
		allowed = []string{ParamStgAdapterMainchain}
	case KindIntegrationSidechain:
		params = IntegrationSidechainParams{StgIntegrationMainchain: raw[ParamStgIntegrationMainchain]}
		allowed = []string{ParamStgIntegrationMainchain}
	case KindIntegrationMainchain, KindIntegrationStandalone:
		params = NoParams{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	unknown := lo.Filter(lo.Keys(raw), func(name string, _ int) bool {
		return !lo.Contains(allowed, name)
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{
			Kind:   kind,
			Field:  strings.Join(unknown, ", "),
			Reason: "unknown parameter",
		}
	}

	return params, nil
}
