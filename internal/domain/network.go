package domain

import (
	"fmt"
	"strings"
)

// NetworkClass categorizes a network relative to the Stargate deployment topology
type NetworkClass string

const (
	// NetworkClassMainchain hosts the canonical adapter/integration contracts
	NetworkClassMainchain NetworkClass = "mainchain"
	// NetworkClassSidechain is a known satellite chain referencing the mainchain deployment
	NetworkClassSidechain NetworkClass = "sidechain"
	// NetworkClassLocal is an ephemeral development chain with no explorer
	NetworkClassLocal NetworkClass = "local"
	// NetworkClassOther is any network the classifier does not know by name
	NetworkClassOther NetworkClass = "other"
)

// Default network name sets. flow and flowTestnet host the mainchain contracts.
var (
	DefaultMainchainNetworks = []string{"flow", "flowTestnet"}
	DefaultSidechainNetworks = []string{"mainnet", "arbitrum"}
	DefaultLocalNetworks     = []string{"hardhat", "anvil", "localhost"}
)

// Classifier maps network names to a NetworkClass.
// It is immutable once constructed, so Classify is a pure function of its input.
type Classifier struct {
	classes map[string]NetworkClass
}

// NewClassifier builds a classifier from name sets. A name listed in several sets
// resolves to the most specific one: mainchain, then local, then sidechain.
func NewClassifier(mainchains, sidechains, locals []string) *Classifier {
	classes := make(map[string]NetworkClass, len(mainchains)+len(sidechains)+len(locals))
	for _, name := range sidechains {
		classes[name] = NetworkClassSidechain
	}
	for _, name := range locals {
		classes[name] = NetworkClassLocal
	}
	for _, name := range mainchains {
		classes[name] = NetworkClassMainchain
	}
	return &Classifier{classes: classes}
}

// DefaultClassifier returns the classifier for the built-in network sets
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultMainchainNetworks, DefaultSidechainNetworks, DefaultLocalNetworks)
}

// Classify returns the class for a network name. Unknown names are NetworkClassOther.
func (c *Classifier) Classify(networkName string) NetworkClass {
	if class, ok := c.classes[networkName]; ok {
		return class
	}
	return NetworkClassOther
}

// Classify classifies a network name with the default sets
func Classify(networkName string) NetworkClass {
	return DefaultClassifier().Classify(networkName)
}

// IsMainchain reports whether the class is the mainchain class
func (c NetworkClass) IsMainchain() bool {
	return c == NetworkClassMainchain
}

// NetworkContext is the resolved, immutable view of the active network
type NetworkContext struct {
	Name           string       `json:"name"`
	Class          NetworkClass `json:"class"`
	ChainID        uint64       `json:"chainId"`
	RPCURL         string       `json:"-"`
	ExplorerURL    string       `json:"explorerUrl,omitempty"`
	ExplorerAPIKey string       `json:"-"`
}

// HasVerifier reports whether a verification backend can be called for this network.
// Local chains never have one; other classes need an explorer URL or API key.
func (n *NetworkContext) HasVerifier() bool {
	if n == nil || n.Class == NetworkClassLocal {
		return false
	}
	return n.ExplorerURL != "" || n.ExplorerAPIKey != ""
}

// String renders the network as name (class, chain id)
func (n *NetworkContext) String() string {
	if n == nil {
		return "<no network>"
	}
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteString(" (")
	b.WriteString(string(n.Class))
	if n.ChainID != 0 {
		fmt.Fprintf(&b, ", chain %d", n.ChainID)
	}
	b.WriteString(")")
	return b.String()
}
