package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// MockCompiler is a mock implementation of Compiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Build(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) DeployDirect(ctx context.Context, network *domain.NetworkContext, contractName string, args []string) (*usecase.Deployed, error) {
	ret := m.Called(ctx, network, contractName, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*usecase.Deployed), ret.Error(1)
}

func (m *MockChainClient) DeployProxy(ctx context.Context, network *domain.NetworkContext, contractName string, initArgs []string) (*usecase.Deployed, error) {
	ret := m.Called(ctx, network, contractName, initArgs)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*usecase.Deployed), ret.Error(1)
}

// MockVerifier is a mock implementation of ContractVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, network *domain.NetworkContext, req usecase.VerifyRequest) (*usecase.VerifyResponse, error) {
	ret := m.Called(ctx, network, req)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*usecase.VerifyResponse), ret.Error(1)
}

// MockConfirmer is a mock implementation of BroadcastConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmBroadcast(ctx context.Context, spec *domain.KindSpec, network *domain.NetworkContext, args []string) (bool, error) {
	ret := m.Called(ctx, spec, network, args)
	return ret.Bool(0), ret.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	ret := m.Called(ctx)
	return ret.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*domain.NetworkContext, error) {
	ret := m.Called(ctx, networkName)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.NetworkContext), ret.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Stage)
	}
	return out
}
