package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

var (
	flowNetwork = &domain.NetworkContext{
		Name:        "flow",
		Class:       domain.NetworkClassMainchain,
		ChainID:     747,
		ExplorerURL: "https://evm.flowscan.io/api",
	}
	arbitrumNetwork = &domain.NetworkContext{
		Name:           "arbitrum",
		Class:          domain.NetworkClassSidechain,
		ChainID:        42161,
		ExplorerURL:    "https://api.arbiscan.io/api",
		ExplorerAPIKey: "key",
	}
	hardhatNetwork = &domain.NetworkContext{
		Name:    "hardhat",
		Class:   domain.NetworkClassLocal,
		ChainID: 31337,
	}
)

type deployFixture struct {
	compiler *MockCompiler
	chain    *MockChainClient
	verifier *MockVerifier
	progress *MockProgressSink
	uc       *usecase.DeployContract
}

func newDeployFixture(confirmer usecase.BroadcastConfirmer) *deployFixture {
	f := &deployFixture{
		compiler: &MockCompiler{},
		chain:    &MockChainClient{},
		verifier: &MockVerifier{},
		progress: &MockProgressSink{},
	}
	executor := usecase.NewExecuteDeployment(f.compiler, f.chain, confirmer, f.progress)
	submitter := usecase.NewSubmitVerification(f.verifier, f.progress)
	f.uc = usecase.NewDeployContract(domain.NewRegistry(), executor, submitter, f.progress)
	return f
}

func (f *deployFixture) assertExpectations(t *testing.T) {
	f.compiler.AssertExpectations(t)
	f.chain.AssertExpectations(t)
	f.verifier.AssertExpectations(t)
}

func TestDeployContract_AdapterMainchainOnMainchain(t *testing.T) {
	f := newDeployFixture(nil)
	f.compiler.On("Build", mock.Anything).Return(nil).Once()
	f.chain.On("DeployProxy", mock.Anything, flowNetwork, "StargateAdapterMainchain", []string{"0xENDPOINT"}).
		Return(&usecase.Deployed{Address: "0xPROXY", Implementation: "0xIMPL"}, nil).Once()
	f.verifier.On("Verify", mock.Anything, flowNetwork, usecase.VerifyRequest{
		Address:      "0xPROXY",
		ContractName: "StargateAdapterMainchain",
		Strategy:     domain.StrategyProxy,
	}).Return(&usecase.VerifyResponse{Verified: true, URL: "https://evm.flowscan.io/address/0xPROXY"}, nil).Once()

	report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
		Kind:    domain.KindAdapterMainchain,
		Raw:     map[string]string{domain.ParamLzEndpoint: "0xENDPOINT"},
		Network: flowNetwork,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDeployedVerified, report.Status)
	assert.True(t, report.Deployed())
	assert.Equal(t, "0xPROXY", report.Address)
	assert.Equal(t, "0xIMPL", report.Implementation)
	require.NotNil(t, report.Verified)
	assert.True(t, *report.Verified)
	assert.Equal(t, []string{"Validating", "Compiling", "Deploying", "Verifying", "Completed"}, f.progress.stages())
	f.assertExpectations(t)
}

func TestDeployContract_EmptyPeerAddressFailsValidation(t *testing.T) {
	networks := []*domain.NetworkContext{flowNetwork, arbitrumNetwork, hardhatNetwork}

	for _, network := range networks {
		t.Run(network.Name, func(t *testing.T) {
			f := newDeployFixture(nil)

			report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
				Kind:    domain.KindAdapterSidechain,
				Raw:     map[string]string{domain.ParamStgAdapterMainchain: ""},
				Network: network,
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidParams)
			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, domain.ParamStgAdapterMainchain, validationErr.Field)
			assert.Equal(t, domain.ReportStatusValidationFailed, report.Status)
			assert.False(t, report.Deployed())
			f.compiler.AssertNotCalled(t, "Build", mock.Anything)
			f.chain.AssertNotCalled(t, "DeployProxy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.chain.AssertNotCalled(t, "DeployDirect", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeployContract_IntegrationSidechainOnSidechain(t *testing.T) {
	f := newDeployFixture(nil)
	f.compiler.On("Build", mock.Anything).Return(nil).Once()
	f.chain.On("DeployDirect", mock.Anything, arbitrumNetwork, "StargateIntegrationSidechain", []string{"0xMAIN"}).
		Return(&usecase.Deployed{Address: "0xINTEGRATION", TransactionHash: "0xTX"}, nil).Once()
	f.verifier.On("Verify", mock.Anything, arbitrumNetwork, usecase.VerifyRequest{
		Address:         "0xINTEGRATION",
		ContractName:    "StargateIntegrationSidechain",
		Strategy:        domain.StrategyDirect,
		ConstructorArgs: []string{"0xMAIN"},
	}).Return(&usecase.VerifyResponse{Verified: true}, nil).Once()

	report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
		Kind:    domain.KindIntegrationSidechain,
		Raw:     map[string]string{domain.ParamStgIntegrationMainchain: "0xMAIN"},
		Network: arbitrumNetwork,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDeployedVerified, report.Status)
	assert.Equal(t, "0xINTEGRATION", report.Address)
	assert.Empty(t, report.Implementation)
	f.assertExpectations(t)
}

func TestDeployContract_StandaloneOnLocalSkipsVerification(t *testing.T) {
	f := newDeployFixture(nil)
	f.compiler.On("Build", mock.Anything).Return(nil).Once()
	f.chain.On("DeployDirect", mock.Anything, hardhatNetwork, "StargateIntegration", []string{}).
		Return(&usecase.Deployed{Address: "0xLOCAL"}, nil).Once()

	report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
		Kind:    domain.KindIntegrationStandalone,
		Network: hardhatNetwork,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDeployedUnverified, report.Status)
	assert.Equal(t, "0xLOCAL", report.Address)
	assert.Nil(t, report.Verified)
	require.NotNil(t, report.Verification)
	assert.False(t, report.Verification.Submitted)
	f.verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestDeployContract_NetworkMismatchSkips(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.ContractKind
		raw     map[string]string
		network *domain.NetworkContext
		reason  string
	}{
		{
			name:    "adapter mainchain on sidechain",
			kind:    domain.KindAdapterMainchain,
			raw:     map[string]string{domain.ParamLzEndpoint: "0xENDPOINT"},
			network: arbitrumNetwork,
			reason:  "Should be deployed on the mainchain",
		},
		{
			name:    "integration mainchain on local",
			kind:    domain.KindIntegrationMainchain,
			network: hardhatNetwork,
			reason:  "Should be deployed on the mainchain",
		},
		{
			name:    "adapter sidechain on mainchain",
			kind:    domain.KindAdapterSidechain,
			raw:     map[string]string{domain.ParamStgAdapterMainchain: "0xMAIN"},
			network: flowNetwork,
			reason:  "Should be deployed on other chains",
		},
		{
			name:    "integration sidechain on mainchain",
			kind:    domain.KindIntegrationSidechain,
			raw:     map[string]string{domain.ParamStgIntegrationMainchain: "0xMAIN"},
			network: flowNetwork,
			reason:  "Should be deployed on other chains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeployFixture(nil)
			f.compiler.On("Build", mock.Anything).Return(nil).Once()

			report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
				Kind:    tt.kind,
				Raw:     tt.raw,
				Network: tt.network,
			})

			require.NoError(t, err)
			assert.Equal(t, domain.ReportStatusSkipped, report.Status)
			assert.Equal(t, tt.reason, report.SkippedReason)
			assert.False(t, report.Deployed())
			assert.False(t, report.Failed())
			assert.Len(t, f.chain.Calls, 0)
			assert.Len(t, f.verifier.Calls, 0)
			f.compiler.AssertExpectations(t)
		})
	}
}

func TestDeployContract_Failures(t *testing.T) {
	t.Run("compilation failure aborts before the chain", func(t *testing.T) {
		f := newDeployFixture(nil)
		f.compiler.On("Build", mock.Anything).Return(errors.New("solc exited 1")).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationStandalone,
			Network: flowNetwork,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCompilationFailed)
		assert.Contains(t, err.Error(), "solc exited 1")
		assert.Equal(t, domain.ReportStatusDeployFailed, report.Status)
		assert.True(t, report.Failed())
		assert.Len(t, f.chain.Calls, 0)
	})

	t.Run("chain submission failure is surfaced", func(t *testing.T) {
		f := newDeployFixture(nil)
		rpcErr := errors.New("insufficient funds for gas")
		f.compiler.On("Build", mock.Anything).Return(nil).Once()
		f.chain.On("DeployDirect", mock.Anything, flowNetwork, "StargateIntegrationMainchain", []string{}).
			Return(nil, rpcErr).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationMainchain,
			Network: flowNetwork,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrChainSubmission)
		assert.ErrorIs(t, err, rpcErr)
		assert.Equal(t, domain.ReportStatusDeployFailed, report.Status)
		assert.Len(t, f.verifier.Calls, 0)
		f.chain.AssertNumberOfCalls(t, "DeployDirect", 1)
	})

	t.Run("verification failure keeps the deployment", func(t *testing.T) {
		f := newDeployFixture(nil)
		f.compiler.On("Build", mock.Anything).Return(nil).Once()
		f.chain.On("DeployDirect", mock.Anything, flowNetwork, "StargateIntegration", []string{}).
			Return(&usecase.Deployed{Address: "0xDEPLOYED"}, nil).Once()
		f.verifier.On("Verify", mock.Anything, flowNetwork, mock.Anything).
			Return(nil, errors.New("explorer unavailable")).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationStandalone,
			Network: flowNetwork,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusDeployedUnverified, report.Status)
		assert.Equal(t, "0xDEPLOYED", report.Address)
		require.NotNil(t, report.Verified)
		assert.False(t, *report.Verified)
		assert.Equal(t, "explorer unavailable", report.Verification.Reason)
	})

	t.Run("unknown parameter fails validation", func(t *testing.T) {
		f := newDeployFixture(nil)

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindAdapterMainchain,
			Raw:     map[string]string{"lzEndpont": "0xENDPOINT"},
			Network: flowNetwork,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidParams)
		assert.Equal(t, domain.ReportStatusValidationFailed, report.Status)
		f.compiler.AssertNotCalled(t, "Build", mock.Anything)
	})

	t.Run("unknown kind", func(t *testing.T) {
		f := newDeployFixture(nil)

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    "bridge",
			Network: flowNetwork,
		})

		assert.Nil(t, report)
		assert.ErrorIs(t, err, domain.ErrUnknownKind)
	})
}

func TestDeployContract_Confirmation(t *testing.T) {
	t.Run("declined broadcast is a skip", func(t *testing.T) {
		confirmer := &MockConfirmer{}
		f := newDeployFixture(confirmer)
		f.compiler.On("Build", mock.Anything).Return(nil).Once()
		confirmer.On("ConfirmBroadcast", mock.Anything, mock.Anything, flowNetwork, []string{}).
			Return(false, nil).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationMainchain,
			Network: flowNetwork,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusSkipped, report.Status)
		assert.Contains(t, report.SkippedReason, "declined")
		assert.Len(t, f.chain.Calls, 0)
		confirmer.AssertExpectations(t)
	})

	t.Run("confirmer is not asked on a mismatched network", func(t *testing.T) {
		confirmer := &MockConfirmer{}
		f := newDeployFixture(confirmer)
		f.compiler.On("Build", mock.Anything).Return(nil).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationMainchain,
			Network: arbitrumNetwork,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusSkipped, report.Status)
		assert.Len(t, confirmer.Calls, 0)
	})

	t.Run("confirmed broadcast deploys", func(t *testing.T) {
		confirmer := &MockConfirmer{}
		f := newDeployFixture(confirmer)
		f.compiler.On("Build", mock.Anything).Return(nil).Once()
		confirmer.On("ConfirmBroadcast", mock.Anything, mock.Anything, hardhatNetwork, []string{}).
			Return(true, nil).Once()
		f.chain.On("DeployDirect", mock.Anything, hardhatNetwork, "StargateIntegration", []string{}).
			Return(&usecase.Deployed{Address: "0xLOCAL"}, nil).Once()

		report, err := f.uc.Run(context.Background(), usecase.DeployContractParams{
			Kind:    domain.KindIntegrationStandalone,
			Network: hardhatNetwork,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportStatusDeployedUnverified, report.Status)
		confirmer.AssertExpectations(t)
		f.assertExpectations(t)
	})
}

func TestExecuteDeployment_FollowsRecordStrategy(t *testing.T) {
	compiler := &MockCompiler{}
	chain := &MockChainClient{}
	compiler.On("Build", mock.Anything).Return(nil).Once()
	chain.On("DeployDirect", mock.Anything, flowNetwork, "StargateAdapterMainchain", []string{"0xENDPOINT"}).
		Return(&usecase.Deployed{Address: "0xDIRECT"}, nil).Once()

	spec, err := domain.NewRegistry().Get(domain.KindAdapterMainchain)
	require.NoError(t, err)
	record := *spec
	record.Strategy = domain.StrategyDirect

	executor := usecase.NewExecuteDeployment(compiler, chain, nil, nil)
	result, err := executor.Execute(context.Background(), &record,
		domain.AdapterMainchainParams{LzEndpoint: "0xENDPOINT"}, flowNetwork)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyDirect, result.Strategy)
	assert.Equal(t, "0xDIRECT", result.Address)
	chain.AssertNotCalled(t, "DeployProxy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	chain.AssertExpectations(t)
	compiler.AssertExpectations(t)
}

func TestDeployContract_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.ContractKind
		raw     map[string]string
		wantErr bool
	}{
		{name: "missing peer address", kind: domain.KindAdapterSidechain, raw: map[string]string{}, wantErr: true},
		{name: "unknown parameter", kind: domain.KindIntegrationStandalone, raw: map[string]string{"peer": "0x1"}, wantErr: true},
		{name: "valid", kind: domain.KindIntegrationSidechain, raw: map[string]string{domain.ParamStgIntegrationMainchain: "0xMAIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeployFixture(nil)

			params, report, err := f.uc.Validate(context.Background(), tt.kind, tt.raw)

			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidParams)
				require.NotNil(t, report)
				assert.Equal(t, domain.ReportStatusValidationFailed, report.Status)
				assert.Equal(t, tt.kind, report.Kind)
				assert.Nil(t, params)
			} else {
				require.NoError(t, err)
				assert.Nil(t, report)
				assert.Equal(t, []string{"0xMAIN"}, params.Args())
			}
			assert.Len(t, f.chain.Calls, 0)
			assert.Len(t, f.compiler.Calls, 0)
		})
	}
}
