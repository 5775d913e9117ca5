package forge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/stgdeploy/internal/domain"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
)

// Artifact is a compiled contract read from the Foundry output directory
type Artifact struct {
	Name string
	// SourcePath is the compilation target, e.g. src/StargateIntegration.sol
	SourcePath string
	ABI        abi.ABI
	Bytecode   []byte
}

// Identifier returns the path:Name form accepted by forge verify-contract
func (a *Artifact) Identifier() string {
	if a.SourcePath == "" {
		return a.Name
	}
	return a.SourcePath + ":" + a.Name
}

// artifactFile mirrors the fields we need from out/<File>.sol/<Name>.json
type artifactFile struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// ArtifactLoader reads compiled artifacts by contract name
type ArtifactLoader struct {
	log          *slog.Logger
	artifactsDir string

	mu    sync.Mutex
	cache map[string]*Artifact
}

// NewArtifactLoader creates a loader rooted at the configured artifacts directory
func NewArtifactLoader(cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactLoader {
	dir := cfg.Deploy.ArtifactsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &ArtifactLoader{
		log:          log.With("component", "ArtifactLoader"),
		artifactsDir: dir,
		cache:        make(map[string]*Artifact),
	}
}

// Load returns the artifact of a contract. out/<Name>.sol/<Name>.json is tried
// first, then any out/*/<Name>.json.
func (l *ArtifactLoader) Load(contractName string) (*Artifact, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.cache[contractName]; ok {
		return a, nil
	}

	path, err := l.find(contractName)
	if err != nil {
		return nil, err
	}
	l.log.Debug("loading artifact", "contract", contractName, "path", path)

	a, err := parseArtifact(contractName, path)
	if err != nil {
		return nil, err
	}
	l.cache[contractName] = a
	return a, nil
}

func (l *ArtifactLoader) find(contractName string) (string, error) {
	direct := filepath.Join(l.artifactsDir, contractName+".sol", contractName+".json")
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	matches, err := filepath.Glob(filepath.Join(l.artifactsDir, "*", contractName+".json"))
	if err != nil {
		return "", err
	}
	// Build-info and debug directories are never artifacts
	matches = lo.Filter(matches, func(m string, _ int) bool {
		return !strings.HasPrefix(filepath.Base(filepath.Dir(m)), ".") &&
			filepath.Base(filepath.Dir(m)) != "build-info"
	})
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s in %s (run forge build?)", domain.ErrArtifactNotFound, contractName, l.artifactsDir)
	}
	if len(matches) > 1 {
		sort.Strings(matches)
		l.log.Warn("multiple artifacts found, using the first", "contract", contractName, "matches", matches)
	}
	return matches[0], nil
}

func parseArtifact(contractName, path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("parse ABI of %s: %w", contractName, err)
	}

	object := strings.TrimPrefix(file.Bytecode.Object, "0x")
	if object == "" {
		return nil, fmt.Errorf("artifact %s has no creation bytecode (abstract contract or interface?)", contractName)
	}
	if strings.Contains(object, "__$") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", contractName)
	}

	var sourcePath string
	for source, name := range file.Metadata.Settings.CompilationTarget {
		if name == contractName {
			sourcePath = source
		}
	}

	return &Artifact{
		Name:       contractName,
		SourcePath: sourcePath,
		ABI:        parsedABI,
		Bytecode:   common.FromHex(object),
	}, nil
}
