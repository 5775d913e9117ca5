package forge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// ForgeAdapter runs the Foundry toolchain for the project
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	profile     string
	debug       bool

	once     sync.Once
	buildErr error
}

// NewForgeAdapter creates a new forge adapter
func NewForgeAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		profile:     cfg.Profile,
		debug:       cfg.Debug,
	}
}

// Build runs forge build once per process. Repeated calls return the first result.
func (f *ForgeAdapter) Build(ctx context.Context) error {
	f.once.Do(func() {
		f.buildErr = f.build(ctx)
	})
	return f.buildErr
}

func (f *ForgeAdapter) build(ctx context.Context) error {
	start := time.Now()
	f.log.Debug("running forge build", "dir", f.projectRoot, "profile", f.profile)

	cmd := exec.CommandContext(ctx, "forge", "build")
	cmd.Dir = f.projectRoot
	cmd.Env = f.buildEnv()

	// Debug mode streams the colored compiler output through a pty
	if f.debug {
		ptyFile, err := pty.Start(cmd)
		if err != nil {
			return fmt.Errorf("failed to start pty: %w", err)
		}
		defer func() {
			_ = ptyFile.Close()
		}()

		_, _ = io.Copy(os.Stderr, ptyFile)
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("forge build failed: %w", err)
		}
		f.log.Debug("forge build completed successfully", "duration", time.Since(start))
		return nil
	}

	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if err != nil {
		f.log.Error("forge build failed", "error", err, "output", string(output), "duration", duration)
		return fmt.Errorf("forge build failed: %w\nOutput: %s", err, string(output))
	}

	f.log.Debug("forge build completed successfully", "duration", duration)
	return nil
}

// buildEnv returns the process environment with the selected foundry profile
func (f *ForgeAdapter) buildEnv() []string {
	env := os.Environ()
	if f.profile != "" {
		env = append(env, "FOUNDRY_PROFILE="+f.profile)
	}
	return env
}

// Ensure the adapter implements the interface
var _ usecase.Compiler = (*ForgeAdapter)(nil)
