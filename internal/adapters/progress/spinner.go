package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/stgdeploy/internal/domain/config"
	"github.com/trebuchet-org/stgdeploy/internal/usecase"
)

// SpinnerProgressReporter renders the deployment pipeline as a stage line with a spinner
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter writing to out
func NewSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	_ = s.Color("cyan", "bold")

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
		stages:  []stageInfo{},
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage := usecase.ExecutionStage(event.Stage)
	if len(r.stages) == 0 || r.stages[len(r.stages)-1].Stage != stage {
		r.completeCurrentStage()
		r.stages = append(r.stages, stageInfo{
			Stage:     stage,
			StartTime: time.Now(),
			Status:    "running",
		})
	}
	r.stages[len(r.stages)-1].Message = event.Message

	if stage == usecase.StageCompleted {
		r.completeCurrentStage()
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		fmt.Fprintln(r.out, r.stageLine())
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.stageLine() + "  " + color.New(color.Faint).Sprint(event.Message)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// Stop halts the spinner
func (r *SpinnerProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	_, _ = c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if len(r.stages) > 0 {
		idx := len(r.stages) - 1
		if r.stages[idx].EndTime.IsZero() {
			r.stages[idx].EndTime = time.Now()
			r.stages[idx].Status = "completed"
		}
	}
}

// stageLine renders the pipeline stages seen so far
func (r *SpinnerProgressReporter) stageLine() string {
	var display string

	for _, stage := range r.stages {
		switch stage.Stage {
		case usecase.StageCompiling, usecase.StageDeploying, usecase.StageVerifying:
		default:
			continue
		}

		var icon string
		var stageColor *color.Color
		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		} else if stage.Status == "running" {
			duration = fmt.Sprintf(" (%s)", time.Since(stage.StartTime).Round(time.Second))
		}

		if display != "" {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(string(stage.Stage)), duration)
	}

	return display
}

// LineProgressReporter prints one line per stage, for non-interactive runs
type LineProgressReporter struct {
	out       io.Writer
	lastStage string
}

// NewLineProgressReporter creates a reporter writing plain lines to out
func NewLineProgressReporter(out io.Writer) *LineProgressReporter {
	return &LineProgressReporter{out: out}
}

// OnProgress prints the message of each new stage
func (r *LineProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == r.lastStage || event.Message == "" {
		return
	}
	r.lastStage = event.Stage
	fmt.Fprintf(r.out, "[%s] %s\n", event.Stage, event.Message)
}

// Info prints an info message
func (r *LineProgressReporter) Info(message string) { fmt.Fprintln(r.out, message) }

// Error prints an error message
func (r *LineProgressReporter) Error(message string) { fmt.Fprintln(r.out, message) }

// ProvideProgressSink picks the reporter for the run mode. JSON output and
// non-interactive runs never animate.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	out := os.Stderr
	switch {
	case cfg.JSON:
		return usecase.NopProgress{}
	case cfg.NonInteractive || cfg.Debug:
		return NewLineProgressReporter(out)
	default:
		return NewSpinnerProgressReporter(out)
	}
}

// Ensure the reporters implement ProgressSink
var (
	_ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
	_ usecase.ProgressSink = (*LineProgressReporter)(nil)
)
