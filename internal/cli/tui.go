package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/minicase/pkg/pipeline"
	"github.com/matzehuels/minicase/pkg/progress"
)

// Progress bar styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	stageStyle     = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

const (
	barMaxWidth = 40
	barMinWidth = 10
)

var stageLabels = map[progress.Stage]string{
	progress.Initializing:       "Initializing",
	progress.AnalyzingImages:    "Analyzing images",
	progress.OptimizingImages:   "Optimizing images",
	progress.CreatingDocument:   "Creating document",
	progress.DrawingFrontCovers: "Drawing front covers",
	progress.DrawingDisc:        "Drawing disc",
	progress.DrawingBackCovers:  "Drawing back covers",
	progress.Finalizing:         "Finalizing",
	progress.Complete:           "Complete",
	progress.Error:              "Failed",
}

// stageLabel returns a human-readable stage name with its detail.
func stageLabel(s progress.Stage, detail string) string {
	label, ok := stageLabels[s]
	if !ok {
		label = s.String()
	}
	if detail == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, detail)
}

// =============================================================================
// RenderModel - Live render progress
// =============================================================================

type progressMsg progress.Event

type renderDoneMsg struct {
	result *pipeline.Result
	err    error
}

// RenderModel is the bubbletea model showing render progress.
type RenderModel struct {
	Title    string
	Fraction float64
	Stage    progress.Stage
	Detail   string
	Width    int

	Result *pipeline.Result
	Err    error

	cancel     context.CancelFunc
	cancelling bool
}

// NewRenderModel creates a progress model. cancel stops the render when
// the user quits.
func NewRenderModel(title string, cancel context.CancelFunc) RenderModel {
	return RenderModel{Title: title, Width: 80, cancel: cancel}
}

func (m RenderModel) Init() tea.Cmd {
	return nil
}

func (m RenderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.Fraction = msg.Fraction
		m.Stage = msg.Stage
		m.Detail = msg.Detail
	case renderDoneMsg:
		m.Result, m.Err = msg.result, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// The render goroutine reports back once it sees the cancel.
			if m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m RenderModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	w := min(barMaxWidth, max(barMinWidth, m.Width-12))
	filled := int(m.Fraction * float64(w))
	b.WriteString("  ")
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", w-filled)))
	b.WriteString(StyleNumber.Render(fmt.Sprintf(" %3.0f%%", m.Fraction*100)))
	b.WriteString("\n  ")

	if m.cancelling {
		b.WriteString(StyleWarning.Render("Cancelling..."))
	} else {
		b.WriteString(stageStyle.Render(stageLabel(m.Stage, "")))
		if m.Detail != "" {
			b.WriteString(StyleDim.Render("  " + m.Detail))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("  q cancel"))
	b.WriteString("\n")
	return b.String()
}

// renderFunc runs one render, reporting progress to fn.
type renderFunc func(ctx context.Context, fn progress.Func) (*pipeline.Result, error)

// runWithTUI runs render behind a live progress view on stderr.
func runWithTUI(ctx context.Context, title string, render renderFunc) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewRenderModel(title, cancel), tea.WithOutput(os.Stderr))
	go func() {
		res, err := render(ctx, func(f float64, s progress.Stage, d string) {
			p.Send(progressMsg{Fraction: f, Stage: s, Detail: d})
		})
		p.Send(renderDoneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(RenderModel)
	return m.Result, m.Err
}

// runWithSpinner runs render behind a single-line spinner on stderr.
func runWithSpinner(ctx context.Context, title string, render renderFunc) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, title)
	spinner.Start()

	res, err := render(ctx, func(_ float64, s progress.Stage, d string) {
		spinner.SetMessage(stageLabel(s, d))
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()
	return res, nil
}
