package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pkgtrust/pkg/observability"
)

const progressBarWidth = 24

var (
	progressFillStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	progressEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Messages sent from the runner's hooks into the model.
type (
	evalStartMsg struct{ reference string }
	metricMsg    struct{ metric string }
	evalDoneMsg  struct{ netScore float64 }
	progressDone struct{ err error }
)

// progressModel is the bubbletea model for the batch progress view.
type progressModel struct {
	total   int
	done    int
	current string
	metric  string
	last    float64
	started time.Time
	err     error
	quit    bool
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evalStartMsg:
		m.current, m.metric = msg.reference, ""
	case metricMsg:
		m.metric = msg.metric
	case evalDoneMsg:
		m.done++
		m.last = msg.netScore
	case progressDone:
		m.err, m.quit = msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderBar(m.done, m.total))
	fmt.Fprintf(&b, " %s", StyleNumber.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
	if m.current != "" {
		b.WriteString(" " + StyleValue.Render(m.current))
	}
	if m.metric != "" {
		b.WriteString(StyleDim.Render(" · " + m.metric))
	}
	if m.done > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · last NetScore %.3f", m.last)))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · %s", time.Since(m.started).Round(time.Second))))
	return b.String() + "\n"
}

func renderBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = min(done*progressBarWidth/total, progressBarWidth)
	}
	return progressFillStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}

// progressView drives a progressModel from evaluation hooks. It also
// accepts echoed records as an io.Writer and prints them above the view.
type progressView struct {
	observability.NoopEvaluationHooks
	program *tea.Program
	exited  chan struct{}
}

var (
	_ observability.EvaluationHooks = (*progressView)(nil)
	_ io.Writer                     = (*progressView)(nil)
)

func newProgressView(total int, out io.Writer) *progressView {
	m := progressModel{total: total, started: time.Now()}
	return &progressView{
		program: tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil)),
		exited:  make(chan struct{}),
	}
}

// Start runs the program in the background.
func (v *progressView) Start() {
	go func() {
		defer close(v.exited)
		_, _ = v.program.Run()
	}()
}

// Finish stops the view and waits for the terminal to be restored.
func (v *progressView) Finish(err error) {
	v.program.Send(progressDone{err: err})
	<-v.exited
}

func (v *progressView) OnEvaluateStart(_ context.Context, reference string) {
	v.program.Send(evalStartMsg{reference: reference})
}

func (v *progressView) OnMetricStart(_ context.Context, _, metric string) {
	v.program.Send(metricMsg{metric: metric})
}

func (v *progressView) OnEvaluateComplete(_ context.Context, _ string, netScore float64, _ time.Duration, err error) {
	if err == nil {
		v.program.Send(evalDoneMsg{netScore: netScore})
	}
}

// Write prints one echoed record line above the view.
func (v *progressView) Write(p []byte) (int, error) {
	v.program.Println(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
