package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// progressMsg carries the running byte count from the download goroutine.
type progressMsg struct {
	written int64
	total   int64
}

// doneMsg stops the UI once the transfer finishes (or fails).
type doneMsg struct{}

type progressModel struct {
	label   string
	bar     progress.Model
	written int64
	total   int64
	done    bool
}

func newProgressModel(label string) progressModel {
	return progressModel{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient()),
		total: -1,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.written, m.total = msg.written, msg.total
		if msg.total > 0 {
			return m, m.bar.SetPercent(float64(msg.written) / float64(msg.total))
		}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - len(m.label) - 24
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.total <= 0 {
		return fmt.Sprintf("%s  %s\n", m.label, humanBytes(m.written))
	}
	return fmt.Sprintf("%s  %s %s/%s\n", m.label, m.bar.View(), humanBytes(m.written), humanBytes(m.total))
}

// RunWithProgress runs fn while rendering a progress bar, forwarding its
// progress callbacks into the UI. fn's error is returned once both the
// transfer and the UI have stopped.
func RunWithProgress(label string, fn func(report func(written, total int64)) error) error {
	p := tea.NewProgram(newProgressModel(label))

	errCh := make(chan error, 1)
	go func() {
		err := fn(func(written, total int64) {
			p.Send(progressMsg{written: written, total: total})
		})
		p.Send(doneMsg{})
		errCh <- err
	}()

	if _, err := p.Run(); err != nil {
		<-errCh
		return fmt.Errorf("progress UI failed: %w", err)
	}
	return <-errCh
}

// humanBytes formats a byte count with a binary unit prefix.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMG"[exp])
}
