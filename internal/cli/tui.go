package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
	"github.com/matzehuels/kolam/pkg/studio"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Bounds of the numeric fields in the designer.
const (
	maxLatticeSide = 50
	spacingStep    = 5.0
	minSpacing     = 5.0
	maxSpacing     = 100.0
)

// =============================================================================
// DesignModel - Interactive parameter editor
// =============================================================================

// designFieldFamily labels the row that switches the design family.
// Changing it resets the family configuration to its defaults.
const designFieldFamily = "Design"

// designField is one editable row of the designer.
type designField struct {
	label  string
	value  func(*DesignModel) string
	adjust func(*DesignModel, int)
}

var designFields = []designField{
	{"Grid", func(m *DesignModel) string { return string(m.Params.GridType) },
		func(m *DesignModel, d int) { m.Params.GridType = cycle(kolam.GridTypes, m.Params.GridType, d) }},
	{"Rows", func(m *DesignModel) string { return fmt.Sprint(m.Params.Rows) },
		func(m *DesignModel, d int) { m.Params.Rows = clamp(m.Params.Rows+d, 1, maxLatticeSide) }},
	{"Columns", func(m *DesignModel) string { return fmt.Sprint(m.Params.Columns) },
		func(m *DesignModel, d int) { m.Params.Columns = clamp(m.Params.Columns+d, 1, maxLatticeSide) }},
	{"Spacing", func(m *DesignModel) string { return fmt.Sprintf("%gpx", m.Params.DotSpacing) },
		func(m *DesignModel, d int) {
			m.Params.DotSpacing = min(max(m.Params.DotSpacing+float64(d)*spacingStep, minSpacing), maxSpacing)
		}},
	{"Stroke", func(m *DesignModel) string { return string(m.Params.StrokeType) },
		func(m *DesignModel, d int) { m.Params.StrokeType = cycle(kolam.StrokeTypes, m.Params.StrokeType, d) }},
	{"Symmetry", func(m *DesignModel) string { return string(m.Params.Symmetry) },
		func(m *DesignModel, d int) { m.Params.Symmetry = cycle(kolam.Symmetries, m.Params.Symmetry, d) }},
	{"Iterations", func(m *DesignModel) string { return fmt.Sprint(m.Params.Iterations) },
		func(m *DesignModel, d int) { m.Params.Iterations = clamp(m.Params.Iterations+d, 1, kolam.MaxIterations) }},
	{designFieldFamily, func(m *DesignModel) string { return m.Family.Title() },
		func(m *DesignModel, d int) { m.Family = cycle(design.Families, m.Family, d) }},
}

// generatedMsg reports the end of a remote generation.
type generatedMsg struct{ err error }

// previewMsg carries local render statistics.
type previewMsg struct {
	stats pipeline.Stats
	err   error
}

// savedMsg reports the end of a session save.
type savedMsg struct {
	name string
	err  error
}

// DesignModel is the bubbletea model behind `kolam design`.
type DesignModel struct {
	Params kolam.Params
	Family design.Family
	Cursor int

	// Done is set when the user accepts the design with enter.
	Done bool

	ctx     context.Context
	studio  *studio.Studio
	store   *studio.FileStore
	session string

	busy      bool
	status    string
	statusErr bool
	preview   string
}

// NewDesignModel creates a designer editing the studio's current state.
// store may be nil, which disables saving.
func NewDesignModel(ctx context.Context, s *studio.Studio, store *studio.FileStore, session string) DesignModel {
	st := s.State()
	fam, err := design.ParseFamily(st.Design.Type)
	if err != nil {
		fam = design.DefaultFamily
	}
	return DesignModel{
		Params:  st.Params,
		Family:  fam,
		ctx:     ctx,
		studio:  s,
		store:   store,
		session: session,
	}
}

func (m DesignModel) Init() tea.Cmd {
	return m.previewCmd()
}

func (m DesignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case generatedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(errors.UserMessage(msg.err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Generated %s (%d bytes)", m.Family.Title(), len(m.studio.State().Markup)))
		return m, nil
	case previewMsg:
		if msg.err != nil {
			m.preview = ""
			m.setError(errors.UserMessage(msg.err))
			return m, nil
		}
		m.preview = fmt.Sprintf("%s · %s · %s",
			plural(msg.stats.Points, "dot"), plural(msg.stats.Paths, "path"), plural(msg.stats.Layers, "layer"))
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.setError(errors.UserMessage(msg.err))
			return m, nil
		}
		m.setStatus("Saved session " + msg.name)
		return m, nil
	}
	return m, nil
}

func (m DesignModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter":
		m.Done = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(designFields)-1 {
			m.Cursor++
		}
	case "left", "h", "-":
		return m.adjust(-1)
	case "right", "l", "+":
		return m.adjust(1)
	case "g":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.setStatus("Generating " + m.Family.Title() + "…")
		return m, m.generateCmd()
	case "s":
		if m.store == nil || m.session == "" {
			m.setError("No session name; start with --session to save")
			return m, nil
		}
		return m, m.saveCmd()
	case "c":
		m.studio.Clear()
		m.setStatus("Cleared result")
	}
	return m, nil
}

// adjust changes the focused field and syncs the studio.
func (m DesignModel) adjust(delta int) (tea.Model, tea.Cmd) {
	f := designFields[m.Cursor]
	f.adjust(&m, delta)
	if f.label == designFieldFamily {
		cfg, err := design.Default(m.Family)
		if err == nil {
			err = m.studio.SetDesign(cfg)
		}
		if err != nil {
			m.setError(errors.UserMessage(err))
		}
		return m, nil
	}
	if err := m.studio.SetParams(m.Params); err != nil {
		m.setError(errors.UserMessage(err))
		return m, nil
	}
	return m, m.previewCmd()
}

func (m DesignModel) generateCmd() tea.Cmd {
	s, ctx := m.studio, m.ctx
	return func() tea.Msg {
		return generatedMsg{err: s.Generate(ctx)}
	}
}

// previewCmd renders the parameters locally to report scene statistics.
// Generated markup is ignored so the preview always tracks the fields.
func (m DesignModel) previewCmd() tea.Cmd {
	p, ctx := m.Params, m.ctx
	return func() tea.Msg {
		scene, err := pipeline.BuildScene(ctx, pipeline.Options{Params: p})
		if err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{stats: pipeline.Stats{
			Points: len(scene.Lattice),
			Paths:  len(scene.Synthesis.Paths),
			Layers: len(scene.Layers),
		}}
	}
}

func (m DesignModel) saveCmd() tea.Cmd {
	s, store, name := m.studio, m.store, m.session
	return func() tea.Msg {
		st := s.State()
		st.Name = name
		return savedMsg{name: name, err: store.Set(st)}
	}
}

func (m *DesignModel) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *DesignModel) setError(s string)  { m.status, m.statusErr = s, true }

func (m DesignModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Kolam Designer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ field  ←/→ change  g generate  s save  c clear  ⏎ done  q quit"))
	b.WriteString("\n\n")

	for i, f := range designFields {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-11s %s", cursor, f.label, f.value(&m))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.preview != "" {
		b.WriteString(listDimStyle.Render("  " + m.preview))
		b.WriteString("\n")
	}

	st := m.studio.State()
	switch {
	case m.status != "" && m.statusErr:
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(m.status))
	case m.status != "":
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.status)
	}
	b.WriteString("\n")
	if st.HasResult() {
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("  result ready: %d bytes of SVG", len(st.Markup))))
	} else {
		b.WriteString(listDimStyle.Render("  no result"))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// cycle steps through vs from cur by delta, wrapping around.
func cycle[T comparable](vs []T, cur T, delta int) T {
	i := 0
	for j, v := range vs {
		if v == cur {
			i = j
			break
		}
	}
	n := len(vs)
	return vs[((i+delta)%n+n)%n]
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
