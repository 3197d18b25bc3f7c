package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/psim-config/internal/form"
	"github.com/atomicstack/psim-config/internal/format/table"
	"github.com/atomicstack/psim-config/internal/layout"
	"github.com/atomicstack/psim-config/internal/theme"
	"github.com/atomicstack/psim-config/internal/widget"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	triggerMaxWidth = 36
	footerHint      = "tab/↑↓ move  enter select  ctrl+g seed  ctrl+x clear file  ctrl+s run  esc quit"
)

// canvas accumulates content lines and reports the bounds of each block.
type canvas struct {
	lines []string
}

func (c *canvas) add(block string) layout.Rect {
	top := len(c.lines)
	parts := strings.Split(block, "\n")
	c.lines = append(c.lines, parts...)
	width := 0
	for _, part := range parts {
		if w := ansi.StringWidth(part); w > width {
			width = w
		}
	}
	return layout.Rect{Top: top, Width: width, Height: len(parts)}
}

func (c *canvas) blank() {
	c.lines = append(c.lines, "")
}

// View implements tea.Model. Rendering also records the hit regions used to
// route pointer input.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	width := m.contentWidth()
	m.regions = m.regions[:0]
	m.rects = make(map[field]layout.Rect, int(fieldCount))
	m.overlay = overlayLayout{}

	c := &canvas{}
	c.add(theme.Render(styles.Title, "P System Simulator"))
	c.add(theme.Render(styles.Subtitle, clip("Configure and run the simulation with XML scene and rule files", width)))
	c.blank()
	c.add(theme.Render(styles.Section, "File Selection"))
	for _, f := range []*fileField{m.scene, m.rules} {
		m.record(c.add(m.renderFileCard(f, width)), f.id, targetField)
	}
	c.blank()
	c.add(theme.Render(styles.Section, "Configuration"))

	c.add(m.label(fieldMode, "Derivation Mode"))
	m.record(c.add(m.renderTrigger(width)), fieldMode, targetTrigger)

	for _, f := range []*numericField{m.timesteps, m.interval} {
		c.add(m.label(f.id, fmt.Sprintf("%s (%d-%d)", f.label, f.bound.Min, f.bound.Max)))
		f.input.Width = max(width-4, 1)
		m.record(c.add(f.input.View()), f.id, targetField)
	}

	m.record(c.add(m.renderToggle()), fieldLogging, targetField)

	c.add(m.label(fieldSeed, "Random Seed"))
	m.seed.Width = max(width-4, 1)
	m.record(c.add(m.seed.View()), fieldSeed, targetField)

	c.blank()
	runStyle := styles.Button
	if m.focus == fieldRun {
		runStyle = styles.FocusButton
	}
	m.record(c.add(theme.Render(runStyle, "Run simulation")), fieldRun, targetField)
	if m.verbose {
		c.blank()
		for _, line := range m.summaryLines() {
			c.add(theme.Render(styles.Description, line))
		}
	}

	lines := c.lines
	if p, ok := m.mode.Placement(); ok {
		lines = m.renderOverlay(lines, p, width)
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}

	chrome := m.chromeLines(width)
	height := len(lines)
	if m.height > 0 {
		height = max(m.height-len(chrome), 1)
	}
	m.body.Width = width
	m.body.Height = height
	m.body.SetContent(strings.Join(lines, "\n"))
	m.body.SetYOffset(m.body.YOffset)

	return m.body.View() + "\n" + strings.Join(chrome, "\n")
}

func (m *Model) record(rect layout.Rect, f field, target hitTarget) {
	m.rects[f] = rect
	m.regions = append(m.regions, region{rect: rect, field: f, target: target})
}

func (m *Model) label(f field, text string) string {
	if m.focus == f {
		return theme.Render(styles.FocusLabel, text)
	}
	return theme.Render(styles.Label, text)
}

func (m *Model) renderFileCard(f *fileField, width int) string {
	style := styles.Card
	if m.focus == f.id {
		style = styles.FocusCard
	}
	if f.acceptor.DragOver() {
		style = styles.DragOverCard
	}
	inner := max(width-4, 1)
	lines := []string{
		m.label(f.id, f.title),
		theme.Render(styles.Description, clip(f.description, inner)),
	}
	hint := "Drop your .xml file here, or type a path and press enter"
	if file := f.acceptor.File(); file != nil {
		lines = append(lines, theme.Render(styles.FileName, clip("✓ "+file.Name, inner)))
		hint = file.MimeType + " · ctrl+x to clear"
	}
	f.input.Width = max(inner-3, 1)
	lines = append(lines, f.input.View())
	lines = append(lines, theme.Render(styles.FileHint, clip(hint, inner)))
	if f.warning != "" {
		lines = append(lines, theme.Render(styles.Warn, clip(f.warning, inner)))
	}
	body := strings.Join(lines, "\n")
	if style == nil {
		return body
	}
	return style.Width(max(width-2, 1)).Render(body)
}

func (m *Model) renderTrigger(width int) string {
	trigger := widget.NewTrigger(m.mode)
	boxWidth := min(width, triggerMaxWidth)
	inner := max(boxWidth-4, 3)
	text, placeholder := trigger.Text()
	text = clip(text, inner-2)
	arrow := "▾"
	if trigger.Expanded() {
		arrow = "▴"
	}
	gap := max(inner-ansi.StringWidth(text)-1, 1)
	if placeholder {
		text = theme.Render(styles.Placeholder, text)
	}
	line := text + strings.Repeat(" ", gap) + arrow
	style := styles.Trigger
	if m.focus == fieldMode {
		style = styles.FocusTrigger
	}
	if style == nil {
		return line
	}
	return style.Width(max(boxWidth-2, 1)).Render(line)
}

func (m *Model) renderToggle() string {
	pill := theme.Render(styles.ToggleOff, " OFF ")
	if m.logging.State() == widget.StateChecked {
		pill = theme.Render(styles.ToggleOn, " ON ")
	}
	if m.logging.Disabled() {
		pill = theme.Render(styles.Disabled, " -- ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.label(fieldLogging, "Enable Logging"), "  ", pill)
}

func (m *Model) summaryLines() []string {
	mode := "-"
	if m.config.DerivationMode != "" {
		mode = m.config.DerivationMode.Label()
	}
	rows := [][]string{
		{"scene", orDash(m.config.Scene)},
		{"rules", orDash(m.config.Rules)},
		{"mode", mode},
		{"timesteps", fmt.Sprint(m.config.Timesteps)},
		{"interval", fmt.Sprint(m.config.UpdateInterval)},
		{"logging", fmt.Sprint(m.config.EnableLogging)},
		{"seed", orDash(m.config.RandomSeed)},
		{"format", string(orFormat(m.format))},
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
}

func (m *Model) chromeLines(width int) []string {
	status := ""
	switch {
	case m.errMsg != "":
		status = theme.Render(styles.Error, "Error: "+m.errMsg)
	case m.warning() != "":
		status = theme.Render(styles.Warn, m.warning())
	case m.infoMsg != "":
		status = theme.Render(styles.Info, m.infoMsg)
	}
	lines := []string{ansi.Truncate(status, width, "…")}
	if m.showFooter {
		lines = append(lines, theme.Render(styles.Footer, clip(footerHint, width)))
	}
	return lines
}

func (m *Model) warning() string {
	for _, f := range []*fileField{m.scene, m.rules} {
		if f.warning != "" {
			return f.warning
		}
	}
	return ""
}

// ensureVisible scrolls the body so the field's last rendered bounds are on
// screen.
func (m *Model) ensureVisible(f field) {
	r, ok := m.rects[f]
	if !ok || m.body.Height <= 0 {
		return
	}
	switch {
	case r.Top < m.body.YOffset:
		m.body.SetYOffset(r.Top)
	case r.Bottom() > m.body.YOffset+m.body.Height:
		m.body.SetYOffset(r.Bottom() - m.body.Height)
	}
}

func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func orFormat(f form.Format) form.Format {
	if f == "" {
		return form.FormatJSON
	}
	return f
}
