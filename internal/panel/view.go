package panel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/timescale/internal/dynamo"
	"github.com/san-kum/timescale/internal/timescale"
)

func (m Model) View() string {
	var b strings.Builder

	mode := m.eng.Mode().String()
	b.WriteString(titleStyle.Render("TIME SCALE") + "  " + modeStyles[mode].Render(mode))
	if now := m.clock.Now(); m.ctrl.Transitioning(now) {
		b.WriteString("  " + easingStyle.Render(fmt.Sprintf("EASING %3.0f%%", 100*m.ctrl.Progress(now))))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewTimeScale())
	b.WriteString("\n\n")
	b.WriteString(m.viewFrameRate())
	b.WriteString("\n\n")
	b.WriteString(m.viewSimulation())

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(50),
			asciigraph.LowerBound(timescale.MinTimeScale),
			asciigraph.UpperBound(timescale.MaxTimeScale),
			asciigraph.Caption("time scale"))
		b.WriteString("\n" + graphStyle.Render(graph))
	}

	if err := m.eng.Err(); err != nil {
		b.WriteString("\n\n" + errStyle.Render(err.Error()))
	} else if m.status != "" {
		b.WriteString("\n\n" + subtle.Render(m.status))
	}

	b.WriteString("\n\n" + hint("h/l", "nudge") + hint("1-5", "scale") + hint("-/+", "fps") + hint("6-0", "fps preset"))
	b.WriteString("\n" + hint("p", "play/stop") + hint("space", "pause") + hint("q", "quit"))

	return panelStyle.Render(b.String())
}

func (m Model) viewTimeScale() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Current Time Scale:") + valueStyle.Render(timescale.FormatTimeScale(m.ctrl.CurrentTimeScale())) + "\n")
	target := m.ctrl.TargetTimeScale()
	b.WriteString(labelStyle.Render("Target") + slider(target, timescale.MinTimeScale, timescale.MaxTimeScale, sliderWidth) +
		" " + timescale.FormatTimeScale(target) + "\n")

	buttons := make([]string, 0, len(m.timeScalePresets))
	for i, p := range m.timeScalePresets {
		style := presetStyle
		if p.Value == target {
			style = activePresetStyle
		}
		buttons = append(buttons, style.Render(fmt.Sprintf("%d %s", i+1, p.Label)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	return b.String()
}

func (m Model) viewFrameRate() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Current Frame Rate:") + valueStyle.Render(timescale.FormatFrameRate(m.ctrl.CurrentFrameRate())) + "\n")
	target := m.ctrl.TargetFrameRate()
	b.WriteString(labelStyle.Render("Target") +
		slider(float64(target), timescale.MinFrameRate, timescale.MaxFrameRate, sliderWidth) +
		" " + timescale.FormatFrameRate(target) + "\n")

	keys := []string{"6", "7", "8", "9", "0"}
	buttons := make([]string, 0, len(m.frameRatePresets))
	for i, p := range m.frameRatePresets {
		style := presetStyle
		if p.Value == target {
			style = activePresetStyle
		}
		label := p.Label
		if i < len(keys) {
			label = keys[i] + " " + label
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	return b.String()
}

func (m Model) viewSimulation() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Sim Time:") + valueStyle.Render(fmt.Sprintf("%.2fs", m.eng.SimTime())) + "\n")
	b.WriteString(labelStyle.Render("Measured FPS:") + valueStyle.Render(fmt.Sprintf("%.1f", m.fps)))
	b.WriteString("\n" + labelStyle.Render("Steps:") + valueStyle.Render(fmt.Sprintf("%d", m.eng.Steps())))
	b.WriteString("\n" + labelStyle.Render("State |x|:") + valueStyle.Render(fmt.Sprintf("%.4f", m.eng.State().Norm())))
	if e := m.eng.Energy(); !math.IsNaN(e) {
		b.WriteString("\n" + labelStyle.Render("Energy:") + valueStyle.Render(fmt.Sprintf("%.4f", e)))
	}
	if c, ok := m.eng.System().(dynamo.Configurable); ok {
		params := c.GetParams()
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%g", name, params[name]))
		}
		b.WriteString("\n" + labelStyle.Render("Params:") + subtle.Render(strings.Join(parts, " ")))
	}
	return b.String()
}
