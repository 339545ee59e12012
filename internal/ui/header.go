package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, fetch state, counts and cart.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("farmstand", styles.Logo)}

	if m.list.Loading() {
		parts = append(parts, bg.Render(m.spinner.View()+" Loading", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts, bg.Render("● Ready", styles.SuccessText))
	}

	shown, total := m.list.Len(), len(m.list.Products())
	count := fmt.Sprintf("%d", total)
	if shown != total {
		count = fmt.Sprintf("%d/%d", shown, total)
	}
	parts = append(parts,
		bg.Render("Products:", styles.MutedText)+bg.Space()+bg.Render(count, styles.Text))

	cartStyle := styles.MutedText
	if m.cart.Count() > 0 {
		cartStyle = styles.AccentText
	}
	parts = append(parts,
		bg.Render("Cart:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.cart.Count()), cartStyle)+bg.Space()+
			bg.Render(fmt.Sprintf("$%.2f", m.cart.Total()), styles.Price))

	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, 40), styles.DangerText.Bold(true)))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints, or the filter input while editing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Render(":", styles.FaintText)
	sep := bg.Spaces(2)

	if m.filtering {
		hint := bg.Render("enter", styles.AccentText) + colon + bg.Render("Apply", styles.MutedText) + sep +
			bg.Render("esc", styles.AccentText) + colon + bg.Render("Clear", styles.MutedText)
		input := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg)).Render(m.filterInput.View())
		return styles.Header.Width(m.width).MaxWidth(m.width).Render(input + sep + hint)
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", m.filterLabel()},
		{"n/p/t/s", "Sort"},
		{"a", "Add"},
		{"r", "Reload"},
		{"x", "Reset"},
		{"c", m.layoutLabel()},
		{"?", "More"},
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if s := m.list.Sort(); s.Active() {
		segments = append(segments, bg.Render("↕ "+s.String(), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}

func (m Model) filterLabel() string {
	if f := m.list.Filter(); f.Active() {
		return "Filter " + truncate(f.Name, 16)
	}
	return "Filter"
}

func (m Model) layoutLabel() string {
	if m.compact {
		return "Cards"
	}
	return "Rows"
}
