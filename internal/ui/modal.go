package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farmstand/internal/view"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// cartPopup is shown after a product is added to the cart.
type cartPopup struct {
	popup     view.Popup
	cartCount int
	cartTotal float64
}

var _ Modal = cartPopup{}

func (c cartPopup) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Dismiss) {
		return c, nil, true
	}
	return c, nil, false
}

func (c cartPopup) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("✓ Added to cart"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(truncate(c.popup.Name, 36)))
	b.WriteString("\n")
	if c.popup.ImageURL != "" {
		b.WriteString(styles.FaintText.Render(truncate(c.popup.ImageURL, 36)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d in cart", c.popup.Quantity)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("Cart: %d %s · $%.2f",
		c.cartCount, plural(c.cartCount, "item"), c.cartTotal)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.FaintText.Render(" to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Success)).
		Padding(1, 2).
		Width(42)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
