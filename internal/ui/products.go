package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farmstand/internal/catalog"
)

// renderMain renders the header, command bar and product list.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderProducts())
	return b.String()
}

// renderProducts renders the product panel: skeleton placeholders while a
// fetch is in flight, the empty state when nothing matches, else the list.
func (m Model) renderProducts() string {
	height := m.contentHeight()
	innerWidth := m.width - 2
	innerHeight := height - 2

	var body string
	switch {
	case m.list.Loading():
		body = m.renderSkeleton(innerWidth, innerHeight)
	case m.list.Len() == 0:
		body = m.renderEmptyState(innerWidth, innerHeight)
	case m.compact:
		body = m.renderRows(innerWidth, innerHeight)
	default:
		body = m.renderCards(innerWidth, innerHeight)
	}
	return m.renderTitledBox(m.productsTitle(), body, m.width, height)
}

func (m Model) productsTitle() string {
	if m.list.Loading() {
		return m.spinner.View() + " Loading products"
	}
	total := len(m.list.Products())
	title := fmt.Sprintf("Products (%d)", total)
	if m.list.Filter().Active() {
		title = fmt.Sprintf("Products (%d/%d)", m.list.Len(), total)
	}
	if s := m.list.Sort(); s.Active() {
		title += " · " + s.String()
	}
	return title
}

// renderCards renders the visible window of product cards around the cursor.
func (m Model) renderCards(width, height int) string {
	products := m.list.Derived()
	visible := max(1, height/cardHeight)
	start := scrollStart(m.list.Cursor(), visible, len(products))

	lines := make([]string, 0, visible*cardHeight)
	for i := start; i < len(products) && i < start+visible; i++ {
		lines = append(lines, m.renderCard(products[i], width, i == m.list.Cursor())...)
	}
	return strings.Join(lines, "\n")
}

// renderCard renders one product as cardHeight lines:
//
//	▌ Name                              $4.50
//	  [type]  24 in stock
//	  Description
func (m Model) renderCard(p catalog.Product, width int, selected bool) []string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	nameStyle := styles.Text.Bold(true)
	marker := bg.Spaces(2)
	if selected {
		nameStyle = nameStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
		marker = bg.Render("▌", styles.AccentText) + bg.Space()
	}

	price := bg.Render(p.DisplayPrice(), styles.Price)
	nameWidth := max(width-lipgloss.Width(price)-4, 8)
	name := bg.Render(truncate(p.Name, nameWidth), nameStyle)
	gap := width - lipgloss.Width(marker) - lipgloss.Width(name) - lipgloss.Width(price) - 1
	line1 := marker + name + bg.Spaces(gap) + price

	badge := styles.TypeStyle(p.Type).Render(p.DisplayType())
	line2 := bg.Spaces(2) + badge + bg.Spaces(2) + m.renderStock(p, bg)

	var line3 string
	if width >= LayoutCompactWidth {
		desc := firstLine(p.Description)
		line3 = bg.Spaces(2) + bg.Render(truncate(desc, width-4), styles.MutedText)
	}

	return []string{
		bg.FillLine(line1, width),
		bg.FillLine(line2, width),
		bg.FillLine(line3, width),
		NewBgStyle(m.theme.SurfaceAlt).FillLine("", width),
	}
}

// renderRows renders one line per product.
func (m Model) renderRows(width, height int) string {
	products := m.list.Derived()
	visible := max(1, height)
	start := scrollStart(m.list.Cursor(), visible, len(products))

	styles := m.theme.Styles()
	lines := make([]string, 0, visible)
	for i := start; i < len(products) && i < start+visible; i++ {
		p := products[i]
		selected := i == m.list.Cursor()
		bgColor := m.theme.SurfaceAlt
		textStyle := styles.Text
		if selected {
			bgColor = m.theme.SelectionBg
			textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		}
		bg := NewBgStyle(bgColor)

		price := bg.Render(padLeft(p.DisplayPrice(), 9), styles.Price)
		stock := m.renderStock(p, bg)
		typ := bg.Render(padRight(truncate(p.DisplayType(), 12), 12), styles.FaintText)
		nameWidth := max(width-lipgloss.Width(price)-lipgloss.Width(stock)-16, 8)
		name := bg.Render(padRight(truncate(p.Name, nameWidth), nameWidth), textStyle)

		lines = append(lines, bg.FillLine(bg.Space()+name+bg.Space()+typ+price+bg.Spaces(2)+stock, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStock(p catalog.Product, bg BgStyle) string {
	styles := m.theme.Styles()
	if !p.InStock() {
		return bg.Render("sold out", styles.DangerText)
	}
	return bg.Render(fmt.Sprintf("%d in stock", p.Quantity), styles.MutedText)
}

// renderSkeleton renders placeholder cards with the same shape as real ones.
func (m Model) renderSkeleton(width, height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	style := m.theme.Styles().Skeleton
	block := func(n int) string {
		return bg.Render(strings.Repeat("░", max(n, 1)), style)
	}

	count := min(skeletonCards, max(1, height/cardHeight))
	lines := make([]string, 0, count*cardHeight)
	for i := 0; i < count; i++ {
		nameWidth := min(18+(i*7)%13, max(width-14, 1))
		descWidth := min(30+(i*11)%17, max(width-6, 1))
		lines = append(lines,
			bg.FillLine(bg.Spaces(2)+block(nameWidth)+bg.Spaces(max(width-nameWidth-9, 1))+block(5), width),
			bg.FillLine(bg.Spaces(2)+block(8)+bg.Spaces(2)+block(10), width),
			bg.FillLine(bg.Spaces(2)+block(descWidth), width),
			bg.FillLine("", width),
		)
	}
	return strings.Join(lines, "\n")
}

var emptyBasket = []string{
	`    \  |  /    `,
	`  .-'""""'-.  `,
	` /  .-""-.  \ `,
	`|__/______\__|`,
	` \__________/ `,
}

// renderEmptyState renders the basket graphic shown when no product matches.
func (m Model) renderEmptyState(width, height int) string {
	styles := m.theme.Styles()

	art := styles.FaintText.Render(strings.Join(emptyBasket, "\n"))
	title := styles.Text.Bold(true).Render("No products to show")

	hint := "Nothing is listed right now. Press r to reload."
	if m.list.Filter().Active() {
		hint = fmt.Sprintf("Nothing matches %q. Press x to reset.", m.list.Filter().Name)
	}

	block := lipgloss.JoinVertical(lipgloss.Center, art, "", title, styles.MutedText.Render(hint))
	return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center, block,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.SurfaceAlt)))
}

// renderTitledBox renders content in a box with the title embedded in the top border.
//
//	┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(m.theme.SurfaceAlt))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// pageSize returns how many products fit in the panel.
func (m Model) pageSize() int {
	inner := m.contentHeight() - 2
	if m.compact {
		return max(inner, 1)
	}
	return max(inner/cardHeight, 1)
}

// scrollStart returns the first visible index so cursor stays on screen.
func scrollStart(cursor, visible, total int) int {
	if total <= visible || cursor < visible {
		return 0
	}
	return min(cursor-visible+1, total-visible)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
