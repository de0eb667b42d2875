package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trolley/internal/cart"
)

// shopPaneSize returns the outer size of each shop pane. Narrow terminals
// stack the panes.
func (m Model) shopPaneSize() (width, height int) {
	h := m.contentHeight()
	if m.width < LayoutCompactWidth {
		return m.width, maxInt(h/2, 3)
	}
	return m.width / 2, h
}

// renderShop renders the product list next to the cart.
func (m Model) renderShop() string {
	w, h := m.shopPaneSize()
	if m.width < LayoutCompactWidth {
		products := m.renderProducts(w, h)
		cartPane := m.renderCart(w, m.contentHeight()-h)
		return lipgloss.JoinVertical(lipgloss.Left, products, cartPane)
	}
	products := m.renderProducts(w, h)
	cartPane := m.renderCart(m.width-w, h)
	return lipgloss.JoinHorizontal(lipgloss.Top, products, cartPane)
}

func (m Model) renderProducts(width, height int) string {
	styles := m.theme().Styles()
	inner := maxInt(width-4, 1)
	rows := maxInt(height-3, 1)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Products"))

	// Keep the cursor on screen.
	start := 0
	if m.selectedProduct >= rows {
		start = m.selectedProduct - rows + 1
	}
	end := start + rows
	if end > len(m.catalog) {
		end = len(m.catalog)
	}

	snap := m.snapshot()
	for i := start; i < end; i++ {
		p := m.catalog[i]
		badge := ""
		if line, ok := snap.Find(p.ID); ok {
			badge = fmt.Sprintf("x%d", line.Quantity)
		}
		row := formatRow(p.Name, formatMoney(p.Price), badge, inner)

		b.WriteString("\n")
		switch {
		case i == m.selectedProduct && m.focusedPane == paneProducts:
			b.WriteString(styles.Selected.Render(row))
		case i == m.selectedProduct:
			b.WriteString(styles.AccentText.Render(row))
		default:
			b.WriteString(styles.Text.Render(row))
		}
	}

	return m.pane(m.focusedPane == paneProducts, width, height, b.String())
}

func (m Model) renderCart(width, height int) string {
	styles := m.theme().Styles()
	snap := m.snapshot()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Cart"))
	b.WriteString("\n")
	b.WriteString(m.cartLines(snap))
	b.WriteString("\n")

	if snap.IsEmpty() {
		b.WriteString(styles.MutedText.Render("Total: nothing yet"))
	} else {
		b.WriteString(styles.SuccessText.Render(fmt.Sprintf("Total: %s for %d %s",
			formatMoney(snap.TotalAmount), snap.TotalItems,
			plural(snap.TotalItems, "item", "items"))))
	}

	return m.pane(m.focusedPane == paneCart, width, height, b.String())
}

// cartLines renders the cart lines through the cart viewport, scrolled so
// the cursor is visible.
func (m Model) cartLines(snap cart.Snapshot) string {
	styles := m.theme().Styles()
	vp := m.cartViewport

	if snap.IsEmpty() {
		vp.SetContent(styles.FaintText.Render("Your cart is empty. Press a to add the selected product."))
		return vp.View()
	}

	selected := clampIndex(m.selectedItem, len(snap.Items))
	lines := make([]string, 0, len(snap.Items))
	for i, item := range snap.Items {
		qty := fmt.Sprintf("x%d", item.Quantity)
		row := formatRow(item.Name, qty, formatMoney(item.Price*float64(item.Quantity)), maxInt(vp.Width, 1))
		switch {
		case i == selected && m.focusedPane == paneCart:
			row = styles.Selected.Render(row)
		case i == selected:
			row = styles.AccentText.Render(row)
		default:
			row = styles.Text.Render(row)
		}
		lines = append(lines, row)
	}
	vp.SetContent(strings.Join(lines, "\n"))
	if vp.Height > 0 && selected >= vp.Height {
		vp.SetYOffset(selected - vp.Height + 1)
	}
	return vp.View()
}

// pane wraps content in a bordered box of the given outer size.
func (m Model) pane(focused bool, width, height int, content string) string {
	styles := m.theme().Styles()
	style := styles.Pane
	if focused {
		style = styles.FocusedPane
	}
	return style.
		Width(maxInt(width-2, 1)).
		Height(maxInt(height-2, 1)).
		Render(content)
}

// formatRow lays out a name with two right-aligned columns in width cells.
func formatRow(name, middle, right string, width int) string {
	const middleWidth, rightWidth = 10, 10
	nameWidth := maxInt(width-middleWidth-rightWidth-2, 4)
	return padRight(truncate(name, nameWidth), nameWidth) + " " +
		padLeft(middle, middleWidth) + " " +
		padLeft(right, rightWidth)
}
