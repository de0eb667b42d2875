package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trolley/internal/cart"
	"github.com/five82/trolley/internal/counter"
	"github.com/five82/trolley/internal/state"
)

// handleKey processes keyboard input. Each key press that changes a store
// does so through a single Batch, so subscribers hear about it once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		err := m.themeValue.Update(NextTheme)
		m.setStatus("theme "+m.theme().Name, err)
		return m, nil

	case key.Matches(msg, m.keys.ViewShop):
		m.currentView = ViewShop
		return m, nil

	case key.Matches(msg, m.keys.ViewCount):
		m.currentView = ViewCounter
		return m, nil

	case key.Matches(msg, m.keys.ViewLog):
		m.currentView = ViewActivity
		return m, loadActivityCmd(m.logPath)

	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		if m.currentView == ViewActivity {
			return m, loadActivityCmd(m.logPath)
		}
		return m, nil
	}

	switch m.currentView {
	case ViewShop:
		return m.handleShopKey(msg)
	case ViewCounter:
		return m.handleCounterKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}

	return m, nil
}

// toggleFocus cycles focus forward.
// Cycle: Shop(products) → Shop(cart) → Counter → Activity → Shop(products)
func (m *Model) toggleFocus() {
	switch m.currentView {
	case ViewShop:
		if m.focusedPane == paneProducts {
			m.focusedPane = paneCart
		} else {
			m.currentView = ViewCounter
			m.focusedPane = paneProducts
		}
	case ViewCounter:
		m.currentView = ViewActivity
	case ViewActivity:
		m.currentView = ViewShop
		m.focusedPane = paneProducts
	}
}

// handleShopKey processes keyboard input for the shop view.
func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Add):
		if item, ok := m.target(); ok {
			m.dispatchCart("added "+item.Name, cart.AddItem{Item: item})
		}

	case key.Matches(msg, m.keys.AddAll):
		actions := make([]cart.Action, 0, len(m.catalog))
		for _, p := range m.catalog {
			actions = append(actions, cart.AddItem{Item: p.Item()})
		}
		m.dispatchCart(fmt.Sprintf("added %d products", len(actions)), actions...)

	case key.Matches(msg, m.keys.More):
		item, ok := m.target()
		if !ok {
			break
		}
		if line, inCart := m.snapshot().Find(item.ID); inCart {
			m.dispatchCart(fmt.Sprintf("%s x%d", line.Name, line.Quantity+1),
				cart.UpdateQuantity{ID: line.ID, Quantity: line.Quantity + 1})
		} else {
			m.dispatchCart("added "+item.Name, cart.AddItem{Item: item})
		}

	case key.Matches(msg, m.keys.Less):
		if line, ok := m.targetLine(); ok {
			m.dispatchCart(fmt.Sprintf("%s x%d", line.Name, line.Quantity-1),
				cart.UpdateQuantity{ID: line.ID, Quantity: line.Quantity - 1})
		}

	case key.Matches(msg, m.keys.Remove):
		if line, ok := m.targetLine(); ok {
			m.dispatchCart("removed "+line.Name, cart.RemoveItem{ID: line.ID})
		}

	case key.Matches(msg, m.keys.SetQuantity):
		if item, ok := m.target(); ok {
			cmd := m.openPrompt(item)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Clear):
		m.dispatchCart("cart cleared", cart.ClearCart{})
	}

	return m, nil
}

// handlePromptKey processes keyboard input while the quantity prompt is open.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		raw := strings.TrimSpace(m.quantityInput.Value())
		item := m.promptItem
		m.closePrompt()

		qty, err := strconv.Atoi(raw)
		if err != nil {
			m.setStatus("", fmt.Errorf("quantity %q is not a number", raw))
			return m, nil
		}

		// A product not yet in the cart is added and sized in one batch.
		var actions []cart.Action
		if _, inCart := m.snapshot().Find(item.ID); !inCart && qty > 0 {
			actions = append(actions, cart.AddItem{Item: item})
		}
		actions = append(actions, cart.UpdateQuantity{ID: item.ID, Quantity: qty})
		m.dispatchCart(fmt.Sprintf("%s x%d", item.Name, qty), actions...)
		return m, nil
	}

	var cmd tea.Cmd
	m.quantityInput, cmd = m.quantityInput.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(item cart.Item) tea.Cmd {
	current := 0
	if line, ok := m.snapshot().Find(item.ID); ok {
		current = line.Quantity
	}
	m.prompting = true
	m.promptItem = item
	m.quantityInput.SetValue(strconv.Itoa(current))
	m.quantityInput.CursorEnd()
	return m.quantityInput.Focus()
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.promptItem = cart.Item{}
	m.quantityInput.Blur()
	m.quantityInput.Reset()
}

// handleCounterKey processes keyboard input for the counter view.
func (m Model) handleCounterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Increment):
		m.dispatchCount(counter.Increment)

	case key.Matches(msg, m.keys.Decrement):
		m.dispatchCount(counter.Decrement)

	case key.Matches(msg, m.keys.Reset):
		m.dispatchCount(counter.Reset)

	case key.Matches(msg, m.keys.BatchUpdate):
		err := m.tally.Batch(func(dispatch func(state.Update[int])) {
			for _, step := range []int{1, 5, 10} {
				dispatch(state.Apply(func(n int) int { return n + step }))
			}
		})
		m.setStatus(fmt.Sprintf("tally %d after +1 +5 +10", m.tally.Get()), err)

	case key.Matches(msg, m.keys.StaleUpdate):
		base := m.tally.Get()
		err := m.tally.Batch(func(dispatch func(state.Update[int])) {
			for _, step := range []int{1, 5, 10} {
				dispatch(state.Set(base + step))
			}
		})
		m.setStatus(fmt.Sprintf("tally %d after three sets from %d", m.tally.Get(), base), err)

	case key.Matches(msg, m.keys.ZeroTally):
		err := m.tally.Set(0)
		m.setStatus("tally zeroed", err)
	}

	return m, nil
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return m, loadActivityCmd(m.logPath)
	}
	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

// dispatchCart applies actions to the cart as one unit of work.
func (m *Model) dispatchCart(done string, actions ...cart.Action) {
	err := m.cart.Batch(func(dispatch func(cart.Action)) {
		for _, a := range actions {
			dispatch(a)
		}
	})
	m.clampSelection()
	m.setStatus(done, err)
}

func (m *Model) dispatchCount(action counter.Action) {
	err := m.counter.Dispatch(action)
	m.setStatus(fmt.Sprintf("%s: %d", action, m.counter.State()), err)
}

// moveSelection moves the cursor in the focused shop pane.
func (m *Model) moveSelection(delta int) {
	if m.focusedPane == paneCart {
		m.selectedItem = clampIndex(m.selectedItem+delta, len(m.snapshot().Items))
		return
	}
	m.selectedProduct = clampIndex(m.selectedProduct+delta, len(m.catalog))
}

// target returns the item under the cursor of the focused shop pane.
func (m Model) target() (cart.Item, bool) {
	if m.focusedPane == paneCart {
		items := m.snapshot().Items
		if len(items) == 0 {
			return cart.Item{}, false
		}
		return items[clampIndex(m.selectedItem, len(items))], true
	}
	if len(m.catalog) == 0 {
		return cart.Item{}, false
	}
	return m.catalog[m.selectedProduct].Item(), true
}

// targetLine returns the cart line for the item under the cursor, if the
// item is in the cart.
func (m Model) targetLine() (cart.Item, bool) {
	item, ok := m.target()
	if !ok {
		return cart.Item{}, false
	}
	return m.snapshot().Find(item.ID)
}
