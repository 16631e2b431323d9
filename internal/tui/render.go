package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/grid"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	moreStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) View() string {
	if !a.loaded {
		out := "Loading catalog..."
		if a.status != "" {
			out += "\n" + a.status
		}
		return out
	}
	if a.detail != nil {
		return a.renderDetail(*a.detail)
	}
	return a.renderGrid()
}

func (a *App) renderGrid() string {
	v := a.grid.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render(v.Heading) + "\n")
	b.WriteString(subtleStyle.Render(v.Summary()) + "\n")
	b.WriteString(a.renderFilters() + "\n\n")

	if v.Empty() {
		b.WriteString("No products found\n")
		b.WriteString(subtleStyle.Render("Try adjusting your filters or selecting a different category") + "\n")
		if hint := a.categoryHint(); hint != "" {
			b.WriteString(hint + "\n")
		}
	} else {
		cards := grid.Render(a.grid, a.callbacks, a.renderCard)
		end := min(len(cards), a.top+a.cardsPerScreen())
		for i := a.top; i < end; i++ {
			lines := strings.Split(cards[i], "\n")
			for j, line := range lines {
				prefix := "  "
				if i == a.cursor && j == 0 {
					prefix = "▶ "
					line = selectedStyle.Render(line)
				}
				b.WriteString(prefix + line + "\n")
			}
		}
		if v.HasMore {
			b.WriteString(moreStyle.Render(fmt.Sprintf("[m] Load more (%d of %d shown)", len(v.Items), v.Total)) + "\n")
		}
	}

	if a.typing {
		b.WriteString("Category: " + a.input + "_\n")
	} else if a.status != "" {
		b.WriteString(statusStyle.Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// renderCard is the card renderer handed to the grid. Callbacks arrive
// untouched; the terminal drives them from key bindings.
func (a *App) renderCard(it catalog.Item, cb grid.Callbacks) string {
	details := []string{a.categoryOf(it), a.formatRating(it), a.formatPrice(it.Price)}
	if qty := a.cart[it.ID]; qty > 0 && cb.OnAddToCart != nil {
		details = append(details, fmt.Sprintf("in cart: %d", qty))
	}
	return it.Name + "\n" + subtleStyle.Render(strings.Join(details, " · ")) + "\n"
}

func (a *App) renderFilters() string {
	parts := []string{"Sort: " + a.criteria.SortBy.Label()}
	switch {
	case a.criteria.MinPrice != nil && a.criteria.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("Price: %s-%s", a.formatPrice(*a.criteria.MinPrice), a.formatPrice(*a.criteria.MaxPrice)))
	case a.criteria.MinPrice != nil:
		parts = append(parts, "Price: from "+a.formatPrice(*a.criteria.MinPrice))
	case a.criteria.MaxPrice != nil:
		parts = append(parts, "Price: up to "+a.formatPrice(*a.criteria.MaxPrice))
	}
	if a.criteria.PreferencesEnabled {
		parts = append(parts, "Preferences: on")
	} else {
		parts = append(parts, "Preferences: off")
	}
	parts = append(parts, fmt.Sprintf("Cart: %d", a.cartCount()))
	return subtleStyle.Render(strings.Join(parts, "  |  "))
}

func (a *App) renderDetail(it catalog.Item) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(it.Name) + "\n")
	b.WriteString("Category: " + a.categoryOf(it) + "\n")
	b.WriteString("Price:    " + a.formatPrice(it.Price) + "\n")
	b.WriteString("Rating:   " + a.formatRating(it) + "\n")
	if len(it.Tags) > 0 {
		b.WriteString("Tags:     " + strings.Join(it.Tags, ", ") + "\n")
	}
	if qty := a.cart[it.ID]; qty > 0 {
		b.WriteString(fmt.Sprintf("In cart:  %d\n", qty))
	}
	b.WriteString("\n[a] Add to cart  [esc] Back  [q] Quit")
	out := modalStyle.Render(b.String())
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}

// categoryHint suggests a close label when a typed category matched nothing.
func (a *App) categoryHint() string {
	if a.selection == catalog.AllCategories {
		return ""
	}
	if s, ok := catalog.SuggestCategory(a.snapshot.Labels(), string(a.selection)); ok {
		return fmt.Sprintf("Did you mean %q? Press / to change the category.", s)
	}
	return ""
}

func (a *App) categoryOf(it catalog.Item) string {
	if a.snapshot.Classify == nil {
		return it.CategoryID
	}
	return a.snapshot.Classify(it)
}

func (a *App) formatPrice(v float64) string {
	return fmt.Sprintf("%s%.2f", a.currency, v)
}

func (a *App) formatRating(it catalog.Item) string {
	if it.Rating == nil {
		return "unrated"
	}
	return fmt.Sprintf("★ %.1f", *it.Rating)
}
