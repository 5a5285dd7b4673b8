// internal/listctl/controller.go

// Package listctl is the shared filtering, pagination, and CRUD
// orchestration behind the tabular pages. Search and tab filters compose as
// a logical AND; changing either resets pagination to the first page. The
// controller holds plain state only; debouncing keystrokes and disabling
// controls while a mutation is in flight belong to the view layer.
package listctl

import "strings"

// TabAll passes every item regardless of status.
const TabAll = "All"

// Config wires a Controller to its item type. SearchText is required;
// Status may be nil for pages without status tabs.
type Config[T any] struct {
	PageSize     int
	SearchText   func(T) string
	Status       func(T) string
	EmptyMessage string
}

// Controller owns the list state for one page: raw items, search term,
// active tab, and current page.
type Controller[T any] struct {
	cfg   Config[T]
	items []T

	searchTerm string
	activeTab  string
	page       int
}

func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = 5
	}
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No results found"
	}
	return &Controller[T]{cfg: cfg, activeTab: TabAll, page: 1}
}

// SetItems replaces the raw collection, resetting to the first page.
func (c *Controller[T]) SetItems(items []T) {
	c.items = append([]T(nil), items...)
	c.page = 1
}

// Items returns a copy of the raw, unfiltered collection.
func (c *Controller[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// SetSearch updates the search term. Any change resets pagination; stale
// pagination across a changed filter is a defect.
func (c *Controller[T]) SetSearch(term string) {
	if term == c.searchTerm {
		return
	}
	c.searchTerm = term
	c.page = 1
}

func (c *Controller[T]) Search() string {
	return c.searchTerm
}

// SetTab activates a status tab. Tabs other than All must match the item's
// status exactly. Changing tab resets pagination.
func (c *Controller[T]) SetTab(tab string) {
	if tab == "" {
		tab = TabAll
	}
	if tab == c.activeTab {
		return
	}
	c.activeTab = tab
	c.page = 1
}

func (c *Controller[T]) ActiveTab() string {
	return c.activeTab
}

// Filtered applies search then tab. Filtering is idempotent: the same term
// and tab always produce the same result for the same items.
func (c *Controller[T]) Filtered() []T {
	term := strings.ToLower(strings.TrimSpace(c.searchTerm))

	var filtered []T
	for _, item := range c.items {
		if term != "" && !strings.Contains(strings.ToLower(c.cfg.SearchText(item)), term) {
			continue
		}
		if c.cfg.Status != nil && c.activeTab != TabAll && c.cfg.Status(item) != c.activeTab {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// EmptyState reports the explicit empty-state message when the filtered set
// has nothing to show.
func (c *Controller[T]) EmptyState() (string, bool) {
	if len(c.Filtered()) == 0 {
		return c.cfg.EmptyMessage, true
	}
	return "", false
}

// Page returns the current 1-based page number.
func (c *Controller[T]) Page() int {
	return c.page
}

// PageCount returns the number of pages in the filtered set, at least 1.
func (c *Controller[T]) PageCount() int {
	filtered := len(c.Filtered())
	if filtered == 0 {
		return 1
	}
	return (filtered + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// VisibleItems returns the current page of the filtered set.
func (c *Controller[T]) VisibleItems() []T {
	filtered := c.Filtered()
	start := (c.page - 1) * c.cfg.PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + c.cfg.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// NextPage advances one page. At the last page it is a no-op and reports
// false, matching the disabled control.
func (c *Controller[T]) NextPage() bool {
	if c.page >= c.PageCount() {
		return false
	}
	c.page++
	return true
}

// PrevPage goes back one page, a no-op at the first page.
func (c *Controller[T]) PrevPage() bool {
	if c.page <= 1 {
		return false
	}
	c.page--
	return true
}

// append adds a confirmed record to the raw collection.
func (c *Controller[T]) append(item T) {
	c.items = append(c.items, item)
}

// replace swaps the first item matching the predicate, reporting whether a
// match was found.
func (c *Controller[T]) replace(match func(T) bool, item T) bool {
	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			return true
		}
	}
	return false
}

// remove deletes the first item matching the predicate and clamps the page
// so the controller never points past the end.
func (c *Controller[T]) remove(match func(T) bool) bool {
	for i := range c.items {
		if match(c.items[i]) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if c.page > c.PageCount() {
				c.page = c.PageCount()
			}
			return true
		}
	}
	return false
}
