// Package catalog holds the fixed set of Schedule C expense categories and
// the built-in merchant lookup table. Both are constructed once at package
// init and never mutated afterwards, so they are safe for unlimited
// concurrent reads with no locking.
package catalog

import (
	"strings"

	"github.com/expenserule/expenserule/internal/model"
)

// scheduleC is the closed set of 19 valid expense categories. Every category
// name used anywhere in the system must appear here; the only category the
// system may substitute on its own is the fallback.
var scheduleC = []model.Category{
	{Name: "Advertising", ScheduleCLine: "8"},
	{Name: "Car and Truck Expenses", ScheduleCLine: "9"},
	{Name: "Commissions and Fees", ScheduleCLine: "10"},
	{Name: "Contract Labor", ScheduleCLine: "11"},
	{Name: "Depreciation", ScheduleCLine: "13"},
	{Name: "Employee Benefit Programs", ScheduleCLine: "14"},
	{Name: "Insurance", ScheduleCLine: "15"},
	{Name: "Interest", ScheduleCLine: "16b"},
	{Name: "Legal and Professional Services", ScheduleCLine: "17"},
	{Name: "Office Expense", ScheduleCLine: "18"},
	{Name: "Rent or Lease", ScheduleCLine: "20b"},
	{Name: "Repairs and Maintenance", ScheduleCLine: "21"},
	{Name: "Supplies", ScheduleCLine: "22"},
	{Name: "Taxes and Licenses", ScheduleCLine: "23"},
	{Name: "Travel", ScheduleCLine: "24a"},
	{Name: "Meals", ScheduleCLine: "24b"},
	{Name: "Utilities", ScheduleCLine: "25"},
	{Name: "Wages", ScheduleCLine: "26"},
	{Name: "Other Expenses", ScheduleCLine: "27a"},
}

// fallbackName is substituted when the remote classifier's answer cannot be
// trusted. It is itself a member of the catalog.
const fallbackName = "Other Expenses"

// Catalog is an immutable lookup structure over the Schedule C categories
// and the built-in merchant table.
type Catalog struct {
	byName    map[string]model.Category
	exact     map[string]string
	names     []string
	merchants []MerchantRule
}

var defaultCatalog = build(scheduleC, merchantLookup)

// Default returns the shared catalog instance.
func Default() *Catalog {
	return defaultCatalog
}

func build(categories []model.Category, merchants []MerchantRule) *Catalog {
	c := &Catalog{
		byName:    make(map[string]model.Category, len(categories)),
		exact:     make(map[string]string, len(merchants)),
		names:     make([]string, 0, len(categories)),
		merchants: merchants,
	}
	for _, cat := range categories {
		c.byName[cat.Name] = cat
		c.names = append(c.names, cat.Name)
	}
	for _, rule := range merchants {
		if _, ok := c.byName[rule.Category]; !ok {
			panic("catalog: merchant rule " + rule.Substring + " references unknown category " + rule.Category)
		}
		if _, dup := c.exact[rule.Substring]; !dup {
			c.exact[rule.Substring] = rule.Category
		}
	}
	if _, ok := c.byName[fallbackName]; !ok {
		panic("catalog: fallback category missing")
	}
	return c
}

// Names returns the category names in declaration order. The returned slice
// is a copy.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Categories returns all categories in declaration order. The returned slice
// is a copy.
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// Lookup returns the category with the given name.
func (c *Catalog) Lookup(name string) (model.Category, bool) {
	cat, ok := c.byName[name]
	return cat, ok
}

// IsValid reports whether name is a member of the closed category set.
func (c *Catalog) IsValid(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Fallback returns the category substituted when a remote suggestion cannot
// be validated.
func (c *Catalog) Fallback() model.Category {
	return c.byName[fallbackName]
}

// MatchMerchant looks up a normalized merchant name in the built-in table.
// It first tries an exact match, then scans the rules in declaration order
// and returns the category of the first rule whose substring occurs in the
// merchant name. The declaration-order scan is a deliberate tie-break: when
// several substrings match, the earliest-declared rule wins.
func (c *Catalog) MatchMerchant(normalized string) (string, bool) {
	if normalized == "" {
		return "", false
	}
	if category, ok := c.exact[normalized]; ok {
		return category, true
	}
	for _, rule := range c.merchants {
		if strings.Contains(normalized, rule.Substring) {
			return rule.Category, true
		}
	}
	return "", false
}

// NormalizeMerchant converts a raw merchant string into the canonical key
// used by the correction store and the lookup table.
func NormalizeMerchant(merchant string) string {
	return strings.ToLower(strings.TrimSpace(merchant))
}
