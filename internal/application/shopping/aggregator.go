// Package shopping consolidates ingredient quantities across a week
// plan into a categorized, exportable shopping list.
package shopping

import (
	"math"
	"sort"
	"strings"

	"github.com/mealforge/v1/internal/domain/plan"
)

// Contribution is one audit-trail line: which meal on which day added
// how much of the ingredient, at what scale factor.
type Contribution struct {
	Day         int     `json:"day"`
	Meal        string  `json:"meal"`
	Amount      float64 `json:"amount"`
	ScaleFactor float64 `json:"scale_factor"`
}

// Item is one consolidated shopping list entry.
type Item struct {
	Key           string         `json:"key"`
	Name          string         `json:"name"`
	TotalAmount   float64        `json:"total_amount"`
	Unit          string         `json:"unit"`
	Category      string         `json:"category"`
	EstimatedCost float64        `json:"estimated_cost"`
	Contributions []Contribution `json:"contributions"`
}

// List is the aggregated shopping list for a week plan.
type List struct {
	Items     []Item  `json:"items"`
	TotalCost float64 `json:"total_cost"`
	ItemCount int     `json:"item_count"`
}

// Category names, in the order keyword matching is attempted.
const (
	CategoryProtein    = "Protein"
	CategoryVegetables = "Vegetables"
	CategoryCarbs      = "Carbohydrates"
	CategoryDairy      = "Dairy"
	CategoryFruits     = "Fruits"
	CategoryFatsOils   = "Fats & Oils"
	CategorySpices     = "Spices"
	CategoryOther      = "Other"
)

// categoryOrder fixes the matching precedence: "pepper" hits
// Vegetables before Spices, "butter" hits Dairy before Fats & Oils.
var categoryOrder = []string{
	CategoryProtein, CategoryVegetables, CategoryCarbs, CategoryDairy,
	CategoryFruits, CategoryFatsOils, CategorySpices,
}

var categoryKeywords = map[string][]string{
	CategoryProtein:    {"chicken", "beef", "turkey", "pork", "fish", "salmon", "tuna", "shrimp", "egg", "tofu", "tempeh", "whey"},
	CategoryVegetables: {"broccoli", "spinach", "tomato", "pepper", "onion", "carrot", "zucchini", "lettuce", "cucumber", "kale", "mushroom", "cauliflower", "bean"},
	CategoryCarbs:      {"rice", "pasta", "bread", "oat", "potato", "quinoa", "noodle", "tortilla", "couscous", "wrap"},
	CategoryDairy:      {"milk", "yoghurt", "yogurt", "cheese", "quark", "kwark", "butter", "cream"},
	CategoryFruits:     {"apple", "banana", "berry", "orange", "mango", "grape", "lemon", "pineapple", "kiwi"},
	CategoryFatsOils:   {"oil", "avocado", "nut", "seed", "peanut", "almond", "tahini"},
	CategorySpices:     {"salt", "cumin", "paprika", "cinnamon", "basil", "oregano", "curry", "herbs", "spice"},
}

// Rough per-100-unit cost estimates per category, for the cost column.
var categoryCostPer100 = map[string]float64{
	CategoryProtein:    1.80,
	CategoryVegetables: 0.60,
	CategoryCarbs:      0.40,
	CategoryDairy:      0.50,
	CategoryFruits:     0.70,
	CategoryFatsOils:   1.20,
	CategorySpices:     0.30,
	CategoryOther:      0.50,
}

// Aggregate consolidates every placed meal's ingredients into a single
// list keyed by lowercase-trimmed ingredient name. Quantities on a
// ScaledMeal already carry the meal's scale factor; the factor is
// recorded per contribution for auditability.
func Aggregate(week *plan.WeekPlan) *List {
	byKey := make(map[string]*Item)

	for _, day := range week.Days {
		for _, m := range day.Meals() {
			for _, ing := range m.Ingredients {
				key := strings.ToLower(strings.TrimSpace(ing.Name))
				if key == "" {
					continue
				}

				item, ok := byKey[key]
				if !ok {
					unit := ing.Unit
					if unit == "" {
						unit = "g"
					}
					item = &Item{
						Key:      key,
						Name:     key,
						Unit:     unit,
						Category: categorize(key),
					}
					byKey[key] = item
				}

				item.TotalAmount += ing.Amount
				item.Contributions = append(item.Contributions, Contribution{
					Day:         day.Day,
					Meal:        m.Name,
					Amount:      ing.Amount,
					ScaleFactor: m.ScaleFactor,
				})
			}
		}
	}

	list := &List{Items: make([]Item, 0, len(byKey))}
	for _, item := range byKey {
		item.TotalAmount = math.Round(item.TotalAmount*10) / 10
		item.EstimatedCost = estimateCost(item)
		list.TotalCost += item.EstimatedCost
		list.Items = append(list.Items, *item)
	}
	list.TotalCost = math.Round(list.TotalCost*100) / 100
	list.ItemCount = len(list.Items)

	// Deterministic alphabetical ordering for every export format.
	sort.Slice(list.Items, func(i, j int) bool {
		return list.Items[i].Name < list.Items[j].Name
	})

	return list
}

// categorize keyword-matches an ingredient key to a category.
func categorize(key string) string {
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(key, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}

func estimateCost(item *Item) float64 {
	rate := categoryCostPer100[item.Category]
	cost := item.TotalAmount / 100 * rate
	if item.Unit == "stuks" || item.Unit == "portie" {
		cost = item.TotalAmount * rate
	}
	return math.Round(cost*100) / 100
}
