package meal

import "github.com/mealforge/v1/internal/domain/profile"

// Snapshot is the serializable form of a Meal, used by the read-through
// catalog cache. Snapshots hold already-normalized data; restoring one
// performs no parsing.
type Snapshot struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Calories       float64      `json:"calories"`
	Protein        float64      `json:"protein"`
	Carbs          float64      `json:"carbs"`
	Fat            float64      `json:"fat"`
	Fiber          float64      `json:"fiber"`
	Labels         []string     `json:"labels,omitempty"`
	Timing         []string     `json:"timing,omitempty"`
	Allergens      []string     `json:"allergens,omitempty"`
	Ingredients    []Ingredient `json:"ingredients,omitempty"`
	CostTier       string       `json:"cost_tier"`
	Difficulty     string       `json:"difficulty"`
	DefaultPortion string       `json:"default_portion"`
	Derived        bool         `json:"derived,omitempty"`
	VariationOf    string       `json:"variation_of,omitempty"`
}

// Snapshot captures the meal's normalized state.
func (m *Meal) Snapshot() Snapshot {
	return Snapshot{
		ID:             m.id,
		Name:           m.name,
		Calories:       m.calories,
		Protein:        m.protein,
		Carbs:          m.carbs,
		Fat:            m.fat,
		Fiber:          m.fiber,
		Labels:         m.labels,
		Timing:         m.timing,
		Allergens:      m.allergens,
		Ingredients:    m.ingredients,
		CostTier:       string(m.costTier),
		Difficulty:     string(m.difficulty),
		DefaultPortion: m.defaultPortion,
		Derived:        m.derived,
		VariationOf:    m.variationOf,
	}
}

// FromSnapshot restores a Meal from its serialized form.
func FromSnapshot(s Snapshot) *Meal {
	return &Meal{
		id:             s.ID,
		name:           s.Name,
		calories:       s.Calories,
		protein:        s.Protein,
		carbs:          s.Carbs,
		fat:            s.Fat,
		fiber:          s.Fiber,
		labels:         s.Labels,
		timing:         s.Timing,
		allergens:      s.Allergens,
		ingredients:    s.Ingredients,
		costTier:       profile.BudgetTier(s.CostTier),
		difficulty:     Difficulty(s.Difficulty),
		defaultPortion: s.DefaultPortion,
		derived:        s.Derived,
		variationOf:    s.VariationOf,
	}
}
