package scoring

// Rosters maps an organizational category to its closed, ordered member
// list. Rank ties keep this order, so roster order is part of the contract.
// Categories and members come from configuration, not from the data.
type Rosters map[string][]string

// Category names used by the default deployment.
const (
	CategoryEnforcement = "执法中队"
	CategorySanitation  = "环卫标段"
	CategoryGreening    = "绿化养护区"
	CategoryParks       = "公园广场"
)

// DefaultRosters is the built-in roster set, used when no roster file is
// configured. A roster file with the same category keys replaces these
// wholesale, not per-member.
var DefaultRosters = Rosters{
	CategoryEnforcement: {
		"一中队", "二中队", "三中队", "四中队", "五中队", "六中队", "机动中队",
	},
	CategorySanitation: {
		"环卫一标段", "环卫二标段", "环卫三标段", "环卫四标段",
	},
	CategoryGreening: {
		"绿化一区", "绿化二区", "绿化三区",
	},
	CategoryParks: {
		"中心公园", "滨河公园", "文化广场", "人民广场",
	},
}

// Units returns the ordered member list for a category, or nil for a
// category outside the roster set.
func (r Rosters) Units(category string) []string {
	return r[category]
}

// Has reports whether a category is part of the roster set.
func (r Rosters) Has(category string) bool {
	_, ok := r[category]
	return ok
}

// Categories lists the roster categories. Order is unspecified; callers that
// need a stable order sort the result.
func (r Rosters) Categories() []string {
	out := make([]string, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	return out
}
