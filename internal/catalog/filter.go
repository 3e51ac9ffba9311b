package catalog

// PriceBand is an inclusive price range. Max 0 means unbounded above.
type PriceBand struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (b PriceBand) contains(price int64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price <= b.Max
}

// Filters narrow a category view. Empty slices mean no constraint for that
// dimension; populated dimensions are ANDed together.
type Filters struct {
	Genders    []string    `json:"genders"`
	Brands     []string    `json:"brands"`
	PriceBands []PriceBand `json:"priceBands"`
}

func (f Filters) match(p Product) bool {
	if len(f.Genders) > 0 && !contains(f.Genders, p.Gender) {
		return false
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.PriceBands) > 0 {
		price := p.EffectivePrice()
		ok := false
		for _, b := range f.PriceBands {
			if b.contains(price) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// FilterProducts selects the products visible under selected, then applies
// checkbox filters. The Shoes and Clothing aggregates use the recursive
// closure sets; other categories match directly or via the ancestor walk.
func FilterProducts(products []Product, selected string, tree *Tree, filters Filters) []Product {
	var inView func(p Product) bool

	switch selected {
	case RootCategory, "":
		inView = func(Product) bool { return true }
	case groupShoes, groupClothing:
		set := tree.AggregateSet(selected)
		inView = func(p Product) bool { return set[p.Category] }
	default:
		inView = func(p Product) bool {
			if p.Category == selected {
				return true
			}
			for _, ancestor := range tree.Ancestors(p.Category) {
				if ancestor == selected {
					return true
				}
			}
			return false
		}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if inView(p) && filters.match(p) {
			out = append(out, p)
		}
	}
	return out
}
