package catalog

const RootCategory = "All Products"

const (
	groupShoes       = "Shoes"
	groupClothing    = "Clothing"
	groupAccessories = "Accessories"
	groupFeatured    = "Featured"
	groupShopBySport = "Shop By Sport"
)

var sports = map[string]bool{
	"Running":    true,
	"Football":   true,
	"Tennis":     true,
	"Basketball": true,
}

// sportItems are the fixed sub-groups offered once a sport is active. A click
// on one resolves to the combined "{sport} {item}" category.
var sportItems = map[string]bool{
	groupShoes:       true,
	groupClothing:    true,
	groupAccessories: true,
}

var staticGroups = map[string][]string{
	RootCategory:     {groupShoes, groupClothing, groupAccessories, groupFeatured, groupShopBySport},
	groupShoes:       {"All Shoes", "Running Shoes", "Football Shoes", "Tennis Shoes", "Basketball Shoes"},
	groupClothing:    {"All Clothing", "Tops", "Shorts", "Hoodies", "Jackets"},
	groupAccessories: {"Bags", "Socks", "Hats", "Balls"},
	groupFeatured:    {"New Releases", "Best Sellers", "Sale"},
	groupShopBySport: {"Running", "Football", "Tennis", "Basketball"},
}

// Aliases shown in place of the group itself inside its own sub-list.
var groupAliases = map[string]string{
	"All Shoes":    groupShoes,
	"All Clothing": groupClothing,
}

// childToParentMap links every static item to the group it appears under,
// and every group to the root. Used to rebuild breadcrumbs after a
// non-linear jump.
var childToParentMap = buildChildToParent()

func buildChildToParent() map[string]string {
	m := make(map[string]string)
	for group, items := range staticGroups {
		if group != RootCategory {
			m[group] = RootCategory
		}
		for _, item := range items {
			if _, exists := m[item]; !exists {
				m[item] = group
			}
		}
	}
	return m
}

func canonical(item string) string {
	if group, ok := groupAliases[item]; ok {
		return group
	}
	return item
}

type State struct {
	SelectedCategory string   `json:"selectedCategory"`
	SubCategories    []string `json:"subCategories"`
	ActiveSport      string   `json:"activeSport,omitempty"`
}

type HistoryItem struct {
	Title  string `json:"title"`
	State  State  `json:"state"`
	IsLeaf bool   `json:"isLeaf"`
}

// Navigator tracks the browse position and breadcrumb history over a
// category tree. It is pure state, safe to rebuild per request.
type Navigator struct {
	tree    *Tree
	state   State
	history []HistoryItem
}

func NewNavigator(tree *Tree) *Navigator {
	initial := State{
		SelectedCategory: RootCategory,
		SubCategories:    staticGroups[RootCategory],
	}
	return &Navigator{
		tree:    tree,
		state:   initial,
		history: []HistoryItem{{Title: RootCategory, State: initial}},
	}
}

func (n *Navigator) State() State          { return n.state }
func (n *Navigator) History() []HistoryItem { return n.history }

// nextState resolves a click into the following state without touching
// history. The second return reports whether the target is a leaf.
func (n *Navigator) nextState(item string) (State, bool) {
	if sports[item] {
		return State{
			SelectedCategory: item,
			SubCategories:    []string{groupShoes, groupClothing, groupAccessories},
			ActiveSport:      item,
		}, false
	}

	if n.state.ActiveSport != "" && sportItems[item] {
		resolved := n.state.ActiveSport + " " + item
		sub := n.tree.Children(n.state.ActiveSport)
		return State{
			SelectedCategory: resolved,
			SubCategories:    sub,
			ActiveSport:      n.state.ActiveSport,
		}, len(sub) == 0
	}

	if sub, ok := staticGroups[canonical(item)]; ok {
		return State{SelectedCategory: canonical(item), SubCategories: sub}, false
	}

	if group, ok := childToParentMap[item]; ok {
		return State{SelectedCategory: item, SubCategories: staticGroups[group]}, false
	}

	children := n.tree.Children(item)
	if len(children) == 0 {
		// Leaf: keep the previous sub-list so siblings stay navigable.
		return State{
			SelectedCategory: item,
			SubCategories:    n.state.SubCategories,
			ActiveSport:      n.state.ActiveSport,
		}, true
	}
	return State{SelectedCategory: item, SubCategories: children}, false
}

// resolvedParent is the parent used for the push-vs-rebuild decision: the
// static map wins, then the fetched tree.
func (n *Navigator) resolvedParent(item string) (string, bool) {
	if p, ok := childToParentMap[canonical(item)]; ok {
		return p, true
	}
	return n.tree.Parent(item)
}

// Click advances the navigator and maintains the breadcrumb stack: replace
// the top when hopping between leaf siblings, push when descending one
// level, otherwise rebuild the whole trail from the root.
func (n *Navigator) Click(item string) State {
	next, isLeaf := n.nextState(item)
	entry := HistoryItem{Title: item, State: next, IsLeaf: isLeaf}

	top := n.history[len(n.history)-1]
	parent, hasParent := n.resolvedParent(item)

	switch {
	case top.IsLeaf && contains(n.state.SubCategories, item):
		n.history[len(n.history)-1] = entry
	case n.state.ActiveSport != "" && sportItems[item]:
		// Descending into a sport's sub-group is always one level down.
		n.history = append(n.history, entry)
	case hasParent && parent == n.state.SelectedCategory:
		n.history = append(n.history, entry)
	default:
		n.rebuildHistory(item)
		// Recompute against the replayed ancestor state.
		next, isLeaf = n.nextState(item)
		entry = HistoryItem{Title: item, State: next, IsLeaf: isLeaf}
		n.history = append(n.history, entry)
	}

	n.state = next
	return next
}

// rebuildHistory reconstructs the trail [root, ancestors...] for item by
// walking the parent chain, replaying each ancestor through nextState so
// every entry carries a consistent state.
func (n *Navigator) rebuildHistory(item string) {
	var chain []string
	cur := canonical(item)
	seen := map[string]bool{cur: true}
	for {
		p, ok := childToParentMap[cur]
		if !ok {
			p, ok = n.tree.Parent(cur)
		}
		if !ok || seen[p] {
			break
		}
		chain = append([]string{p}, chain...)
		seen[p] = true
		cur = p
	}

	if len(chain) == 0 || chain[0] != RootCategory {
		chain = append([]string{RootCategory}, chain...)
	}

	n.state = State{SelectedCategory: RootCategory, SubCategories: staticGroups[RootCategory]}
	n.history = n.history[:0]
	for _, ancestor := range chain {
		state, leaf := n.nextState(ancestor)
		n.history = append(n.history, HistoryItem{Title: ancestor, State: state, IsLeaf: leaf})
		n.state = state
	}
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
