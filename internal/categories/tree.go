package categories

import (
	"sort"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

// BuildTree arranges a flat category list into parent/child nodes. Categories whose
// parent is missing from the list are treated as roots. Siblings keep name order.
func BuildTree(list []types.Category) []*Node {
	nodes := make(map[int64]*Node, len(list))
	for _, c := range list {
		nodes[c.ID] = &Node{Category: c}
	}

	var roots []*Node
	for _, c := range list {
		node := nodes[c.ID]
		if c.ParentID != nil && *c.ParentID != c.ID {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	for _, root := range roots {
		setDepth(root, 0, map[int64]bool{})
	}
	return roots
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Category.Name < nodes[j].Category.Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

func setDepth(n *Node, depth int, seen map[int64]bool) {
	if seen[n.Category.ID] {
		return
	}
	seen[n.Category.ID] = true
	n.Depth = depth
	for _, child := range n.Children {
		setDepth(child, depth+1, seen)
	}
}

// Flatten walks the tree depth first, the order the parent picker lists options in.
func Flatten(roots []*Node) []*Node {
	var out []*Node
	var walk func([]*Node)
	seen := map[int64]bool{}
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if seen[n.Category.ID] {
				continue
			}
			seen[n.Category.ID] = true
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// ParentOptions lists the categories that may be chosen as parent of the category
// being edited: every category except itself and its descendants.
func ParentOptions(list []types.Category, editingID int64) []*Node {
	all := Flatten(BuildTree(list))
	if editingID == 0 {
		return all
	}
	excluded := map[int64]bool{editingID: true}
	changed := true
	for changed {
		changed = false
		for _, c := range list {
			if c.ParentID != nil && excluded[*c.ParentID] && !excluded[c.ID] {
				excluded[c.ID] = true
				changed = true
			}
		}
	}
	out := make([]*Node, 0, len(all))
	for _, n := range all {
		if !excluded[n.Category.ID] {
			out = append(out, n)
		}
	}
	return out
}

// NameByID indexes category names, used to show the parent column.
func NameByID(list []types.Category) map[int64]string {
	out := make(map[int64]string, len(list))
	for _, c := range list {
		out[c.ID] = c.Name
	}
	return out
}
