// Package catalog modela el árbol de categorías del marketplace: aplanado de payloads
// anidados o planos, adyacencia padre/hijo, cierre de descendientes y navegación por migas.
package catalog

import "github.com/renexpress/storefront-api/internal/domain/entity"

type flattenFrame struct {
	node   entity.Category
	parent entity.ID
}

// Flatten recorre categorías anidadas, planas o mixtas y devuelve un registro plano por categoría
// en pre-orden. El padre se toma del propio nodo si ya lo trae; si no, del nodo que lo contiene.
// Un ID repetido se descarta (gana la primera aparición), lo que también corta ciclos en Children.
func Flatten(categories []entity.Category) []entity.Category {
	out := make([]entity.Category, 0, len(categories))
	seen := make(map[entity.ID]struct{}, len(categories))

	stack := make([]flattenFrame, 0, len(categories))
	pushReversed := func(nodes []entity.Category, parent entity.ID) {
		for i := len(nodes) - 1; i >= 0; i-- {
			stack = append(stack, flattenFrame{node: nodes[i], parent: parent})
		}
	}
	pushReversed(categories, "")

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, dup := seen[f.node.ID]; dup {
			continue
		}
		seen[f.node.ID] = struct{}{}

		flat := f.node
		flat.Children = nil
		if flat.ParentID.IsZero() {
			flat.ParentID = f.parent
		}
		out = append(out, flat)

		if len(f.node.Children) > 0 {
			pushReversed(f.node.Children, f.node.ID)
		}
	}
	return out
}
