package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// DefaultSearchLimit máximo de resultados del buscador de categorías.
const DefaultSearchLimit = 50

// Match resultado de búsqueda con la ruta completa de la categoría.
type Match struct {
	Category    entity.Category
	FullPath    string
	HasChildren bool
}

// Search busca query como subcadena de la ruta completa, sin distinguir mayúsculas,
// recorriendo el árbol desde las raíces en pre-orden. limit <= 0 usa DefaultSearchLimit.
func (t *Tree) Search(query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	fold := cases.Fold()
	needle := fold.String(query)

	type frame struct {
		idx  int
		path string
	}
	roots := t.children[""]
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{idx: roots[i], path: t.nodes[roots[i]].Name})
	}

	var out []Match
	for len(stack) > 0 && len(out) < limit {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[f.idx]
		if strings.Contains(fold.String(f.path), needle) {
			out = append(out, Match{Category: node, FullPath: f.path, HasChildren: t.HasChildren(node.ID)})
		}
		kids := t.children[node.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{idx: kids[i], path: f.path + PathSeparator + t.nodes[kids[i]].Name})
		}
	}
	return out
}
