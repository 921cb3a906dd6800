package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// PathSeparator separador de rutas completas ("Ropa > Camisas").
const PathSeparator = " > "

// Tree índice de solo lectura sobre un snapshot de categorías: arena plana más adyacencia.
// Una categoría cuyo padre no existe en el snapshot se trata como raíz.
type Tree struct {
	nodes    []entity.Category
	index    map[entity.ID]int
	children map[entity.ID][]int // clave "" = raíces
}

// NewTree aplana el payload y construye el índice.
func NewTree(categories []entity.Category) *Tree {
	flat := Flatten(categories)
	t := &Tree{
		nodes:    flat,
		index:    make(map[entity.ID]int, len(flat)),
		children: make(map[entity.ID][]int),
	}
	for i, c := range flat {
		t.index[c.ID] = i
	}
	for i := range t.nodes {
		parent := t.nodes[i].ParentID
		if _, ok := t.index[parent]; !ok || parent == t.nodes[i].ID {
			// padre huérfano: degrada a raíz
			t.nodes[i].ParentID = ""
			parent = ""
		}
		t.children[parent] = append(t.children[parent], i)
	}
	return t
}

// Len cantidad de categorías indexadas.
func (t *Tree) Len() int { return len(t.nodes) }

// Categories devuelve todas las categorías planas en orden de aplanado.
func (t *Tree) Categories() []entity.Category {
	out := make([]entity.Category, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Get busca una categoría por ID.
func (t *Tree) Get(id entity.ID) (entity.Category, bool) {
	i, ok := t.index[id]
	if !ok {
		return entity.Category{}, false
	}
	return t.nodes[i], true
}

// Contains indica si el ID existe en el snapshot.
func (t *Tree) Contains(id entity.ID) bool {
	_, ok := t.index[id]
	return ok
}

// ChildrenOf devuelve los hijos directos; con ID vacío devuelve las raíces.
func (t *Tree) ChildrenOf(id entity.ID) []entity.Category {
	idx := t.children[id]
	out := make([]entity.Category, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.nodes[i])
	}
	return out
}

// Roots atajo de ChildrenOf("").
func (t *Tree) Roots() []entity.Category { return t.ChildrenOf("") }

// HasChildren indica si la categoría tiene al menos un hijo.
func (t *Tree) HasChildren(id entity.ID) bool {
	if id.IsZero() {
		return false
	}
	return len(t.children[id]) > 0
}

// IsChildOf indica si child es hijo directo de parent (parent vacío = raíz).
func (t *Tree) IsChildOf(child, parent entity.ID) bool {
	c, ok := t.Get(child)
	return ok && c.ParentID == parent
}

// DescendantIDs devuelve el cierre de descendientes: el propio ID más todos los hijos transitivos.
// Se recorre en anchura con cola explícita; el ID se incluye aunque no exista en el snapshot.
func (t *Tree) DescendantIDs(id entity.ID) map[entity.ID]struct{} {
	set := map[entity.ID]struct{}{id: {}}
	queue := []entity.ID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, i := range t.children[cur] {
			child := t.nodes[i].ID
			if _, seen := set[child]; seen {
				continue
			}
			set[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return set
}

// CountProducts cuenta los productos cuya categoría está en el cierre de descendientes de id.
func (t *Tree) CountProducts(id entity.ID, products []entity.Product) int {
	scope := t.DescendantIDs(id)
	n := 0
	for _, p := range products {
		if _, ok := scope[p.CategoryID]; ok {
			n++
		}
	}
	return n
}

// Ancestry devuelve la cadena raíz → id siguiendo punteros al padre. Vacío si id no existe.
func (t *Tree) Ancestry(id entity.ID) []entity.Category {
	var chain []entity.Category
	visited := make(map[entity.ID]struct{})
	for cur := id; !cur.IsZero(); {
		if _, loop := visited[cur]; loop {
			break
		}
		visited[cur] = struct{}{}
		c, ok := t.Get(cur)
		if !ok {
			break
		}
		chain = append(chain, c)
		cur = c.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// FullPath nombre completo "Raíz > ... > Categoría".
func (t *Tree) FullPath(id entity.ID) string {
	chain := t.Ancestry(id)
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return strings.Join(names, PathSeparator)
}

// RootByName busca una categoría raíz por nombre exacto (sin distinguir mayúsculas).
func (t *Tree) RootByName(name string) (entity.Category, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, c := range t.Roots() {
		if fold.String(c.Name) == want {
			return c, true
		}
	}
	return entity.Category{}, false
}

// RootOfPath extrae el nombre raíz de una ruta completa y lo resuelve en el árbol.
func (t *Tree) RootOfPath(fullPath string) (entity.Category, bool) {
	root, _, _ := strings.Cut(fullPath, PathSeparator)
	if strings.TrimSpace(root) == "" {
		return entity.Category{}, false
	}
	return t.RootByName(root)
}
