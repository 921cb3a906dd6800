package catalog

import "github.com/renexpress/storefront-api/internal/domain/entity"

// DefaultHomeLabel etiqueta de la primera miga.
const DefaultHomeLabel = "Home"

// Crumb entrada de la miga de pan. BackIndex es el índice a pasar a BackTo al hacer clic.
type Crumb struct {
	ID        entity.ID
	Label     string
	BackIndex int
}

// Navigator estado de navegación de una sesión: pila explícita desde la raíz elegida
// hasta la categoría enfocada. Pila vacía = vista de raíces. No es seguro para uso concurrente;
// cada petición construye el suyo.
type Navigator struct {
	tree      *Tree
	path      []entity.ID
	homeLabel string
}

// NewNavigator crea un navegador en la vista raíz y reproduce path con Enter,
// conservando el prefijo válido más largo.
func NewNavigator(tree *Tree, path ...entity.ID) *Navigator {
	n := &Navigator{tree: tree, homeLabel: DefaultHomeLabel}
	for _, id := range path {
		if !n.Enter(id) {
			break
		}
	}
	return n
}

// WithHomeLabel cambia la etiqueta de la primera miga.
func (n *Navigator) WithHomeLabel(label string) *Navigator {
	if label != "" {
		n.homeLabel = label
	}
	return n
}

// Focus devuelve la categoría enfocada; false en la vista raíz.
func (n *Navigator) Focus() (entity.ID, bool) {
	if len(n.path) == 0 {
		return "", false
	}
	return n.path[len(n.path)-1], true
}

// Path copia de la pila actual.
func (n *Navigator) Path() []entity.ID {
	out := make([]entity.ID, len(n.path))
	copy(out, n.path)
	return out
}

// Depth profundidad de la pila.
func (n *Navigator) Depth() int { return len(n.path) }

// Enter apila id si es hijo directo del foco (o raíz si la pila está vacía).
// En cualquier otro caso no cambia el estado y devuelve false.
func (n *Navigator) Enter(id entity.ID) bool {
	focus, _ := n.Focus()
	if !n.tree.IsChildOf(id, focus) {
		return false
	}
	n.path = append(n.path, id)
	return true
}

// BackTo trunca la pila a index+1 elementos. index = -1 (o menor) vuelve a la vista raíz;
// un índice fuera de rango por arriba no cambia nada.
func (n *Navigator) BackTo(index int) {
	if index < 0 {
		n.path = n.path[:0]
		return
	}
	if index+1 < len(n.path) {
		n.path = n.path[:index+1]
	}
}

// Displayed categorías a mostrar: hijos del foco, o raíces en la vista raíz.
func (n *Navigator) Displayed() []entity.Category {
	focus, _ := n.Focus()
	return n.tree.ChildrenOf(focus)
}

// Scope cierre de descendientes del foco; nil en la vista raíz (todas las categorías).
func (n *Navigator) Scope() map[entity.ID]struct{} {
	focus, ok := n.Focus()
	if !ok {
		return nil
	}
	return n.tree.DescendantIDs(focus)
}

// Breadcrumb devuelve [Home, ...categorías de la pila]; la entrada i vuelve con BackTo(i-1).
func (n *Navigator) Breadcrumb() []Crumb {
	crumbs := make([]Crumb, 0, len(n.path)+1)
	crumbs = append(crumbs, Crumb{Label: n.homeLabel, BackIndex: -1})
	for i, id := range n.path {
		label := string(id)
		if c, ok := n.tree.Get(id); ok {
			label = c.Name
		}
		crumbs = append(crumbs, Crumb{ID: id, Label: label, BackIndex: i})
	}
	return crumbs
}
