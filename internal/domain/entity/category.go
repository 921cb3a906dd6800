package entity

// Category nodo del catálogo. El backend puede entregarlo anidado (Children) o plano (ParentID);
// tras el aplanado Children queda vacío y ParentID resuelto.
type Category struct {
	ID       ID         `json:"id"`
	Name     string     `json:"name"`
	ParentID ID         `json:"parent_id"` // vacío si es raíz
	Slug     string     `json:"slug,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// IsRoot indica si la categoría no tiene padre.
func (c Category) IsRoot() bool { return c.ParentID.IsZero() }
