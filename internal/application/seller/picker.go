package seller

import (
	"context"
	"strings"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// Categories selector de categoría: con query busca en las rutas completas (máximo 50);
// sin query devuelve los hijos de parent, o las raíces si parent está vacío.
func (s *Service) Categories(ctx context.Context, parent entity.ID, query string) (*dto.CategoryPickerResponse, error) {
	view, err := s.catalog.View(ctx)
	if err != nil {
		return nil, err
	}
	tree := view.Tree

	if strings.TrimSpace(query) != "" {
		matches := tree.Search(query, catalog.DefaultSearchLimit)
		out := &dto.CategoryPickerResponse{Path: []dto.CrumbDTO{}, Items: make([]dto.CategoryOptionDTO, 0, len(matches))}
		for _, m := range matches {
			out.Items = append(out.Items, dto.CategoryOptionDTO{
				ID:          m.Category.ID,
				Name:        m.Category.Name,
				FullPath:    m.FullPath,
				HasChildren: m.HasChildren,
			})
		}
		return out, nil
	}

	if !parent.IsZero() && !tree.Contains(parent) {
		return nil, domain.ErrNotFound
	}
	children := tree.ChildrenOf(parent)
	out := &dto.CategoryPickerResponse{
		Parent: parent,
		Path:   make([]dto.CrumbDTO, 0),
		Items:  make([]dto.CategoryOptionDTO, 0, len(children)),
	}
	for i, c := range tree.Ancestry(parent) {
		out.Path = append(out.Path, dto.CrumbDTO{ID: c.ID, Label: c.Name, Back: i})
	}
	for _, c := range children {
		out.Items = append(out.Items, dto.CategoryOptionDTO{
			ID:          c.ID,
			Name:        c.Name,
			FullPath:    tree.FullPath(c.ID),
			HasChildren: tree.HasChildren(c.ID),
		})
	}
	return out, nil
}
