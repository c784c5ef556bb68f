package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
)

const entityCategory = "Category"

// CategoryUseCase casos de uso para el árbol de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría bajo Parent (o como raíz).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	if in.Parent.Valid {
		if err := uc.mustExist(ctx, in.Parent.Value); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	c := &entity.Category{
		ParentID:    in.Parent.Ptr(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, writeError(err, entityCategory)
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound(entityCategory, id)
	}
	return toCategoryResponse(c), nil
}

// Update renombra o mueve una categoría. Moverla debajo de sí misma o de un
// descendiente se rechaza.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound(entityCategory, id)
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Parent.Set {
		if in.Parent.Valid {
			if err := uc.checkMove(ctx, id, in.Parent.Value); err != nil {
				return nil, err
			}
		}
		c.ParentID = in.Parent.Ptr()
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, writeError(err, entityCategory)
	}
	return toCategoryResponse(c), nil
}

// checkMove sube desde el nuevo padre hasta la raíz; si encuentra id hay ciclo.
func (uc *CategoryUseCase) checkMove(ctx context.Context, id, parentID int64) error {
	seen := map[int64]struct{}{}
	for cur := &parentID; cur != nil; {
		if *cur == id {
			return domain.NewInvalidInput("A category cannot be moved below itself")
		}
		if _, loop := seen[*cur]; loop {
			return nil
		}
		seen[*cur] = struct{}{}
		node, err := uc.repo.GetByID(ctx, *cur)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.NewNotFound(entityCategory, *cur)
		}
		cur = node.ParentID
	}
	return nil
}

func (uc *CategoryUseCase) mustExist(ctx context.Context, id int64) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewNotFound(entityCategory, id)
	}
	return nil
}

// List lista categorías con paginación (plano).
func (uc *CategoryUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	limit, offset, err := pageOf(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.ListResponse[dto.CategoryResponse]{Data: items, TotalCount: total}, nil
}

// Tree devuelve el bosque de categorías, hijos ordenados por nombre.
func (uc *CategoryUseCase) Tree(ctx context.Context) ([]dto.CategoryNode, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	children := make(map[int64][]*entity.Category)
	var roots []*entity.Category
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(list []*entity.Category, depth int) []dto.CategoryNode
	build = func(list []*entity.Category, depth int) []dto.CategoryNode {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		nodes := make([]dto.CategoryNode, 0, len(list))
		for _, c := range list {
			node := dto.CategoryNode{ID: c.ID, Name: c.Name, Description: c.Description, Children: []dto.CategoryNode{}}
			// len(all) acota la profundidad si los datos tuvieran un ciclo.
			if depth < len(all) {
				node.Children = build(children[c.ID], depth+1)
			}
			nodes = append(nodes, node)
		}
		return nodes
	}
	return build(roots, 0), nil
}

// Delete elimina una categoría sin subcategorías ni piezas.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.mustExist(ctx, id); err != nil {
		return err
	}
	kids, err := uc.repo.ListByParent(ctx, &id)
	if err != nil {
		return err
	}
	if len(kids) > 0 {
		return domain.NewInUse(entityCategory)
	}
	return writeError(uc.repo.Delete(ctx, id), entityCategory)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Parent:      c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
