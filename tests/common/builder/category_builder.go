//go:build unit || e2e

package builder

import (
	"time"

	"equipment-reservation/internal/domain/category"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type CategoryBuilder struct {
	ID          uuid.UUID
	Name        string
	Description string
}

func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		ID:          uuid.New(),
		Name:        "Infusion",
		Description: "Infusion pumps and stands",
	}
}

func (b *CategoryBuilder) With(mutate func(*CategoryBuilder)) *CategoryBuilder {
	mutate(b)
	return b
}

func (b *CategoryBuilder) BuildDomain() *category.Category {
	return category.ReconstructCategory(b.ID, b.Name, b.Description, time.Now())
}

func (b *CategoryBuilder) BuildView() *queries.CategoryView {
	return &queries.CategoryView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   time.Now(),
	}
}

func (b *CategoryBuilder) BuildCreateDTO() reqdto.CreateCategoryRequest {
	return reqdto.CreateCategoryRequest{
		Name:        b.Name,
		Description: b.Description,
	}
}
