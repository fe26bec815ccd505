package request

import (
	"time"

	"equipment-reservation/internal/domain/category"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

func (r CreateCategoryRequest) ToDomain(now time.Time) (*category.Category, error) {
	return category.NewCategory(r.Name, r.Description, now)
}
