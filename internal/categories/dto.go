package categories

import "github.com/angelmondragon/mahalaxmi-storefront/pkg/types"

// CategoryInput is the admin create/edit payload.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	ParentID    *int64 `json:"parentId"`
	Active      bool   `json:"active"`
}

// InputFrom pre-fills the edit form from an existing category.
func InputFrom(c types.Category) CategoryInput {
	return CategoryInput{
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentID:    c.ParentID,
		Active:      c.Active,
	}
}

// Node is a category with its direct children, used by the sidebar and the parent picker.
type Node struct {
	Category types.Category
	Depth    int
	Children []*Node
}
