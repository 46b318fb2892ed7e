package catalog

type Category string

const (
	CategoryPlantas     Category = "plantas"
	CategoryMacetas     Category = "macetas"
	CategorySuplementos Category = "suplementos"

	// All is the pseudo category that matches every product.
	All = "all"
)

var Categories = []Category{CategoryPlantas, CategoryMacetas, CategorySuplementos}

func (c Category) Valid() bool {
	switch c {
	case CategoryPlantas, CategoryMacetas, CategorySuplementos:
		return true
	}
	return false
}

type Status string

const (
	StatusDisponible Status = "disponible"
	StatusVendido    Status = "vendido"
	StatusAgotado    Status = "agotado"
)

var Statuses = []Status{StatusDisponible, StatusVendido, StatusAgotado}

func (s Status) Valid() bool {
	switch s {
	case StatusDisponible, StatusVendido, StatusAgotado:
		return true
	}
	return false
}

// Product is a catalog record. Price is display formatted ("$450 MXN").
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Tag         string   `json:"tag,omitempty"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Description string   `json:"description,omitempty"`
}

// NewProduct is a product before the store assigns its id.
type NewProduct struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Tag         string   `json:"tag,omitempty"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Description string   `json:"description,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string   `json:"name,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Tag         *string   `json:"tag,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Description *string   `json:"description,omitempty"`
}

func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}

// FullPatch replaces every mutable field of a product with the ones in np.
func FullPatch(np NewProduct) Patch {
	return Patch{
		Name:        &np.Name,
		Price:       &np.Price,
		Image:       &np.Image,
		Tag:         &np.Tag,
		Category:    &np.Category,
		Status:      &np.Status,
		Description: &np.Description,
	}
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil && p.Tag == nil &&
		p.Category == nil && p.Status == nil && p.Description == nil
}

func (p Patch) apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Tag != nil {
		dst.Tag = *p.Tag
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
}

func (np NewProduct) withID(id int) Product {
	return Product{
		ID:          id,
		Name:        np.Name,
		Price:       np.Price,
		Image:       np.Image,
		Tag:         np.Tag,
		Category:    np.Category,
		Status:      np.Status,
		Description: np.Description,
	}
}
