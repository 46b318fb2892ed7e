package catalog

// Page is the header copy shown above a category listing.
type Page struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

var pages = []Page{
	{
		Category: string(CategoryPlantas),
		Title:    "Plantas",
		Subtitle: "Transforma tu espacio con nuestra selección de plantas tropicales y exóticas",
	},
	{
		Category: string(CategoryMacetas),
		Title:    "Macetas",
		Subtitle: "Macetas artesanales que complementan la belleza de tus plantas",
	},
	{
		Category: string(CategorySuplementos),
		Title:    "Suplementos",
		Subtitle: "Todo lo que necesitas para el cuidado perfecto de tus plantas",
	},
	{
		Category: All,
		Title:    "Catálogo",
		Subtitle: "Explora toda nuestra colección de plantas, macetas y suplementos",
	},
}

func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

func PageFor(category string) (Page, bool) {
	for _, p := range pages {
		if p.Category == category {
			return p, true
		}
	}
	return Page{}, false
}

var statusLabels = map[Status]string{
	StatusDisponible: "Disponible",
	StatusVendido:    "Vendido",
	StatusAgotado:    "Agotado",
}

// Label is the human readable badge text for s.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Purchasable reports whether the storefront offers the product for sale.
func (p Product) Purchasable() bool {
	return p.Status == StatusDisponible
}
