package catalog

const unsplash = "https://images.unsplash.com/"

func unsplashImage(photo string) string {
	return unsplash + photo + "?auto=format&fit=crop&w=800&q=80"
}

// Seed returns the built-in catalog used when nothing has been persisted yet.
func Seed() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Monstera Deliciosa",
			Price:       "$450 MXN",
			Image:       unsplashImage("photo-1614594975525-e45190c55d0b"),
			Tag:         "Best Seller",
			Category:    CategoryPlantas,
			Status:      StatusDisponible,
			Description: "La Monstera Deliciosa es una planta tropical perfecta para interiores.",
		},
		{
			ID:          2,
			Name:        "Palma Areca",
			Price:       "$800 MXN",
			Image:       unsplashImage("photo-1596005554384-d293674c91d7"),
			Category:    CategoryPlantas,
			Status:      StatusDisponible,
			Description: "Palma elegante que purifica el aire de tu hogar.",
		},
		{
			ID:          3,
			Name:        "Maceta Negra",
			Price:       "$250 MXN",
			Image:       unsplashImage("photo-1485955900006-10f4d324d411"),
			Tag:         "Limited",
			Category:    CategoryMacetas,
			Status:      StatusDisponible,
			Description: "Maceta de cerámica artesanal con acabado mate.",
		},
		{
			ID:          4,
			Name:        "Sustrato Premium",
			Price:       "$120 MXN",
			Image:       unsplashImage("photo-1416879595882-3373a0480b5b"),
			Category:    CategorySuplementos,
			Status:      StatusDisponible,
			Description: "Mezcla especial de tierra para plantas de interior.",
		},
		{
			ID:          5,
			Name:        "Orquídea Real",
			Price:       "$650 MXN",
			Image:       unsplashImage("photo-1566958763363-2394fbd77180"),
			Tag:         "Rare",
			Category:    CategoryPlantas,
			Status:      StatusVendido,
			Description: "Orquídea exótica de floración prolongada.",
		},
		{
			ID:          6,
			Name:        "Cactus San Pedro",
			Price:       "$350 MXN",
			Image:       unsplashImage("photo-1459411552884-841db9b3cc2a"),
			Category:    CategoryPlantas,
			Status:      StatusDisponible,
			Description: "Cactus resistente ideal para principiantes.",
		},
		{
			ID:          7,
			Name:        "Maceta Terracota Grande",
			Price:       "$380 MXN",
			Image:       unsplashImage("photo-1509587584298-0f3b3a3a1797"),
			Category:    CategoryMacetas,
			Status:      StatusDisponible,
			Description: "Maceta clásica de terracota hecha a mano.",
		},
		{
			ID:          8,
			Name:        "Fertilizante Orgánico",
			Price:       "$95 MXN",
			Image:       unsplashImage("photo-1585320806297-9794b3e4eeae"),
			Tag:         "Eco",
			Category:    CategorySuplementos,
			Status:      StatusAgotado,
			Description: "Fertilizante 100% orgánico para todo tipo de plantas.",
		},
	}
}
