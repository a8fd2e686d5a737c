package models

// DefaultBreedSlugs is the fixed set of breeds the site always has a page
// for. Lookups for these IDs fall back to the built-in content below when no
// admin override has been saved.
var DefaultBreedSlugs = []string{"chinchilla", "devon", "munchkin"}

// DefaultBreedPages returns the built-in content for every known breed.
func DefaultBreedPages() map[string]BreedPage {
	return map[string]BreedPage{
		"chinchilla": {
			ID:              "chinchilla",
			Title:           "Golden Chinchilla",
			HeroDescription: "Aristocratic British cats with a luxurious golden coat and a regal temperament",
			Description: "Golden chinchillas are among the most beautiful and rare cat breeds. " +
				"Each hair carries a golden tint with darkened tips, giving the coat a shimmering glow. " +
				"These aristocratic cats are calm and even-tempered and settle easily into family life.",
			Origin:          "United Kingdom",
			Weight:          "4-6 kg",
			Lifespan:        "12-15 years",
			Temperament:     "Calm, gentle",
			Characteristics: []string{"Curious", "Friendly", "Elegant", "Calm", "Independent"},
			MainImage:       "img/golden-chinchilla.jpg",
		},
		"devon": {
			ID:              "devon",
			Title:           "Devon Rex",
			HeroDescription: "Energetic, affectionate cats with an otherworldly look and a dog-like personality",
			Description: "The Devon Rex appeared in the United Kingdom in the 1960s. The breed is known " +
				"for its unique wavy coat, oversized ears and expressive eyes. Devons are highly social, " +
				"devoted cats that love being the center of attention.",
			Origin:          "United Kingdom",
			Weight:          "3-4.5 kg",
			Lifespan:        "9-15 years",
			Temperament:     "Active, playful",
			Characteristics: []string{"Affectionate", "Playful", "Smart", "Sociable", "Energetic"},
			MainImage:       "img/devon-rex.jpg",
		},
		"munchkin": {
			ID:              "munchkin",
			Title:           "Munchkin",
			HeroDescription: "Charming short-legged cats with a one-of-a-kind look and a friendly disposition",
			Description: "Munchkins are a unique short-legged breed that arose from a natural genetic " +
				"mutation. Despite the short legs they are agile and active, and they are famous for " +
				"their friendly, outgoing character.",
			Origin:          "United States",
			Weight:          "3-4 kg",
			Lifespan:        "12-15 years",
			Temperament:     "Friendly, curious",
			Characteristics: []string{"Majestic", "Smart", "Curious", "Friendly", "Sociable"},
			MainImage:       "img/munchkin.jpg",
		},
	}
}

// DefaultSettings returns the site configuration used until an admin saves
// their own values.
func DefaultSettings() Settings {
	return Settings{
		"site_title":       "Whisker & Co",
		"site_tagline":     "A boutique cattery",
		"site_description": "",
		"contact_phone":    "",
		"contact_email":    "",
		"contact_address":  "",
		"working_hours":    "Daily 10:00 - 20:00",
		"meta_title":       "",
		"meta_description": "",
		"meta_keywords":    "",
	}
}
