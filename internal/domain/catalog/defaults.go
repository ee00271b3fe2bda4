package catalog

// DefaultPackages is the agency's published line-up.
func DefaultPackages() []Package {
	return []Package{
		{
			ID:           "alp-trek",
			Destination:  "Swiss Alps, Switzerland",
			DurationDays: 7,
			BasePrice:    2999,
			Season:       Winter,
			Highlights:   "Mountain hiking, scenic train, chalet stay.",
		},
		{
			ID:           "bali-bliss",
			Destination:  "Ubud & Seminyak, Indonesia",
			DurationDays: 10,
			BasePrice:    1750,
			Season:       Summer,
			Highlights:   "Yoga retreat, temple visits, private villa.",
		},
		{
			ID:           "sam-hist",
			Destination:  "Tokyo & Kyoto, Japan",
			DurationDays: 14,
			BasePrice:    4500,
			Season:       Spring,
			Highlights:   "Bullet train travel, ancient temples, local cuisine.",
		},
		{
			ID:           "pat-exp",
			Destination:  "Torres del Paine, Chile",
			DurationDays: 5,
			BasePrice:    2200,
			Season:       Autumn,
			Highlights:   "Glacier viewing, guided trekking, all-inclusive camps.",
		},
	}
}

// Default builds the catalog from DefaultPackages.
func Default() *Catalog {
	return MustNew(DefaultPackages())
}
