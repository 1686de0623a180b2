package seeder

import "skill-match/internal/catalog"

// Defaults seeds the catalog compiled into the binary.
func Defaults() ([]Seeder, error) {
	d, err := catalog.DefaultData()
	if err != nil {
		return nil, err
	}
	return []Seeder{CatalogSeeder{Data: d}}, nil
}
