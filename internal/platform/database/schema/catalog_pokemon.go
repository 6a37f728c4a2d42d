package schema

// CatalogPokemonTable represents the 'catalog.pokemon' table
type CatalogPokemonTable struct {
	Table     string
	ID        string
	Name      string
	BirthDate string
}

// CatalogPokemon is the schema definition for catalog.pokemon
var CatalogPokemon = CatalogPokemonTable{
	Table:     "catalog.pokemon",
	ID:        "id",
	Name:      "name",
	BirthDate: "birthdate",
}

func (t CatalogPokemonTable) Columns() []string {
	return []string{t.ID, t.Name, t.BirthDate}
}
