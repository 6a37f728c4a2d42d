package schema

// PokemonCategoryTable represents the 'catalog.pokemoncategory' table
type PokemonCategoryTable struct {
	Table      string
	PokemonID  string
	CategoryID string
}

// PokemonCategory is the schema definition for catalog.pokemoncategory
var PokemonCategory = PokemonCategoryTable{
	Table:      "catalog.pokemoncategory",
	PokemonID:  "pokemonid",
	CategoryID: "categoryid",
}
