package schema

// PokemonOwnerTable represents the 'catalog.pokemonowner' table
type PokemonOwnerTable struct {
	Table     string
	PokemonID string
	OwnerID   string
}

// PokemonOwner is the schema definition for catalog.pokemonowner
var PokemonOwner = PokemonOwnerTable{
	Table:     "catalog.pokemonowner",
	PokemonID: "pokemonid",
	OwnerID:   "ownerid",
}
