package schema

// CatalogOwnerTable represents the 'catalog.owner' table
type CatalogOwnerTable struct {
	Table     string
	ID        string
	FirstName string
	LastName  string
	CountryID string
}

// CatalogOwner is the schema definition for catalog.owner
var CatalogOwner = CatalogOwnerTable{
	Table:     "catalog.owner",
	ID:        "id",
	FirstName: "firstname",
	LastName:  "lastname",
	CountryID: "countryid",
}

func (t CatalogOwnerTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.CountryID}
}
