package schema

// CatalogReferenceTable represents a name-keyed reference table
// ('catalog.author' or 'catalog.category'). Both share one shape.
type CatalogReferenceTable struct {
	Table     string
	ID        string
	Name      string
	NameKey   string
	CreatedAt string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogReferenceTable{
	Table:     "catalog.author",
	ID:        "id",
	Name:      "name",
	NameKey:   "namekey",
	CreatedAt: "createdat",
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogReferenceTable{
	Table:     "catalog.category",
	ID:        "id",
	Name:      "name",
	NameKey:   "namekey",
	CreatedAt: "createdat",
}

func (t CatalogReferenceTable) Columns() []string {
	return []string{t.ID, t.Name, t.NameKey, t.CreatedAt}
}
