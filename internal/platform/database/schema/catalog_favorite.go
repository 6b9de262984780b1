package schema

// CatalogFavoriteTable represents the 'catalog.favorite' table
type CatalogFavoriteTable struct {
	Table     string
	UserID    string
	VolumeID  string
	CreatedAt string
}

// CatalogFavorite is the schema definition for catalog.favorite
var CatalogFavorite = CatalogFavoriteTable{
	Table:     "catalog.favorite",
	UserID:    "userid",
	VolumeID:  "volumeid",
	CreatedAt: "createdat",
}
