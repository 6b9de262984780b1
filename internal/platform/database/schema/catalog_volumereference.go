package schema

// CatalogVolumeReferenceTable represents a volume junction table
// ('catalog.volumeauthor' or 'catalog.volumecategory').
type CatalogVolumeReferenceTable struct {
	Table       string
	VolumeID    string
	ReferenceID string
	Position    string
}

// CatalogVolumeAuthor is the schema definition for catalog.volumeauthor
var CatalogVolumeAuthor = CatalogVolumeReferenceTable{
	Table:       "catalog.volumeauthor",
	VolumeID:    "volumeid",
	ReferenceID: "authorid",
	Position:    "position",
}

// CatalogVolumeCategory is the schema definition for catalog.volumecategory
var CatalogVolumeCategory = CatalogVolumeReferenceTable{
	Table:       "catalog.volumecategory",
	VolumeID:    "volumeid",
	ReferenceID: "categoryid",
	Position:    "position",
}
