package schema

// CatalogVolumeTable represents the 'catalog.volume' table
type CatalogVolumeTable struct {
	Table         string
	ID            string
	Title         string
	ISBN10        string
	ISBN13        string
	PublishedDate string
	Language      string
	Units         string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogVolume is the schema definition for catalog.volume
var CatalogVolume = CatalogVolumeTable{
	Table:         "catalog.volume",
	ID:            "id",
	Title:         "title",
	ISBN10:        "isbn10",
	ISBN13:        "isbn13",
	PublishedDate: "publisheddate",
	Language:      "language",
	Units:         "units",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CatalogVolumeTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.ISBN10, t.ISBN13, t.PublishedDate, t.Language, t.Units,
		t.CreatedAt, t.UpdatedAt,
	}
}
