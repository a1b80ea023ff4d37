package assets

import _ "embed"

// CatalogData holds the raw JSON catalog of languages, interests and models.
//
//go:embed catalog.json
var CatalogData []byte
