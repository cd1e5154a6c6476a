package mock_catalog

type CatalogVideo struct {
	URL   string `json:"url"`
	Sport string `json:"sport"`
	Title string `json:"title"`
}
