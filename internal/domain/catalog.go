package domain

import "encoding/json"

// Catalog dataset file names, as shipped with the front end
const (
	MonumentsFile = "heritageData.json"
	BlogsFile     = "blogs.json"
	StatesFile    = "statesData.json"
	ToursFile     = "toursData.json"
)

// Monument is a heritage site entry. Quiz and AR pages are keyed by the same id.
type Monument struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Raw  json.RawMessage `json:"-"`
}

// Blog is a blog post entry
type Blog struct {
	ID    int             `json:"id"`
	Title string          `json:"title"`
	Raw   json.RawMessage `json:"-"`
}

// State is a state page entry, keyed by its URL key
type State struct {
	Key  string          `json:"key"`
	Name string          `json:"name"`
	Raw  json.RawMessage `json:"-"`
}

// Tour is a learning tour entry
type Tour struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Raw   json.RawMessage `json:"-"`
}

// CatalogCounts reports how many entries each dataset holds
type CatalogCounts struct {
	Monuments int `json:"monuments"`
	Blogs     int `json:"blogs"`
	States    int `json:"states"`
	Tours     int `json:"tours"`
}
