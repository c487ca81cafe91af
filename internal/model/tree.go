// Package model defines domain entities for the application.
package model

// Tree is the sample resource exposed by the API.
// Endangered is only populated for extended lookups.
type Tree struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MaxHeight  string `json:"max_height"`
	Endangered *bool  `json:"endangered,omitempty"`
}

// TreeList is the response envelope for tree listings.
type TreeList struct {
	Trees []Tree `json:"trees"`
}

// DefaultTreeID is the id returned when a lookup carries no identifier.
const DefaultTreeID = 1

// catalog holds the canned trees served by the API, in listing order.
var catalog = []Tree{
	{ID: 1, Name: "Dragon tree", MaxHeight: "15m"},
	{ID: 2, Name: "Giant sequoia", MaxHeight: "80m"},
	{ID: 3, Name: "Cacao tree", MaxHeight: "8m"},
}

// Catalog returns a copy of the canned trees.
func Catalog() []Tree {
	out := make([]Tree, len(catalog))
	copy(out, catalog)
	return out
}

// SampleTree returns the Dragon tree carrying the given id.
// Any id is accepted; there is no existence check.
func SampleTree(id int) Tree {
	t := catalog[0]
	t.ID = id
	return t
}

// CatalogTree returns the canned tree with the given id.
func CatalogTree(id int) (Tree, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Tree{}, false
}

// Extended returns a copy of t with the endangered flag set.
func (t Tree) Extended() Tree {
	endangered := true
	t.Endangered = &endangered
	return t
}
