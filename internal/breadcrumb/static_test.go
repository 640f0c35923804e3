package breadcrumb

import (
	"context"

	"github.com/indiverse/heritagebot/internal/domain"
)

// StaticCatalog is an in-memory Catalog built from loaded datasets
type StaticCatalog struct {
	monuments map[string]string
	blogs     map[int]string
	states    map[string]string
	tours     map[string]string
}

// NewStaticCatalog indexes the given datasets. Earlier entries win on duplicate ids.
func NewStaticCatalog(monuments []domain.Monument, blogs []domain.Blog, states []domain.State, tours []domain.Tour) *StaticCatalog {
	c := &StaticCatalog{
		monuments: make(map[string]string, len(monuments)),
		blogs:     make(map[int]string, len(blogs)),
		states:    make(map[string]string, len(states)),
		tours:     make(map[string]string, len(tours)),
	}
	for _, m := range monuments {
		if _, ok := c.monuments[m.ID]; !ok {
			c.monuments[m.ID] = m.Name
		}
	}
	for _, b := range blogs {
		if _, ok := c.blogs[b.ID]; !ok {
			c.blogs[b.ID] = b.Title
		}
	}
	for _, s := range states {
		c.states[s.Key] = s.Name
	}
	for _, t := range tours {
		if _, ok := c.tours[t.ID]; !ok {
			c.tours[t.ID] = t.Title
		}
	}
	return c
}

func (c *StaticCatalog) Monument(_ context.Context, id string) (string, bool, error) {
	name, ok := c.monuments[id]
	return name, ok, nil
}

func (c *StaticCatalog) Blog(_ context.Context, id int) (string, bool, error) {
	title, ok := c.blogs[id]
	return title, ok, nil
}

func (c *StaticCatalog) State(_ context.Context, key string) (string, bool, error) {
	name, ok := c.states[key]
	return name, ok, nil
}

func (c *StaticCatalog) Tour(_ context.Context, id string) (string, bool, error) {
	title, ok := c.tours[id]
	return title, ok, nil
}
