package resource

import "go-clinic-dashboard/internal/domain/entity"

// Catalogs holds the reference collections a screen loaded, by name.
type Catalogs map[string][]entity.CatalogEntry

func (c Catalogs) Lookup(collection string, id entity.ID) (entity.CatalogEntry, bool) {
	if id.IsZero() {
		return entity.CatalogEntry{}, false
	}
	for _, e := range c[collection] {
		if e.ID == id {
			return e, true
		}
	}
	return entity.CatalogEntry{}, false
}

func (c Catalogs) Has(collection string, id entity.ID) bool {
	_, ok := c.Lookup(collection, id)
	return ok
}

func (c Catalogs) clone() Catalogs {
	out := make(Catalogs, len(c))
	for k, v := range c {
		out[k] = append([]entity.CatalogEntry(nil), v...)
	}
	return out
}
