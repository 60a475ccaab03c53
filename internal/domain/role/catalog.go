package role

import (
	"fmt"

	"github.com/riskibarqy/tactics-board/internal/domain/position"
)

// Catalog is an immutable lookup of role templates. It replaces any global
// registry: build one and pass it to whatever constructs tactics.
type Catalog struct {
	order []ID
	byID  map[ID]Template
}

// NewCatalog keeps templates in the given order. Templates failing Validate
// or repeating an id are returned in rejected and left out.
func NewCatalog(templates ...Template) (*Catalog, []error) {
	c := &Catalog{byID: make(map[ID]Template, len(templates))}
	var rejected []error
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if _, ok := c.byID[t.ID]; ok {
			rejected = append(rejected, fmt.Errorf("duplicate role id: %s", t.ID))
			continue
		}
		c.byID[t.ID] = t.Clone()
		c.order = append(c.order, t.ID)
	}
	return c, rejected
}

// GetRolesForPosition lists compatible role ids in catalog order.
func (c *Catalog) GetRolesForPosition(pos position.ID) []ID {
	out := make([]ID, 0)
	for _, id := range c.order {
		if c.byID[id].IsCompatible(pos) {
			out = append(out, id)
		}
	}
	return out
}

func (c *Catalog) GetRole(id ID) (Template, bool) {
	t, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

func (c *Catalog) IDs() []ID {
	return append([]ID(nil), c.order...)
}

func (c *Catalog) Len() int { return len(c.order) }
