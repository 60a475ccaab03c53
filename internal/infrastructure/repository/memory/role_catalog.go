package memory

import (
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
)

// RoleCatalog serves role templates to tactics. Templates that fail
// validation are logged and left out; lookups of unknown ids are logged and
// answered with "no role".
type RoleCatalog struct {
	catalog *role.Catalog
	logger  *logging.Logger
}

func NewRoleCatalog(logger *logging.Logger, templates []role.Template) *RoleCatalog {
	if logger == nil {
		logger = logging.Default()
	}

	validate := validator.New()
	valid := make([]role.Template, 0, len(templates))
	for _, t := range templates {
		if err := validate.Struct(t); err != nil {
			logger.Warn("skip role template", "role_id", t.ID, "error", err)
			continue
		}
		valid = append(valid, t)
	}

	catalog, rejected := role.NewCatalog(valid...)
	for _, err := range rejected {
		logger.Warn("skip role template", "error", err)
	}

	return &RoleCatalog{catalog: catalog, logger: logger}
}

func (c *RoleCatalog) GetRolesForPosition(pos position.ID) []role.ID {
	return c.catalog.GetRolesForPosition(pos)
}

func (c *RoleCatalog) GetRole(id role.ID) (role.Template, bool) {
	t, ok := c.catalog.GetRole(id)
	if !ok {
		c.logger.Warn("role not found in catalog", "role_id", id)
	}
	return t, ok
}

func (c *RoleCatalog) IDs() []role.ID {
	return c.catalog.IDs()
}
