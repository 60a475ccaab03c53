package role

import "github.com/riskibarqy/tactics-board/internal/domain/position"

// Source is the role catalog collaborator tactics are built from.
type Source interface {
	GetRolesForPosition(pos position.ID) []ID
	GetRole(id ID) (Template, bool)
}

// InstancesFor builds one fresh instance per role the source offers for pos.
// Ids the source cannot resolve are skipped.
func InstancesFor(src Source, pos position.ID) []*Instance {
	if src == nil {
		return nil
	}
	ids := src.GetRolesForPosition(pos)
	out := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		tpl, ok := src.GetRole(id)
		if !ok {
			continue
		}
		out = append(out, NewInstance(tpl))
	}
	return out
}
