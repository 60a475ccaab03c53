package position

// Placement is a value that sat at From before a formation change.
type Placement[T any] struct {
	From  ID
	Value T
}

// RemapResult holds where each placement landed and what could not be placed.
type RemapResult[T any] struct {
	Placed   map[ID]T
	Unplaced []Placement[T]
}

// Remap carries placements over to formation, group-aware:
//  1. a placement whose position still exists keeps it;
//  2. otherwise it takes the first empty slot of its own group;
//  3. otherwise the first empty slot of an adjacent group, in adjacency order;
//  4. otherwise any empty slot.
//
// Each pass scans placements in input order and slots left to right. Whatever
// is left after pass 4 is returned in Unplaced for the caller to handle.
func Remap[T any](previous []Placement[T], formation []ID) RemapResult[T] {
	slots := dedupe(formation)
	placed := make(map[ID]T, len(slots))
	filled := make(map[ID]bool, len(slots))
	inFormation := make(map[ID]bool, len(slots))
	for _, id := range slots {
		inFormation[id] = true
	}

	pending := make([]Placement[T], 0, len(previous))
	for _, p := range previous {
		if inFormation[p.From] && !filled[p.From] {
			placed[p.From] = p.Value
			filled[p.From] = true
			continue
		}
		pending = append(pending, p)
	}

	place := func(p Placement[T], match func(ID) bool) bool {
		for _, id := range slots {
			if filled[id] || !match(id) {
				continue
			}
			placed[id] = p.Value
			filled[id] = true
			return true
		}
		return false
	}

	pending = keep(pending, func(p Placement[T]) bool {
		group := GetGroupForPosition(p.From)
		if group == GroupNone {
			return true
		}
		return !place(p, func(id ID) bool { return GetGroupForPosition(id) == group })
	})

	pending = keep(pending, func(p Placement[T]) bool {
		for _, group := range AdjacentGroups(GetGroupForPosition(p.From)) {
			group := group
			if place(p, func(id ID) bool { return GetGroupForPosition(id) == group }) {
				return false
			}
		}
		return true
	})

	pending = keep(pending, func(p Placement[T]) bool {
		return !place(p, func(ID) bool { return true })
	})

	return RemapResult[T]{Placed: placed, Unplaced: pending}
}

func keep[T any](items []Placement[T], pred func(Placement[T]) bool) []Placement[T] {
	out := items[:0]
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func dedupe(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
