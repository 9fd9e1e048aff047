package conf

import (
	"strconv"
	"strings"

	"github.com/vk/confgrid/internal/field"
)

// target is the result of resolving a dotted path: the owning node plus
// either a field (with its within-node key) or a child node.
type target struct {
	node *Node
	fld  *field.Field
	key  string
}

// splitIndex splits a trailing numeric segment off a within-node key:
// "path_list.0" yields ("path_list", 0, true).
func splitIndex(key string) (base string, idx int, ok bool) {
	dot := strings.IndexByte(key, '.')
	if dot < 0 {
		return key, 0, false
	}
	i, err := strconv.Atoi(key[dot+1:])
	if err != nil {
		return key, 0, false
	}
	return key[:dot], i, true
}

// resolve walks a dotted field path from the root. List and grid entries
// are indexed with numeric segments: "worker_indexes.1.0.epoch".
func (t *Tree) resolve(path string) (*target, error) {
	segs := strings.Split(path, ".")
	n := t.root

	for i := 0; i < len(segs); i++ {
		e, err := n.entryOf(segs[i])
		if err != nil {
			return nil, &PathError{Path: path, Reason: err.Error()}
		}

		switch e.def.kind {
		case kindField:
			if i != len(segs)-1 {
				return nil, &PathError{Path: path, Reason: "field " + segs[i] + " has no sub-entries"}
			}
			return &target{node: n, fld: e.field, key: segs[i]}, nil

		case kindFieldList:
			if i == len(segs)-1 {
				return nil, &PathError{Path: path, Reason: "list " + segs[i] + " requires an index"}
			}
			idx, err := index(path, segs[i+1], len(e.fields))
			if err != nil {
				return nil, err
			}
			if i+1 != len(segs)-1 {
				return nil, &PathError{Path: path, Reason: "field " + segs[i] + " has no sub-entries"}
			}
			return &target{node: n, fld: e.fields[idx], key: segs[i] + "." + segs[i+1]}, nil

		case kindChild, kindSelector:
			if i == len(segs)-1 {
				return &target{node: e.child}, nil
			}
			n = e.child

		case kindChildList:
			if i == len(segs)-1 {
				return &target{node: n}, nil
			}
			idx, err := index(path, segs[i+1], len(e.nodes))
			if err != nil {
				return nil, err
			}
			if i+1 == len(segs)-1 {
				return &target{node: e.nodes[idx]}, nil
			}
			n = e.nodes[idx]
			i++

		case kindChildGrid:
			if len(segs)-i < 3 {
				return nil, &PathError{Path: path, Reason: "grid " + segs[i] + " requires two indexes"}
			}
			row, err := index(path, segs[i+1], len(e.grid))
			if err != nil {
				return nil, err
			}
			col, err := index(path, segs[i+2], len(e.grid[row]))
			if err != nil {
				return nil, err
			}
			if i+2 == len(segs)-1 {
				return &target{node: e.grid[row][col]}, nil
			}
			n = e.grid[row][col]
			i += 2
		}
	}
	return &target{node: n}, nil
}

func index(path, seg string, length int) (int, error) {
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, &PathError{Path: path, Reason: "segment " + seg + " is not a list index"}
	}
	if idx < 0 || idx >= length {
		return 0, &PathError{Path: path, Reason: "index " + seg + " is out of range"}
	}
	return idx, nil
}
