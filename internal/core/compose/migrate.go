package compose

import "github.com/artpar/decomposer/internal/core/document"

// =============================================================================
// Schema Migration
// =============================================================================

// Migrate rewrites a parsed top-level map into the common compose shape.
//
// Rules:
//   - A v1 file (no "services", no "version", every top-level value a service
//     with "image" or "build") is wrapped under "services"
//   - Legacy v2 service keys (net, mem_limit, mem_reservation, cpus, pids_limit)
//     and the misspelled volume_from move to their common location, taking the
//     legacy key's position
//   - A value already present at the common location wins over the legacy one
//
// The input map is never modified; migrated services are fresh maps.
func Migrate(root *document.Map) *document.Map {
	if root == nil {
		return document.NewMap()
	}

	if isVersionOne(root) {
		root = document.NewMap(document.Entry{Key: "services", Value: root})
	}

	services := document.AsMap(root.Value("services"))
	if services == nil {
		return root
	}

	migrated := document.NewMap()
	for name, svc := range services.All() {
		if m := document.AsMap(svc); m != nil {
			migrated.Set(name, migrateService(m))
			continue
		}
		migrated.Set(name, svc)
	}

	out := document.NewMap()
	for key, value := range root.All() {
		if key == "services" {
			out.Set(key, migrated)
			continue
		}
		out.Set(key, value)
	}
	return out
}

// isVersionOne detects the v1 compose format, where services sit at the top level.
func isVersionOne(root *document.Map) bool {
	if root.Len() == 0 {
		return false
	}
	if _, ok := root.Get("services"); ok {
		return false
	}
	if _, ok := root.Get("version"); ok {
		return false
	}
	for _, value := range root.All() {
		svc := document.AsMap(value)
		if svc == nil {
			return false
		}
		_, hasImage := svc.Get("image")
		_, hasBuild := svc.Get("build")
		if !hasImage && !hasBuild {
			return false
		}
	}
	return true
}

type move struct {
	path  []string
	value document.Node
}

func migrateService(svc *document.Map) *document.Map {
	out := document.NewMap()
	var moves []move

	for key, value := range svc.All() {
		target, legacy := legacyServiceKeys[key]
		if !legacy {
			out.Set(key, value)
			continue
		}

		moves = append(moves, move{path: target, value: value})
		if _, declared := svc.Get(target[0]); declared {
			continue
		}
		if _, placed := out.Get(target[0]); !placed {
			out.Set(target[0], nil)
		}
	}

	for _, mv := range moves {
		out.Set(mv.path[0], withDefault(out.Value(mv.path[0]), mv.path[1:], mv.value))
	}
	return out
}

// withDefault returns n with value stored at path, unless something is already there.
// Maps along the path are copied, never modified.
func withDefault(n document.Node, path []string, value document.Node) document.Node {
	if len(path) == 0 {
		if n != nil {
			return n
		}
		return value
	}

	m := document.AsMap(n)
	if m == nil && n != nil {
		return n
	}

	cp := document.NewMap()
	for k, v := range m.All() {
		cp.Set(k, v)
	}
	cp.Set(path[0], withDefault(m.Value(path[0]), path[1:], value))
	return cp
}
