package api

// UseType tags the nature of a reference from a site Element to a
// target Element: is it the type of a field, a parameter, a thrown
// exception, a supertype, ...
type UseType string

const (
	UseTypeAnnotates      UseType = "annotates"
	UseTypeFieldType      UseType = "field-type"
	UseTypeParameterType  UseType = "parameter-type"
	UseTypeReturnType     UseType = "return-type"
	UseTypeThrowsType     UseType = "throws-type"
	UseTypeExtends        UseType = "extends"
	UseTypeImplements     UseType = "implements"
	UseTypeContains       UseType = "contains"
	UseTypeTypeParameter  UseType = "type-parameter-bound"
)

// movesToAPI reports whether a use-type can propagate API membership
// transitively: if S is in the API and S refers to T through a use-type
// for which this is true, T is pulled into the API surface too (a
// public method returning a formerly-internal type is the canonical
// example). Containment and annotation references do not propagate.
var movesToAPI = map[UseType]bool{
	UseTypeAnnotates:     false,
	UseTypeFieldType:     true,
	UseTypeParameterType: true,
	UseTypeReturnType:    true,
	UseTypeThrowsType:    true,
	UseTypeExtends:       true,
	UseTypeImplements:    true,
	UseTypeContains:      false,
	UseTypeTypeParameter: true,
}

// MovesToAPI reports whether a reference of use-type ut propagates API
// membership from the referring element to the referenced one.
func (ut UseType) MovesToAPI() bool {
	return movesToAPI[ut]
}

// UseSite records that Site refers to Target through Type. Use-sites
// form a directed graph over elements that analyzers populate at tree-
// build time; the graph may contain cycles (mutually referencing
// types), which any traversal over it must tolerate.
type UseSite struct {
	Site   Element
	Target Element
	Type   UseType
}

// TraverseToAPI walks the use-site graph outward from start looking for
// a path to any element owned by an archive in api's primary set. It is
// an iterative depth-first search with an explicit visited set and path
// vector rather than a recursive walk, so that a pathological or
// maliciously cyclic use-site graph cannot blow the call stack.
//
// It returns the first path found, expressed as the sequence of
// elements from start (inclusive) to the reached primary-archive
// element (inclusive), or nil if no such path exists.
func TraverseToAPI(api *API, start Element) []Element {
	if start == nil {
		return nil
	}
	if api.IsPrimary(start.Archive()) {
		return []Element{start}
	}

	type frame struct {
		element Element
		sites   []*UseSite
		index   int
	}

	visited := map[Element]bool{start: true}
	stack := []frame{{element: start, sites: start.UseSites()}}
	path := []Element{start}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index >= len(top.sites) {
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		site := top.sites[top.index]
		top.index++

		if !site.Type.MovesToAPI() {
			continue
		}
		target := site.Target
		if target == nil || visited[target] {
			continue
		}
		visited[target] = true
		path = append(path, target)

		if api.IsPrimary(target.Archive()) {
			result := make([]Element, len(path))
			copy(result, path)
			return result
		}

		stack = append(stack, frame{element: target, sites: target.UseSites()})
	}

	return nil
}
