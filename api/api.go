package api

// API is an immutable pair of archive sets: the primary archives, which
// together define the surface being analyzed, and the supplementary
// archives, which are only present so references from the primary set
// can be resolved. Every Element carries a back-reference to the API it
// belongs to, which is how a Check tells whether a referenced type lives
// inside or outside the analyzed surface.
type API struct {
	primary       []Archive
	supplementary []Archive
}

// NewAPI builds an API from its two archive sets. Neither slice is
// retained by reference; callers may reuse them afterwards.
func NewAPI(primary, supplementary []Archive) *API {
	a := &API{
		primary:       make([]Archive, len(primary)),
		supplementary: make([]Archive, len(supplementary)),
	}
	copy(a.primary, primary)
	copy(a.supplementary, supplementary)
	return a
}

// Primary returns the archives that make up the API surface itself.
func (a *API) Primary() []Archive {
	return a.primary
}

// Supplementary returns the archives kept only to resolve references.
func (a *API) Supplementary() []Archive {
	return a.supplementary
}

// IsPrimary reports whether archive is a member of the primary set,
// compared by Name. Elements owned by a primary archive are part of the
// analyzed surface; elements owned only by a supplementary archive are
// not, but may still be reachable through use-sites.
func (a *API) IsPrimary(archive Archive) bool {
	if archive == nil {
		return false
	}
	for _, p := range a.primary {
		if p.Name() == archive.Name() {
			return true
		}
	}
	return false
}
