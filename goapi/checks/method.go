package checks

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi"
)

type activeMethods struct {
	old, new *goapi.Element
}

// MethodChanged flags two kinds of method difference: a changed
// signature (breaking), and, per SPEC_FULL.md's supplemented "content
// hashing" feature, a changed implementation with an unchanged
// signature (potentially breaking - behavior may differ even though
// nothing that type-checks against the method changed).
type MethodChanged struct {
	stack check.Stack[*activeMethods]
}

func NewMethodChanged() *MethodChanged { return &MethodChanged{} }

func (c *MethodChanged) Initialize(*config.Configuration) error { return nil }
func (c *MethodChanged) SetOldEnvironment(check.Environment)    {}
func (c *MethodChanged) SetNewEnvironment(check.Environment)    {}

func (c *MethodChanged) Interest() map[api.Kind]struct{} {
	return map[api.Kind]struct{}{api.KindMethod: {}}
}

func (c *MethodChanged) Visit(kind api.Kind, old, new api.Element) {
	if old == nil || new == nil {
		c.stack.Push(nil)
		return
	}
	oldMethod, oldOK := old.(*goapi.Element)
	newMethod, newOK := new.(*goapi.Element)
	if !oldOK || !newOK {
		c.stack.Push(nil)
		return
	}
	c.stack.Push(&activeMethods{old: oldMethod, new: newMethod})
}

func (c *MethodChanged) VisitEnd(api.Kind) []*api.Difference {
	active := c.stack.Pop()
	if active == nil {
		return nil
	}

	if active.old.TypeString() != active.new.TypeString() {
		diff := api.NewDifference("go.method.signatureChanged", "Method signature changed").
			WithDescription("method " + active.old.FullName() + " changed signature from " +
				active.old.TypeString() + " to " + active.new.TypeString()).
			AddAttachment("oldSignature", active.old.TypeString()).
			AddAttachment("newSignature", active.new.TypeString()).
			AddClassification(api.DimensionSource, api.SeverityBreaking).
			AddClassification(api.DimensionBinary, api.SeverityBreaking).
			Build()
		return []*api.Difference{diff}
	}

	oldHash, oldOK := active.old.ContentHash()
	newHash, newOK := active.new.ContentHash()
	if oldOK && newOK && oldHash != newHash {
		diff := api.NewDifference("go.method.implementationChanged", "Method implementation changed").
			WithDescription("method " + active.old.FullName() + " changed implementation without changing its signature").
			AddClassification(api.DimensionSemantic, api.SeverityPotentiallyBreaking).
			Build()
		return []*api.Difference{diff}
	}
	return nil
}

var _ check.Check = (*MethodChanged)(nil)
