package checks

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi"
)

// activeClasses is what ClassKindChanged pushes on a Visit it cares
// about, mirroring the ActiveElements record KindChanged.java keeps
// between doVisitClass and doEnd.
type activeClasses struct {
	old, new *goapi.Element
}

// ClassKindChanged flags a named type whose underlying shape changed -
// struct to interface, struct to a defined basic type, and so on - a
// source- and binary-incompatible change no matter what else about the
// type stayed the same.
type ClassKindChanged struct {
	stack check.Stack[*activeClasses]
}

func NewClassKindChanged() *ClassKindChanged { return &ClassKindChanged{} }

func (c *ClassKindChanged) Initialize(*config.Configuration) error { return nil }
func (c *ClassKindChanged) SetOldEnvironment(check.Environment)    {}
func (c *ClassKindChanged) SetNewEnvironment(check.Environment)    {}

func (c *ClassKindChanged) Interest() map[api.Kind]struct{} {
	return map[api.Kind]struct{}{api.KindClass: {}}
}

func (c *ClassKindChanged) Visit(kind api.Kind, old, new api.Element) {
	oldClass, oldOK := old.(*goapi.Element)
	newClass, newOK := new.(*goapi.Element)
	if old != nil && !oldOK || new != nil && !newOK {
		c.stack.Push(nil)
		return
	}
	if oldClass == nil || newClass == nil {
		c.stack.Push(nil)
		return
	}
	c.stack.Push(&activeClasses{old: oldClass, new: newClass})
}

func (c *ClassKindChanged) VisitEnd(api.Kind) []*api.Difference {
	active := c.stack.Pop()
	if active == nil {
		return nil
	}
	if active.old.GoKind() == active.new.GoKind() {
		return nil
	}
	diff := api.NewDifference("go.class.kindChanged", "Class kind changed").
		WithDescription("class " + active.old.FullName() + " changed kind from " +
			active.old.GoKind().String() + " to " + active.new.GoKind().String()).
		AddAttachment("oldKind", active.old.GoKind().String()).
		AddAttachment("newKind", active.new.GoKind().String()).
		AddClassification(api.DimensionSource, api.SeverityBreaking).
		AddClassification(api.DimensionBinary, api.SeverityBreaking).
		Build()
	return []*api.Difference{diff}
}

var _ check.Check = (*ClassKindChanged)(nil)
