package checks

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi"
)

type activeAnnotations struct {
	old, new *goapi.Element
}

// AnnotationChanged flags a changed struct tag. Because annotations are
// specialized by the default DifferenceAnalyzer (they never join the
// kind stack; Visit and VisitEnd run back to back for the same pair,
// see analyzer.DefaultDifferenceAnalyzer), the stack here is never more
// than one deep at a time, but it is kept for the same reason every
// other check in this package keeps one: so a bug in that guarantee
// shows up as a stack-balance panic instead of comparing the wrong
// pair.
type AnnotationChanged struct {
	stack check.Stack[*activeAnnotations]
}

func NewAnnotationChanged() *AnnotationChanged { return &AnnotationChanged{} }

func (c *AnnotationChanged) Initialize(*config.Configuration) error { return nil }
func (c *AnnotationChanged) SetOldEnvironment(check.Environment)    {}
func (c *AnnotationChanged) SetNewEnvironment(check.Environment)    {}

func (c *AnnotationChanged) Interest() map[api.Kind]struct{} {
	return map[api.Kind]struct{}{api.KindAnnotation: {}}
}

func (c *AnnotationChanged) Visit(kind api.Kind, old, new api.Element) {
	if old == nil || new == nil {
		c.stack.Push(nil)
		return
	}
	oldTag, oldOK := old.(*goapi.Element)
	newTag, newOK := new.(*goapi.Element)
	if !oldOK || !newOK {
		c.stack.Push(nil)
		return
	}
	c.stack.Push(&activeAnnotations{old: oldTag, new: newTag})
}

func (c *AnnotationChanged) VisitEnd(api.Kind) []*api.Difference {
	active := c.stack.Pop()
	if active == nil {
		return nil
	}
	if active.old.TypeString() == active.new.TypeString() {
		return nil
	}
	diff := api.NewDifference("go.annotation.tagValueChanged", "Struct tag changed").
		WithDescription("tag on " + active.old.Parent().FullName() + " changed from " +
			active.old.TypeString() + " to " + active.new.TypeString()).
		AddAttachment("oldTag", active.old.TypeString()).
		AddAttachment("newTag", active.new.TypeString()).
		AddClassification(api.DimensionSemantic, api.SeverityPotentiallyBreaking).
		Build()
	return []*api.Difference{diff}
}

var _ check.Check = (*AnnotationChanged)(nil)
