package checks

import (
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/goapi"
)

type activeFields struct {
	old, new *goapi.Element
}

// FieldChanged flags a field whose declared type changed. A struct
// tag's own content is not compared here: tags surface as
// api.KindAnnotation children (see AnnotationChanged), matching the
// "annotations are always their own pair" specialization the default
// DifferenceAnalyzer implements.
type FieldChanged struct {
	stack check.Stack[*activeFields]
}

func NewFieldChanged() *FieldChanged { return &FieldChanged{} }

func (c *FieldChanged) Initialize(*config.Configuration) error { return nil }
func (c *FieldChanged) SetOldEnvironment(check.Environment)    {}
func (c *FieldChanged) SetNewEnvironment(check.Environment)    {}

func (c *FieldChanged) Interest() map[api.Kind]struct{} {
	return map[api.Kind]struct{}{api.KindField: {}}
}

func (c *FieldChanged) Visit(kind api.Kind, old, new api.Element) {
	if old == nil || new == nil {
		c.stack.Push(nil)
		return
	}
	oldField, oldOK := old.(*goapi.Element)
	newField, newOK := new.(*goapi.Element)
	if !oldOK || !newOK {
		c.stack.Push(nil)
		return
	}
	c.stack.Push(&activeFields{old: oldField, new: newField})
}

func (c *FieldChanged) VisitEnd(api.Kind) []*api.Difference {
	active := c.stack.Pop()
	if active == nil {
		return nil
	}
	if active.old.TypeString() == active.new.TypeString() {
		return nil
	}
	diff := api.NewDifference("go.field.typeChanged", "Field type changed").
		WithDescription("field " + active.old.FullName() + " changed type from " +
			active.old.TypeString() + " to " + active.new.TypeString()).
		AddAttachment("oldType", active.old.TypeString()).
		AddAttachment("newType", active.new.TypeString()).
		AddClassification(api.DimensionSource, api.SeverityBreaking).
		AddClassification(api.DimensionBinary, api.SeverityBreaking).
		Build()
	return []*api.Difference{diff}
}

var _ check.Check = (*FieldChanged)(nil)
