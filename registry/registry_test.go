package registry_test

import (
	"testing"

	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCheck struct{}

func (nopCheck) Initialize(*config.Configuration) error  { return nil }
func (nopCheck) SetOldEnvironment(check.Environment)      {}
func (nopCheck) SetNewEnvironment(check.Environment)      {}
func (nopCheck) Interest() map[api.Kind]struct{}          { return nil }
func (nopCheck) Visit(api.Kind, api.Element, api.Element) {}
func (nopCheck) VisitEnd(api.Kind) []*api.Difference      { return nil }

func TestStaticRegistryResolvesRegisteredCheck(t *testing.T) {
	r := registry.NewStaticRegistry()
	r.RegisterCheck("noop", func() check.Check { return nopCheck{} })

	c, err := r.Check("noop")

	require.NoError(t, err)
	assert.Equal(t, nopCheck{}, c)
}

func TestStaticRegistryUnknownNameErrors(t *testing.T) {
	r := registry.NewStaticRegistry()

	_, err := r.Check("missing")

	assert.Error(t, err)
}

func TestStaticRegistryFactoryProducesFreshInstanceEachCall(t *testing.T) {
	calls := 0
	r := registry.NewStaticRegistry()
	r.RegisterCheck("counted", func() check.Check {
		calls++
		return nopCheck{}
	})

	_, err1 := r.Check("counted")
	_, err2 := r.Check("counted")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 2, calls)
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := registry.NewStaticRegistry()
	primary.RegisterCheck("shared", func() check.Check { return nopCheck{} })
	secondary := registry.NewStaticRegistry()
	secondary.RegisterCheck("shared", func() check.Check { return nopCheck{} })
	secondary.RegisterCheck("only-secondary", func() check.Check { return nopCheck{} })

	fb := registry.NewFallback(primary, secondary)

	_, err := fb.Check("shared")
	require.NoError(t, err)
	_, err = fb.Check("only-secondary")
	require.NoError(t, err)
	_, err = fb.Check("nowhere")
	assert.Error(t, err)
}
