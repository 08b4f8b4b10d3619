package registry

import (
	"fmt"
	"net/rpc"
	"os/exec"

	"github.com/hashicorp/go-plugin"
	"github.com/mkavanagh/revapi/analyzer"
	"github.com/mkavanagh/revapi/api"
	"github.com/mkavanagh/revapi/check"
	"github.com/mkavanagh/revapi/config"
	"github.com/mkavanagh/revapi/reporter"
	"github.com/mkavanagh/revapi/transform"
	"golang.org/x/text/language"
)

// checkHandshake is the go-plugin handshake every check plugin binary
// and this host must agree on before a connection is trusted.
var checkHandshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "REVAPI_CHECK_PLUGIN",
	MagicCookieValue: "revapi-check-v1",
}

func checkPluginMap(impl check.Check) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		"check": &checkRPCPlugin{impl: impl},
	}
}

// checkRPCPlugin implements plugin.Plugin over net/rpc, following the
// Server/Client split every go-plugin extension point uses: Server runs
// inside the plugin process and wraps the real check.Check; Client runs
// inside this host process and hands back an RPC stub that satisfies
// check.Check for the rest of the module.
type checkRPCPlugin struct {
	impl check.Check
}

func (p *checkRPCPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &checkRPCServer{impl: p.impl}, nil
}

func (p *checkRPCPlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &checkRPCClient{client: c}, nil
}

// elementInfo is the serializable surrogate for api.Element that crosses
// the RPC boundary: a plugin check cannot hold a live api.Element (it
// cannot call back into this process's Archive or use-site graph), so it
// only ever sees an element's kind and name.
type elementInfo struct {
	Kind     string
	FullName string
	Present  bool
}

func toElementInfo(e api.Element) elementInfo {
	if e == nil {
		return elementInfo{}
	}
	return elementInfo{Kind: string(e.Kind()), FullName: e.FullName(), Present: true}
}

// differenceInfo is the serializable surrogate for api.Difference.
type differenceInfo struct {
	Code           string
	Name           string
	Description    string
	Attachments    map[string]string
	Classification map[string]int
}

func fromDifference(d *api.Difference) differenceInfo {
	class := make(map[string]int, len(d.Classification()))
	for dim, sev := range d.Classification() {
		class[string(dim)] = int(sev)
	}
	return differenceInfo{
		Code:           d.Code(),
		Name:           d.Name(),
		Description:    d.Description(),
		Attachments:    d.Attachments(),
		Classification: class,
	}
}

func (di differenceInfo) toDifference() *api.Difference {
	b := api.NewDifference(di.Code, di.Name).WithDescription(di.Description)
	for k, v := range di.Attachments {
		b.AddAttachment(k, v)
	}
	d := b.Build()
	for dim, sev := range di.Classification {
		d = d.WithClassification(api.Dimension(dim), api.Severity(sev))
	}
	return d
}

type initializeArgs struct {
	Properties map[string]string
}

type visitArgs struct {
	Kind string
	Old  elementInfo
	New  elementInfo
}

// checkRPCServer runs inside the plugin process, translating RPC calls
// onto the real check.Check. It ignores SetOldEnvironment/
// SetNewEnvironment: an Environment is an in-process resolution facility
// (see package check) that cannot be marshaled across the RPC boundary,
// so a plugin Check only ever sees element kind and name, never an
// environment.
type checkRPCServer struct {
	impl check.Check
}

func (s *checkRPCServer) Initialize(args *initializeArgs, _ *struct{}) error {
	props := make(map[string]string, len(args.Properties))
	for k, v := range args.Properties {
		props[k] = v
	}
	return s.impl.Initialize(config.New(language.Und, props))
}

func (s *checkRPCServer) Interest(_ struct{}, reply *[]string) error {
	for k := range s.impl.Interest() {
		*reply = append(*reply, string(k))
	}
	return nil
}

func (s *checkRPCServer) Visit(args *visitArgs, _ *struct{}) error {
	var old, new_ api.Element
	if args.Old.Present {
		old = &surrogateElement{kind: api.Kind(args.Old.Kind), name: args.Old.FullName}
	}
	if args.New.Present {
		new_ = &surrogateElement{kind: api.Kind(args.New.Kind), name: args.New.FullName}
	}
	s.impl.Visit(api.Kind(args.Kind), old, new_)
	return nil
}

func (s *checkRPCServer) VisitEnd(kind string, reply *[]differenceInfo) error {
	for _, d := range s.impl.VisitEnd(api.Kind(kind)) {
		*reply = append(*reply, fromDifference(d))
	}
	return nil
}

// surrogateElement is the minimal api.Element a plugin-side Check
// receives via RPC: enough for a Visit/VisitEnd implementation that only
// inspects kind and name, nothing that needs the full tree.
type surrogateElement struct {
	kind api.Kind
	name string
}

func (e *surrogateElement) API() *api.API             { return nil }
func (e *surrogateElement) Archive() api.Archive      { return nil }
func (e *surrogateElement) Parent() api.Element       { return nil }
func (e *surrogateElement) Children() []api.Element   { return nil }
func (e *surrogateElement) FullName() string          { return e.name }
func (e *surrogateElement) Kind() api.Kind            { return e.kind }
func (e *surrogateElement) UseSites() []*api.UseSite  { return nil }
func (e *surrogateElement) CompareTo(o api.Element) int {
	if o == nil {
		return 1
	}
	return len(e.name) - len(o.FullName())
}

// checkRPCClient runs inside this host process and adapts the plugin
// connection back into check.Check. Its SetOldEnvironment and
// SetNewEnvironment are deliberately no-ops, for the same reason
// checkRPCServer ignores them: an out-of-process Check cannot use an
// in-process Environment.
type checkRPCClient struct {
	client *rpc.Client
}

func (c *checkRPCClient) Initialize(cfg *config.Configuration) error {
	props := make(map[string]string, len(cfg.Keys()))
	for _, k := range cfg.Keys() {
		props[k], _ = cfg.Get(k)
	}
	return c.client.Call("Plugin.Initialize", &initializeArgs{Properties: props}, &struct{}{})
}

func (c *checkRPCClient) SetOldEnvironment(check.Environment) {}
func (c *checkRPCClient) SetNewEnvironment(check.Environment) {}

func (c *checkRPCClient) Interest() map[api.Kind]struct{} {
	var kinds []string
	if err := c.client.Call("Plugin.Interest", struct{}{}, &kinds); err != nil {
		return nil
	}
	out := make(map[api.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		out[api.Kind(k)] = struct{}{}
	}
	return out
}

func (c *checkRPCClient) Visit(kind api.Kind, old, new_ api.Element) {
	args := &visitArgs{Kind: string(kind), Old: toElementInfo(old), New: toElementInfo(new_)}
	_ = c.client.Call("Plugin.Visit", args, &struct{}{})
}

func (c *checkRPCClient) VisitEnd(kind api.Kind) []*api.Difference {
	var reply []differenceInfo
	if err := c.client.Call("Plugin.VisitEnd", string(kind), &reply); err != nil {
		return nil
	}
	out := make([]*api.Difference, 0, len(reply))
	for _, di := range reply {
		out = append(out, di.toDifference())
	}
	return out
}

var _ check.Check = (*checkRPCClient)(nil)

// PluginRegistry resolves check names to external plugin binaries,
// starting one subprocess per resolved name and dispensing its "check"
// implementation over net/rpc, the way wudi-gateway's goplugin package
// starts and dispenses a GatewayPlugin. It only serves Checks: Analyzer,
// Transform, and Reporter extensions are expected to be compiled into
// the host binary and served from a StaticRegistry instead, since those
// hold state (archives, open files) that does not survive a process
// boundary as cheaply as a Check's kind/name-only contract does.
type PluginRegistry struct {
	paths map[string]string
}

// NewPluginRegistry builds a PluginRegistry over a name -> executable
// path map, typically populated from Configuration.
func NewPluginRegistry(paths map[string]string) *PluginRegistry {
	p := make(map[string]string, len(paths))
	for k, v := range paths {
		p[k] = v
	}
	return &PluginRegistry{paths: p}
}

func (r *PluginRegistry) Check(name string) (check.Check, error) {
	path, ok := r.paths[name]
	if !ok {
		return nil, fmt.Errorf("registry: no check plugin registered under %q", name)
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  checkHandshake,
		Plugins:          checkPluginMap(nil),
		Cmd:              exec.Command(path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("registry: starting check plugin %q: %w", name, err)
	}
	raw, err := rpcClient.Dispense("check")
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("registry: dispensing check plugin %q: %w", name, err)
	}
	return raw.(check.Check), nil
}

// Transform, Reporter, and Analyzer are unsupported: a PluginRegistry
// only discovers Checks (see the type doc comment). Callers layer it
// under a StaticRegistry with registry.Fallback for the other three
// extension kinds.
func (r *PluginRegistry) Transform(name string) (transform.Transform, error) {
	return nil, fmt.Errorf("registry: plugin transforms are not supported, got %q", name)
}

func (r *PluginRegistry) Reporter(name string) (reporter.Reporter, error) {
	return nil, fmt.Errorf("registry: plugin reporters are not supported, got %q", name)
}

func (r *PluginRegistry) Analyzer(name string) (analyzer.Analyzer, error) {
	return nil, fmt.Errorf("registry: plugin analyzers are not supported, got %q", name)
}

var _ ExtensionRegistry = (*PluginRegistry)(nil)
