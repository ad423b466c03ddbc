package transcode

import (
	"errors"
	"strings"

	"github.com/artpar/decomposer/internal/core/document"
)

// =============================================================================
// Commands
// =============================================================================

// Kind is the resource class a command creates or runs.
type Kind string

const (
	KindNetwork Kind = "network"
	KindVolume  Kind = "volume"
	KindService Kind = "service"
)

// Command is one rendered command line.
type Command struct {
	Kind Kind
	Name string
	Line string
}

// Commands renders every network, then every volume, then every service, each in
// document order.
//
// It returns ErrNoServices when the document has no services (nothing is rendered,
// not even networks), ErrMalformedServices when services is not a map, and
// ErrInvalidSeparator for a bad Config.
func Commands(doc *document.Document, cfg Config) ([]Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	if doc == nil {
		return nil, ErrNoServices
	}
	services, err := servicesOf(doc.Services)
	if err != nil {
		return nil, err
	}

	binary := binaryOf(cfg.Command)
	var cmds []Command
	for name, net := range document.AsMap(doc.Networks).All() {
		cmds = append(cmds, Command{Kind: KindNetwork, Name: name, Line: networkCommand(binary, name, net, cfg)})
	}
	for name, vol := range document.AsMap(doc.Volumes).All() {
		cmds = append(cmds, Command{Kind: KindVolume, Name: name, Line: volumeCommand(binary, name, vol, cfg)})
	}
	for name, svc := range services.All() {
		cmds = append(cmds, Command{Kind: KindService, Name: name, Line: serviceCommand(svc, cfg)})
	}
	return cmds, nil
}

// Convert renders the whole document as newline-separated commands.
// A document without services yields "" and one whose services are not a map
// yields MalformedMarker. The only error is ErrInvalidSeparator.
func Convert(doc *document.Document, cfg Config) (string, error) {
	cmds, err := Commands(doc, cfg)
	switch {
	case err == nil:
		return Render(cmds), nil
	case errors.Is(err, ErrNoServices):
		return "", nil
	case errors.Is(err, ErrMalformedServices):
		return MalformedMarker, nil
	}
	return "", err
}

// Render joins command lines with newlines.
func Render(cmds []Command) string {
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.Line
	}
	return strings.Join(lines, "\n")
}

func servicesOf(n document.Node) (*document.Map, error) {
	switch v := n.(type) {
	case nil:
		return nil, ErrNoServices
	case *document.Map:
		if v.Len() == 0 {
			return nil, ErrNoServices
		}
		return v, nil
	case document.Scalar:
		if v.IsNull() {
			return nil, ErrNoServices
		}
	}
	return nil, ErrMalformedServices
}

// binaryOf takes the engine binary from the first word of the command prefix.
func binaryOf(command string) string {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0]
	}
	return "docker"
}

// =============================================================================
// Networks and Volumes
// =============================================================================

var (
	driverFlags      = ParseFlags("driver/d")
	optFlags         = ParseFlags("opt/o")
	labelFlags       = ParseFlags("label")
	attachableFlags  = ParseFlags("attachable")
	ipv6Flags        = ParseFlags("ipv6")
	internalFlags    = ParseFlags("internal")
	subnetFlags      = ParseFlags("subnet")
	ipRangeFlags     = ParseFlags("ip-range")
	gatewayFlags     = ParseFlags("gateway")
	auxAddressFlags  = ParseFlags("aux-address")
	externalNamePath = document.ParsePath("external/name")
)

func networkCommand(binary, key string, net document.Node, cfg Config) string {
	b := NewBuilder(binary+" network create", cfg)
	if n := document.AsMap(net); n != nil {
		optionIf(b, driverFlags, TypeValue, n.Value("driver"))
		optionIf(b, attachableFlags, TypeSwitch, n.Value("attachable"))
		optionIf(b, ipv6Flags, TypeSwitch, n.Value("enable_ipv6"))
		optionIf(b, internalFlags, TypeSwitch, n.Value("internal"))
		if ipam := document.AsMap(n.Value("ipam")); ipam != nil {
			optionIf(b, driverFlags, TypeValue, ipam.Value("driver"))
			pairOptions(b, optFlags, ipam.Value("options"))
			configs, _ := document.AsSequence(ipam.Value("config"))
			for _, c := range configs {
				pool := document.AsMap(c)
				if pool == nil {
					continue
				}
				optionIf(b, subnetFlags, TypeValue, pool.Value("subnet"))
				optionIf(b, ipRangeFlags, TypeValue, pool.Value("ip_range"))
				optionIf(b, gatewayFlags, TypeValue, pool.Value("gateway"))
				pairOptions(b, auxAddressFlags, pool.Value("aux_addresses"))
			}
		}
		pairOptions(b, optFlags, n.Value("driver_opts"))
		pairOptions(b, labelFlags, n.Value("labels"))
	}
	b.Arg(resourceName(key, net))
	return b.String()
}

func volumeCommand(binary, key string, vol document.Node, cfg Config) string {
	b := NewBuilder(binary+" volume create", cfg)
	if v := document.AsMap(vol); v != nil {
		optionIf(b, driverFlags, TypeValue, v.Value("driver"))
		pairOptions(b, optFlags, v.Value("driver_opts"))
		pairOptions(b, labelFlags, v.Value("labels"))
	}
	b.Arg(resourceName(key, vol))
	return b.String()
}

// resourceName prefers external.name, then name, then the map key.
func resourceName(key string, res document.Node) string {
	for _, n := range []document.Node{externalNamePath.Resolve(res), document.AsMap(res).Value("name")} {
		if !document.Truthy(n) || !document.IsScalar(n) {
			continue
		}
		t, _ := document.Text(n)
		return t
	}
	return key
}

func optionIf(b *Builder, flags Flags, t ValueType, v document.Node) {
	if document.Truthy(v) {
		Encode(t, v, b.Emitter(flags))
	}
}

func pairOptions(b *Builder, flags Flags, v document.Node) {
	for _, p := range indexedPairs(v) {
		b.Option(flags, p)
	}
}

// =============================================================================
// Services
// =============================================================================

func serviceCommand(svc document.Node, cfg Config) string {
	b := NewBuilder(cfg.Command, cfg)
	if cfg.RemoveAfterRun {
		b.Option(rmFlags, "")
	}
	if cfg.Detach {
		b.Option(detachFlags, "")
	}

	s := document.AsMap(svc)
	attachNetworks(b, s)
	for key := range s.All() {
		for _, m := range byRoot[key] {
			v := m.Path.Resolve(s)
			if m.Gate.admits(v) {
				Encode(m.Type, v, b.Emitter(m.Flags))
			}
		}
	}

	if image := s.Value("image"); document.IsScalar(image) {
		t, _ := document.Text(image)
		b.Arg(t)
	}
	b.Arg(commandArgs(s.Value("command")))
	return b.String()
}

// attachNetworks emits network_mode when set, otherwise one option per
// attached network.
func attachNetworks(b *Builder, s *document.Map) {
	if mode := s.Value("network_mode"); document.Truthy(mode) {
		optionIf(b, networkFlags, TypeValue, mode)
		return
	}
	switch nets := s.Value("networks").(type) {
	case document.Sequence:
		for _, el := range nets {
			if document.IsScalar(el) {
				t, _ := document.Text(el)
				b.Option(networkFlags, Quote(t))
			}
		}
	case *document.Map:
		for name, conf := range nets.All() {
			if sc, ok := conf.(document.Scalar); ok && sc.Type == document.TypeString && sc.Value != "" {
				name = sc.Value
			}
			b.Option(networkFlags, Quote(name))
		}
	}
}

// commandArgs renders a string command verbatim and a sequence command as its
// quoted elements joined by spaces.
func commandArgs(cmd document.Node) string {
	switch c := cmd.(type) {
	case document.Scalar:
		if document.Truthy(c) {
			return c.Value
		}
	case document.Sequence:
		parts := make([]string, 0, len(c))
		for _, el := range c {
			if document.IsScalar(el) {
				t, _ := document.Text(el)
				parts = append(parts, Quote(t))
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}
