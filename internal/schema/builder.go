package schema

import (
	"io"

	"go.uber.org/zap"

	"github.com/business-central-sdk/bcschema/internal/csdl"
	"github.com/business-central-sdk/bcschema/internal/edm"
	"github.com/business-central-sdk/bcschema/internal/logging"
	"github.com/business-central-sdk/bcschema/internal/policy"
)

// DefaultMaxDepth bounds complex type nesting
const DefaultMaxDepth = 16

// Option configures Build
type Option func(*options)

type options struct {
	policy   policy.Source
	logger   *zap.Logger
	maxDepth int
}

// WithPolicy sets the read-only/fillable policy source. A nil source keeps
// the open policy.
func WithPolicy(src policy.Source) Option {
	return func(o *options) {
		o.policy = policy.OrOpen(src)
	}
}

// WithLogger sets the logger used while building
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(logger)
	}
}

// WithMaxDepth bounds complex type nesting; values below 1 are ignored
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Parse decodes a metadata document and builds its Schema
func Parse(r io.Reader, opts ...Option) (*Schema, error) {
	doc, err := csdl.Decode(r)
	if err != nil {
		return nil, &MetadataError{
			Kind:    ErrMalformedMetadata,
			Element: "document",
			Message: err.Error(),
		}
	}
	return Build(doc, opts...)
}

// Build turns a decoded metadata document into a Schema. Every problem in
// the document is collected and returned together as *MetadataErrors.
func Build(doc *csdl.Document, opts ...Option) (*Schema, error) {
	o := &options{
		policy:   policy.Open{},
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &Schema{
		namespace:    doc.Namespace(),
		entityTypes:  make(map[string]*EntityType),
		complexTypes: make(map[string]*ComplexType),
		policy:       o.policy,
	}
	errs := &MetadataErrors{}

	for _, def := range doc.ComplexTypes() {
		if def.Name == "" {
			errs.Add(ErrMalformedMetadata, "ComplexType", "", "missing Name attribute")
			continue
		}
		if _, exists := s.complexTypes[def.Name]; exists {
			errs.Add(ErrDuplicateType, "ComplexType", def.Name, "declared more than once")
			continue
		}

		ct := &ComplexType{structure: newStructure(def.Name)}
		buildProperties(&ct.structure, def.Properties, s, errs)
		s.complexTypes[ct.name] = ct
		s.complexOrder = append(s.complexOrder, ct)
	}

	for _, def := range doc.EntityTypes() {
		if def.Name == "" {
			errs.Add(ErrMalformedMetadata, "EntityType", "", "missing Name attribute")
			continue
		}
		if _, exists := s.entityTypes[def.Name]; exists {
			errs.Add(ErrDuplicateType, "EntityType", def.Name, "declared more than once")
			continue
		}

		et := &EntityType{structure: newStructure(def.Name)}
		buildProperties(&et.structure, def.Properties, s, errs)
		if def.Key != nil {
			for _, ref := range def.Key.PropertyRefs {
				if !et.HasProperty(ref.Name) {
					errs.Add(ErrMalformedMetadata, "EntityType", def.Name, "key property %q is not declared", ref.Name)
					continue
				}
				et.key = append(et.key, ref.Name)
			}
		}
		for _, nav := range def.NavigationProperties {
			if nav.Name == "" || nav.Type == "" {
				errs.Add(ErrMalformedMetadata, "NavigationProperty", def.Name+"."+nav.Name, "missing Name or Type attribute")
				continue
			}
			et.navigation = append(et.navigation, newProperty(csdl.Property{Name: nav.Name, Type: nav.Type}, s, def.Name))
		}
		s.entityTypes[et.name] = et
		s.entityOrder = append(s.entityOrder, et)
	}

	checkComplexGraph(s, o.maxDepth, errs)

	if errs.HasErrors() {
		return nil, errs
	}

	logUnresolved(s, o.logger)
	o.logger.Info("schema built",
		zap.String("namespace", s.namespace),
		zap.Int("entity_types", len(s.entityOrder)),
		zap.Int("complex_types", len(s.complexOrder)),
	)

	return s, nil
}

func buildProperties(st *structure, defs []csdl.Property, s *Schema, errs *MetadataErrors) {
	for _, def := range defs {
		switch {
		case def.Name == "":
			errs.Add(ErrMalformedMetadata, "Property", st.name, "property missing Name attribute")
			continue
		case def.Type == "":
			errs.Add(ErrMalformedMetadata, "Property", st.name+"."+def.Name, "missing Type attribute")
			continue
		case st.HasProperty(def.Name):
			errs.Add(ErrMalformedMetadata, "Property", st.name+"."+def.Name, "declared more than once")
			continue
		}
		st.add(newProperty(def, s, st.name))
	}
}

// checkComplexGraph rejects reference cycles and nesting deeper than
// maxDepth, so conversion and rule derivation always terminate.
func checkComplexGraph(s *Schema, maxDepth int, errs *MetadataErrors) {
	graph := newComplexTypeGraph(s.complexTypes)

	if cycles := graph.detectCycles(); len(cycles) > 0 {
		for _, cycle := range cycles {
			errs.Add(ErrComplexTypeCycle, "ComplexType", cycle[0], "%s", formatCycle(cycle))
		}
		return
	}

	depths := graph.depths()
	for _, name := range graph.nodes {
		if d := depths[name]; d > maxDepth {
			errs.Add(ErrNestingTooDeep, "ComplexType", name, "nesting depth %d exceeds %d", d, maxDepth)
		}
	}
}

func logUnresolved(s *Schema, logger *zap.Logger) {
	check := func(props []*Property) {
		for _, p := range props {
			if p.ref.Kind != edm.KindComplex {
				continue
			}
			if _, ok := s.complexTypes[p.ref.Complex]; !ok {
				logger.Debug("unresolved complex type, values pass through",
					zap.String("owner", p.owner),
					zap.String("property", p.name),
					zap.String("type", p.ref.Raw),
				)
			}
		}
	}
	for _, ct := range s.complexOrder {
		check(ct.properties)
	}
	for _, et := range s.entityOrder {
		check(et.properties)
	}
}
