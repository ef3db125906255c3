package openapiform

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formtable/pkg/formspec"
	"github.com/goliatone/go-formtable/pkg/input"
)

// WidgetExtension selects the input type for a property.
const WidgetExtension = "x-formtable-widget"

const defaultMaxDepth = 8

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrNoRequestBody is returned when the operation has no usable body schema.
	ErrNoRequestBody = errors.New("operation has no request body schema")
)

var mediaTypePreference = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Option customises the conversion.
type Option func(*config)

type config struct {
	registry *input.Registry
	labeler  formspec.Labeler
	maxDepth int
}

// WithRegistry resolves input types from reg.
func WithRegistry(reg *input.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithLabeler derives labels for properties without a title.
func WithLabeler(labeler formspec.Labeler) Option {
	return func(cfg *config) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithMaxDepth bounds fieldset nesting. Deeper objects are dropped.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// Inputs loads the document and converts the request body of operationID.
// Operations without an operationId match "method:path", e.g. "post:/posts".
func Inputs(ctx context.Context, data []byte, operationID string, options ...Option) ([]input.Descriptor, error) {
	cfg := &config{
		registry: input.DefaultRegistry(),
		labeler:  formspec.DefaultLabeler,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	op, err := findOperation(spec, operationID)
	if err != nil {
		return nil, err
	}
	schema := requestSchema(op)
	if schema == nil {
		return nil, fmt.Errorf("openapiform: %s: %w", operationID, ErrNoRequestBody)
	}

	conv := &converter{cfg: cfg, visiting: make(map[*openapi3.Schema]bool)}
	return conv.properties(schema, "", 0)
}

// OperationIDs lists the operations that carry a request body, sorted.
func OperationIDs(ctx context.Context, data []byte) ([]string, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	var ids []string
	eachOperation(spec, func(id string, op *openapi3.Operation) bool {
		if requestSchema(op) != nil {
			ids = append(ids, id)
		}
		return true
	})
	slices.Sort(ids)
	return ids, nil
}

func load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapiform: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapiform: load document: %w", err)
	}
	return spec, nil
}

func eachOperation(spec *openapi3.T, fn func(id string, op *openapi3.Operation) bool) {
	if spec.Paths == nil {
		return
	}
	paths := spec.Paths.Map()
	for _, path := range slices.Sorted(maps.Keys(paths)) {
		item := paths[path]
		if item == nil {
			continue
		}
		operations := item.Operations()
		for _, method := range slices.Sorted(maps.Keys(operations)) {
			op := operations[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !fn(id, op) {
				return
			}
		}
	}
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	var found *openapi3.Operation
	eachOperation(spec, func(id string, op *openapi3.Operation) bool {
		if id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("openapiform: %q: %w", operationID, ErrOperationNotFound)
	}
	return found, nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mediaType := range slices.Sorted(maps.Keys(content)) {
		if mt := content[mediaType]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type converter struct {
	cfg      *config
	visiting map[*openapi3.Schema]bool
}

func (c *converter) properties(schema *openapi3.Schema, prefix string, depth int) ([]input.Descriptor, error) {
	if c.visiting[schema] {
		return nil, nil
	}
	c.visiting[schema] = true
	defer delete(c.visiting, schema)

	out := make([]input.Descriptor, 0, len(schema.Properties))
	for _, name := range slices.Sorted(maps.Keys(schema.Properties)) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
			continue
		}
		prop := ref.Value
		field := name
		if prefix != "" {
			field = prefix + "[" + name + "]"
		}

		if schemaType(prop) == openapi3.TypeObject && widget(prop) == "" {
			if len(prop.Properties) == 0 || depth+1 >= c.cfg.maxDepth || c.visiting[prop] {
				continue
			}
			children, err := c.properties(prop, field, depth+1)
			if err != nil {
				return nil, err
			}
			container := input.NewContainer(field).SetLegend(c.label(name, prop))
			container.Add(children...)
			out = append(out, container)
			continue
		}

		kind := inputType(prop)
		if kind == "" {
			continue
		}
		leaf, err := c.cfg.registry.New(kind, field)
		if err != nil {
			return nil, fmt.Errorf("openapiform: property %q: %w", field, err)
		}
		c.decorate(leaf, name, prop, slices.Contains(schema.Required, name))
		out = append(out, leaf)
	}
	return out, nil
}

func (c *converter) label(name string, prop *openapi3.Schema) string {
	if prop.Title != "" {
		return prop.Title
	}
	return c.cfg.labeler(name)
}

func (c *converter) decorate(leaf *input.Leaf, name string, prop *openapi3.Schema, required bool) {
	if !leaf.Hidden() {
		leaf.SetLabel(c.label(name, prop))
	}
	leaf.SetDescription(prop.Description).SetRequired(required)

	for _, value := range prop.Enum {
		option := fmt.Sprint(value)
		leaf.AddOption(option, option)
	}

	switch def := prop.Default.(type) {
	case nil:
	case bool:
		if def {
			leaf.SetAttribute("checked", "")
		}
	default:
		leaf.SetValue(fmt.Sprint(def))
	}

	if prop.Min != nil {
		leaf.SetAttribute("min", formatNumber(*prop.Min))
	}
	if prop.Max != nil {
		leaf.SetAttribute("max", formatNumber(*prop.Max))
	}
	if schemaType(prop) == openapi3.TypeInteger {
		leaf.SetAttribute("step", "1")
	}
	if prop.MaxLength != nil {
		leaf.SetAttribute("maxlength", strconv.FormatUint(*prop.MaxLength, 10))
	}
	if prop.Pattern != "" {
		leaf.SetAttribute("pattern", prop.Pattern)
	}
}

func inputType(prop *openapi3.Schema) string {
	if w := widget(prop); w != "" {
		return w
	}
	if len(prop.Enum) > 0 {
		return input.TypeSelect
	}
	switch schemaType(prop) {
	case openapi3.TypeBoolean:
		return input.TypeCheckbox
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return input.TypeNumber
	case openapi3.TypeString, "":
		switch prop.Format {
		case "password":
			return input.TypePassword
		case "email":
			return input.TypeEmail
		case "binary":
			return input.TypeFile
		}
		return input.TypeText
	default:
		// arrays and unions have no single control
		return ""
	}
}

func widget(prop *openapi3.Schema) string {
	value, ok := prop.Extensions[WidgetExtension].(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(value))
}

func schemaType(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	if len(values) != 1 {
		return strings.Join(values, ",")
	}
	return values[0]
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
