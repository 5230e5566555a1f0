package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"blogai/pkg/domain"
)

type openAPIDoc struct {
	Paths      map[string]map[string]operation `yaml:"paths"`
	Components struct {
		Schemas map[string]schema `yaml:"schemas"`
	} `yaml:"components"`
}

type operation struct {
	RequestBody *struct {
		Content map[string]mediaType `yaml:"content"`
	} `yaml:"requestBody"`
	Responses map[string]struct {
		Content map[string]mediaType `yaml:"content"`
	} `yaml:"responses"`
}

type mediaType struct {
	Schema schema `yaml:"schema"`
}

type schema struct {
	Type       string            `yaml:"type"`
	Ref        string            `yaml:"$ref"`
	Properties map[string]schema `yaml:"properties"`
	Required   []string          `yaml:"required"`
	Items      *schema           `yaml:"items"`
}

type schemaShape struct {
	Type       string
	Required   []string
	Properties map[string]propertyShape
}

type propertyShape struct {
	Type     string
	ItemsRef string
}

// wireTypes are the JSON bodies the service reads and writes.
var wireTypes = map[string]reflect.Type{
	"BlogRequest":   reflect.TypeOf(domain.BlogRequest{}),
	"BlogResponse":  reflect.TypeOf(domain.BlogResponse{}),
	"ErrorResponse": reflect.TypeOf(domain.ErrorResponse{}),
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <openapi.yaml>\n", os.Args[0])
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Stdout); err != nil {
		exitErr(err)
	}
}

func run(path string, out io.Writer) error {
	doc, err := loadDoc(path)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(wireTypes))
	for name := range wireTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s, err := getSchema(doc, name)
		if err != nil {
			return err
		}
		if err := ensureSameShape(name, shapeFromSchema(s), shapeFromType(wireTypes[name])); err != nil {
			return err
		}
	}
	if err := validateGenerateBlog(doc); err != nil {
		return err
	}
	fmt.Fprintln(out, "OpenAPI consistency check passed.")
	return nil
}

func loadDoc(path string) (openAPIDoc, error) {
	var doc openAPIDoc
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func getSchema(doc openAPIDoc, name string) (schema, error) {
	if doc.Components.Schemas == nil {
		return schema{}, errors.New("components.schemas missing")
	}
	s, ok := doc.Components.Schemas[name]
	if !ok {
		return schema{}, fmt.Errorf("schema %q missing", name)
	}
	return s, nil
}

func validateGenerateBlog(doc openAPIDoc) error {
	op, ok := doc.Paths["/generate_blog"]["post"]
	if !ok {
		return errors.New("paths./generate_blog.post missing")
	}
	if op.RequestBody == nil {
		return errors.New("POST /generate_blog requestBody missing")
	}
	if err := expectRef("POST /generate_blog requestBody", op.RequestBody.Content, "BlogRequest"); err != nil {
		return err
	}
	want := map[string]string{
		"200": "BlogResponse",
		"400": "ErrorResponse",
		"500": "ErrorResponse",
	}
	for status, name := range want {
		resp, ok := op.Responses[status]
		if !ok {
			return fmt.Errorf("POST /generate_blog response %s missing", status)
		}
		if err := expectRef("POST /generate_blog response "+status, resp.Content, name); err != nil {
			return err
		}
	}
	return nil
}

func expectRef(scope string, content map[string]mediaType, name string) error {
	media, ok := content["application/json"]
	if !ok {
		return fmt.Errorf("%s must have application/json content", scope)
	}
	if got := strings.TrimSpace(media.Schema.Ref); got != "#/components/schemas/"+name {
		return fmt.Errorf("%s must reference %s, got %q", scope, name, got)
	}
	return nil
}

func shapeFromSchema(s schema) schemaShape {
	out := schemaShape{
		Type:       s.Type,
		Required:   append([]string(nil), s.Required...),
		Properties: make(map[string]propertyShape, len(s.Properties)),
	}
	sort.Strings(out.Required)
	for name, prop := range s.Properties {
		shape := propertyShape{Type: prop.Type}
		if prop.Items != nil {
			shape.ItemsRef = strings.TrimSpace(prop.Items.Ref)
		}
		out.Properties[name] = shape
	}
	return out
}

// shapeFromType derives a schema shape from json struct tags. Fields without
// omitempty are required.
func shapeFromType(t reflect.Type) schemaShape {
	out := schemaShape{
		Type:       "object",
		Properties: make(map[string]propertyShape, t.NumField()),
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" || !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		out.Properties[name] = propertyShape{Type: jsonType(field.Type)}
		if !strings.Contains(opts, "omitempty") {
			out.Required = append(out.Required, name)
		}
	}
	sort.Strings(out.Required)
	return out
}

func jsonType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func ensureSameShape(name string, doc, code schemaShape) error {
	if doc.Type != code.Type {
		return fmt.Errorf("%s type mismatch: %q vs %q", name, doc.Type, code.Type)
	}
	if strings.Join(doc.Required, ",") != strings.Join(code.Required, ",") {
		return fmt.Errorf("%s required mismatch: %v vs %v", name, doc.Required, code.Required)
	}
	if len(doc.Properties) != len(code.Properties) {
		return fmt.Errorf("%s property count mismatch: %d vs %d", name, len(doc.Properties), len(code.Properties))
	}
	for key, docProp := range doc.Properties {
		codeProp, ok := code.Properties[key]
		if !ok {
			return fmt.Errorf("%s property %q is not in the Go type", name, key)
		}
		if docProp != codeProp {
			return fmt.Errorf("%s property %q mismatch: %+v vs %+v", name, key, docProp, codeProp)
		}
	}
	return nil
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
