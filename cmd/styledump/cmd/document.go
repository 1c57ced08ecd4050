package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/styling/pkg/dom"
)

// documentNode is the YAML shape of one element in a document description.
type documentNode struct {
	Tag        string            `yaml:"tag"`
	ID         string            `yaml:"id,omitempty"`
	Classes    string            `yaml:"classes,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	// Style holds inline declarations, e.g. "color: red; width: 10px".
	Style string `yaml:"style,omitempty"`
	// Pseudo lists pseudo-classes active on the element, e.g. [hover].
	Pseudo   []string       `yaml:"pseudo,omitempty"`
	Children []documentNode `yaml:"children,omitempty"`
}

// loadDocument reads a YAML document description and builds the element
// tree under doc's root.
func loadDocument(doc *dom.Document, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var root documentNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("document %s: %w", path, err)
	}
	applyNode(doc.Root(), &root)
	for i := range root.Children {
		if err := buildNode(doc, doc.Root(), &root.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func buildNode(doc *dom.Document, parent *dom.Element, node *documentNode) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("document node without a tag")
	}
	el := doc.NewElement(tag)
	applyNode(el, node)
	parent.AppendChild(el)
	for i := range node.Children {
		if err := buildNode(doc, el, &node.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func applyNode(el *dom.Element, node *documentNode) {
	if node.ID != "" {
		el.SetID(node.ID)
	}
	if node.Classes != "" {
		el.Style().SetClassNames(node.Classes)
	}
	for name, value := range node.Attributes {
		el.SetAttribute(name, value)
	}
	if node.Style != "" {
		applyInline(el, node.Style)
	}
	for _, pc := range node.Pseudo {
		el.Style().SetPseudoClass(pc, true)
	}
}

// applyInline parses "name: value; name: value" inline declarations.
// Malformed declarations are reported through the style error sink.
func applyInline(el *dom.Element, inline string) {
	for _, decl := range strings.Split(inline, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		el.Style().SetProperty(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}
