package model

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const defaultMaxDepth = 256

// Load parses BPMN XML into a node tree and indexes all nodes, carrying an id attribute.
// If maxDepth is 0, a default of 256 is used.
func Load(bpmnXml []byte, maxDepth int) (*Document, error) {
	if maxDepth == 0 {
		maxDepth = defaultMaxDepth
	}

	decoder := xml.NewDecoder(bytes.NewReader(bpmnXml))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, newParseError(err, "failed to decode XML")
		}

		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) == maxDepth {
				return nil, newParseError(nil, "XML exceeds maximum depth of %d", maxDepth)
			}

			// resolve well known prefixes, which are not declared
			if space := namespace(t.Name.Space); space != "" {
				t.Name.Space = space
			}

			node := &Node{Name: t.Name, Attr: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, newParseError(nil, "XML contains more than one root element")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				node.Parent = parent
				parent.Children = append(parent.Children, node)
			}

			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				current := stack[len(stack)-1]
				current.text = append(current.text, t...)
			}
		}
	}

	if root == nil {
		return nil, newParseError(nil, "XML is empty")
	}
	if len(stack) != 0 {
		return nil, newParseError(nil, "XML element %s is not closed", stack[len(stack)-1].Name.Local)
	}

	document := Document{
		Root:     root,
		nodeById: make(map[string]*Node),
	}

	root.walk(func(node *Node) {
		id := node.Attribute("id")
		if id == "" {
			return
		}
		if _, ok := document.nodeById[id]; !ok {
			document.nodeById[id] = node
		}
	})

	return &document, nil
}

// Document is a parsed BPMN XML document.
type Document struct {
	Root *Node

	nodeById map[string]*Node
}

// FindAll returns all BPMN model elements of the given type in document order, including the root.
func (d *Document) FindAll(elementType ElementType) []*Node {
	var nodes []*Node
	d.Root.walk(func(node *Node) {
		if node.Is(elementType) {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// NodeById returns the first node in document order with the given id, or nil, if no such node exists.
func (d *Document) NodeById(id string) *Node {
	return d.nodeById[id]
}

// Node is an XML element.
type Node struct {
	Name xml.Name
	Attr []xml.Attr

	Parent   *Node
	Children []*Node

	text []byte
}

// Attribute returns the value of the attribute with the given local name or an empty string.
func (n *Node) Attribute(name string) string {
	for i := range n.Attr {
		if n.Attr[i].Name.Local == name {
			return n.Attr[i].Value
		}
	}
	return ""
}

// Child returns the first direct child of the given type, or nil, if no such child exists.
func (n *Node) Child(elementType ElementType) *Node {
	for _, child := range n.Children {
		if child.Is(elementType) {
			return child
		}
	}
	return nil
}

// ChildrenByType returns all direct children of the given type.
func (n *Node) ChildrenByType(elementType ElementType) []*Node {
	var children []*Node
	for _, child := range n.Children {
		if child.Is(elementType) {
			children = append(children, child)
		}
	}
	return children
}

// Descendants returns all descendants in document order, excluding the node itself.
func (n *Node) Descendants() []*Node {
	var nodes []*Node
	n.walk(func(node *Node) {
		if node != n {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// DescendantsByType returns all descendants of the given type in document order, excluding the node itself.
func (n *Node) DescendantsByType(elementType ElementType) []*Node {
	var nodes []*Node
	n.walk(func(node *Node) {
		if node != n && node.Is(elementType) {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// Is reports whether the node is a BPMN model element of the given type.
func (n *Node) Is(elementType ElementType) bool {
	return n.Name.Local == string(elementType) && isModelNamespace(n.Name.Space)
}

// QualifiedName returns the tag in the form {namespace}local or just local, if the tag has no namespace.
func (n *Node) QualifiedName() string {
	if n.Name.Space == "" {
		return n.Name.Local
	}
	return "{" + n.Name.Space + "}" + n.Name.Local
}

// Text returns the character data of the node, without leading and trailing white space.
func (n *Node) Text() string {
	return strings.TrimSpace(string(n.text))
}

// walk visits the node and all descendants in document order.
func (n *Node) walk(visit func(*Node)) {
	stack := []*Node{n}
	for len(stack) != 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(node)

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}
