package model

import (
	"errors"
	"slices"
	"strings"
)

// New extracts a normalized model from BPMN XML.
//
// The process with the most tasks, events, gateways and sequence flows is selected.
// Starting at the first start event, the sequence flows are traversed to determine the flow order.
// Naming and ownership omissions are reported as warnings.
//
// If the XML is not well-formed or no suitable process exists, an [Error] is returned.
func New(bpmnXml []byte, customizers ...func(*Options)) (*Result, error) {
	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	document, err := Load(bpmnXml, options.MaxDepth)
	if err != nil {
		return nil, err
	}

	process, err := selectProcess(document)
	if err != nil {
		return nil, err
	}

	e := extractor{
		document: document,
		process:  process,
		result: &Result{
			Elements:    make(map[string]*Element),
			Flows:       make(map[string]*Flow),
			Lanes:       make(map[string]string),
			DataStores:  make(map[string]string),
			Annotations: []Annotation{},
			FlowOrder:   []FlowOrderItem{},
			Warnings:    []string{},
		},
	}

	e.extractProcess()
	e.extractElements()
	e.extractSequenceFlowRefs()
	e.extractLanes()
	e.extractSequenceFlows()
	e.extractDataStores()
	e.resolveDataAssociations()
	e.extractAnnotations()

	result := e.result
	buildFlowOrder(result)
	generateWarnings(result)

	return result, nil
}

func NewOptions() Options {
	return Options{
		MaxDepth: defaultMaxDepth,
	}
}

type Options struct {
	MaxDepth int // Maximum nesting depth of XML elements. If 0, a default of 256 is used.
}

func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return errors.New("max depth must be greater than or equal to 0")
	}
	return nil
}

// Result is the model, extracted from a BPMN XML document.
type Result struct {
	Title       string              `json:"title" yaml:"title"`
	Objective   string              `json:"objective" yaml:"objective"`
	Elements    map[string]*Element `json:"elements" yaml:"elements"`
	Flows       map[string]*Flow    `json:"flows" yaml:"flows"`
	Lanes       map[string]string   `json:"lanes" yaml:"lanes"` // Element ID to lane name.
	DataStores  map[string]string   `json:"data_stores" yaml:"data_stores"`
	Annotations []Annotation        `json:"annotations" yaml:"annotations"`
	FlowOrder   []FlowOrderItem     `json:"flow_order" yaml:"flow_order"`
	Warnings    []string            `json:"warnings" yaml:"warnings"`

	// IDs of all elements in document order.
	ElementIds []string `json:"-" yaml:"-"`
}

// ErrorResult is the error-shaped counterpart of a [Result].
type ErrorResult struct {
	Error    string   `json:"error" yaml:"error"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Error: err.Error()}
}

func selectProcess(document *Document) (*Node, error) {
	processes := document.FindAll(ElementProcess)
	if len(processes) == 0 {
		return nil, Error{Type: ErrorStructure, Detail: "no process found"}
	}

	var (
		selected      *Node
		selectedScore int
	)

	for _, process := range processes {
		if score := scoreProcess(process); score > selectedScore {
			selected = process
			selectedScore = score
		}
	}

	if selected == nil {
		return nil, Error{Type: ErrorStructure, Detail: "no process with elements found"}
	}

	return selected, nil
}

func scoreProcess(process *Node) int {
	score := 0
	for _, node := range process.Descendants() {
		qualifiedName := node.QualifiedName()
		for _, s := range scorable {
			if strings.Contains(qualifiedName, s) {
				score++
				break
			}
		}
	}
	return score
}

type extractor struct {
	document *Document
	process  *Node
	result   *Result
}

func (e *extractor) extractProcess() {
	e.result.Title = e.process.Attribute("name")

	if documentation := e.process.Child(ElementDocumentation); documentation != nil {
		e.result.Objective = documentation.Text()
	}
}

func (e *extractor) extractElements() {
	for _, node := range e.process.Descendants() {
		id := node.Attribute("id")
		if id == "" {
			continue
		}
		if _, ok := e.result.Elements[id]; ok {
			continue
		}

		e.result.Elements[id] = &Element{
			Id:       id,
			Type:     ElementType(node.Name.Local),
			Name:     node.Attribute("name"),
			Incoming: []string{},
			Outgoing: []string{},
		}
		e.result.ElementIds = append(e.result.ElementIds, id)
	}
}

func (e *extractor) extractSequenceFlowRefs() {
	for _, id := range e.result.ElementIds {
		node := e.document.NodeById(id)
		if node == nil {
			continue
		}

		element := e.result.Elements[id]
		element.Incoming = appendTexts(element.Incoming, node.ChildrenByType(ElementIncoming))
		element.Outgoing = appendTexts(element.Outgoing, node.ChildrenByType(ElementOutgoing))
	}
}

func (e *extractor) extractLanes() {
	laneSet := e.process.Child(ElementLaneSet)
	if laneSet == nil {
		return
	}

	laneSets := []*Node{laneSet}
	for len(laneSets) != 0 {
		laneSet := laneSets[0]
		laneSets = laneSets[1:]

		for _, lane := range laneSet.ChildrenByType(ElementLane) {
			laneName := lane.Attribute("name")
			for _, flowNodeRef := range lane.ChildrenByType(ElementFlowNodeRef) {
				if id := flowNodeRef.Text(); id != "" {
					e.result.Lanes[id] = laneName
				}
			}

			// lanes of a child lane set are more specific
			if childLaneSet := lane.Child(ElementChildLaneSet); childLaneSet != nil {
				laneSets = append(laneSets, childLaneSet)
			}
		}
	}
}

func (e *extractor) extractSequenceFlows() {
	for _, node := range e.process.DescendantsByType(ElementSequenceFlow) {
		flow := Flow{
			Id:     node.Attribute("id"),
			Source: node.Attribute("sourceRef"),
			Target: node.Attribute("targetRef"),
			Name:   node.Attribute("name"),
		}

		if conditionExpression := node.Child(ElementConditionExpr); conditionExpression != nil {
			flow.Condition = conditionExpression.Text()
		}

		e.result.Flows[flow.Id] = &flow
	}
}

func (e *extractor) extractDataStores() {
	for _, node := range e.document.FindAll(ElementDataStoreReference) {
		e.result.DataStores[node.Attribute("id")] = node.Attribute("name")
	}
}

func (e *extractor) resolveDataAssociations() {
	for _, id := range e.result.ElementIds {
		node := e.document.NodeById(id)
		if node == nil {
			continue
		}

		var refs []*Node
		for _, association := range node.ChildrenByType(ElementDataInputAssoc) {
			refs = append(refs, association.ChildrenByType(ElementSourceRef)...)
		}
		for _, association := range node.ChildrenByType(ElementDataOutputAssoc) {
			refs = append(refs, association.ChildrenByType(ElementTargetRef)...)
		}

		var systems []string
		for _, ref := range refs {
			name, ok := e.result.DataStores[ref.Text()]
			if !ok || slices.Contains(systems, name) {
				continue
			}
			systems = append(systems, name)
		}

		e.result.Elements[id].Systems = systems
	}
}

func (e *extractor) extractAnnotations() {
	texts := make(map[string]string)
	for _, node := range e.document.FindAll(ElementTextAnnotation) {
		var text string
		if textNode := node.Child(ElementText); textNode != nil {
			text = textNode.Text()
		}
		texts[node.Attribute("id")] = text
	}

	if len(texts) == 0 {
		return
	}

	for _, association := range e.document.FindAll(ElementAssociation) {
		sourceRef := association.Attribute("sourceRef")
		targetRef := association.Attribute("targetRef")

		var (
			text      string
			elementId string
		)

		if t, ok := texts[targetRef]; ok {
			text, elementId = t, sourceRef
		} else if t, ok := texts[sourceRef]; ok {
			text, elementId = t, targetRef
		} else {
			continue
		}

		annotation := Annotation{
			Text:      text,
			Element:   elementId,
			ElementId: elementId,
		}
		if element, ok := e.result.Elements[elementId]; ok && element.Name != "" {
			annotation.Element = element.Name
		}

		e.result.Annotations = append(e.result.Annotations, annotation)
	}
}

func appendTexts(values []string, nodes []*Node) []string {
	for _, node := range nodes {
		if text := node.Text(); text != "" {
			values = append(values, text)
		}
	}
	return values
}
