package model

// Element is a BPMN element of the selected process, carrying an id.
type Element struct {
	Id       string      `json:"id" yaml:"id"`
	Type     ElementType `json:"type" yaml:"type"`
	Name     string      `json:"name" yaml:"name"`
	Incoming []string    `json:"incoming" yaml:"incoming"` // IDs of incoming sequence flows.
	Outgoing []string    `json:"outgoing" yaml:"outgoing"` // IDs of outgoing sequence flows.

	// Names of the data stores, the element reads from or writes to.
	Systems []string `json:"systems,omitempty" yaml:"systems,omitempty"`
}

// Flow is a sequence flow. Source and target are the literal attribute values and may not denote an element.
type Flow struct {
	Id        string `json:"id" yaml:"id"`
	Source    string `json:"source" yaml:"source"`
	Target    string `json:"target" yaml:"target"`
	Name      string `json:"name" yaml:"name"`
	Condition string `json:"condition" yaml:"condition"`
}

// Annotation is a text annotation, associated with an element.
type Annotation struct {
	Text      string `json:"text" yaml:"text"`
	Element   string `json:"element" yaml:"element"` // Name of the element or its ID, if the element has no name.
	ElementId string `json:"element_id" yaml:"element_id"`
}

// FlowOrderItem is an element, visited while traversing the sequence flows from the start event.
type FlowOrderItem struct {
	Id      string      `json:"id" yaml:"id"`
	Type    ElementType `json:"type" yaml:"type"`
	Name    string      `json:"name" yaml:"name"`
	Actor   string      `json:"actor" yaml:"actor"` // Name of the element's lane.
	Systems []string    `json:"systems,omitempty" yaml:"systems,omitempty"`
	Level   int         `json:"level" yaml:"level"` // Number of divergent gateways passed.

	// gateway only, nil for any other element
	IsDivergent  *bool    `json:"is_divergent,omitempty" yaml:"is_divergent,omitempty"`
	IsConvergent *bool    `json:"is_convergent,omitempty" yaml:"is_convergent,omitempty"`
	Branches     []Branch `json:"branches,omitempty" yaml:"branches,omitempty"` // Outgoing branches of a divergent gateway.

	// 1-based position of an already visited item, which an outgoing sequence flow leads to.
	// If multiple sequence flows lead to visited items, the last one wins - see LoopTargets.
	LoopTarget int `json:"loop_target,omitempty" yaml:"loop_target,omitempty"`
	// 1-based positions of all already visited items, in the order of the outgoing sequence flows.
	LoopTargets []int `json:"loop_targets,omitempty" yaml:"loop_targets,omitempty"`
}

// Divergent reports whether the item is a gateway with more than one outgoing sequence flow.
func (i FlowOrderItem) Divergent() bool {
	return i.IsDivergent != nil && *i.IsDivergent
}

// Convergent reports whether the item is a gateway with more than one incoming sequence flow.
func (i FlowOrderItem) Convergent() bool {
	return i.IsConvergent != nil && *i.IsConvergent
}

// Branch is an outgoing sequence flow of a divergent gateway.
type Branch struct {
	Name      string `json:"name" yaml:"name"`
	Condition string `json:"condition" yaml:"condition"`
	Target    string `json:"target" yaml:"target"`
}
