package model

import "strings"

// ElementType is the local tag name of a BPMN element, e.g. "task", "startEvent" or "exclusiveGateway".
type ElementType string

const (
	ElementAssociation        ElementType = "association"
	ElementChildLaneSet       ElementType = "childLaneSet"
	ElementConditionExpr      ElementType = "conditionExpression"
	ElementDataInputAssoc     ElementType = "dataInputAssociation"
	ElementDataOutputAssoc    ElementType = "dataOutputAssociation"
	ElementDataStoreReference ElementType = "dataStoreReference"
	ElementDocumentation      ElementType = "documentation"
	ElementEndEvent           ElementType = "endEvent"
	ElementExclusiveGateway   ElementType = "exclusiveGateway"
	ElementFlowNodeRef        ElementType = "flowNodeRef"
	ElementIncoming           ElementType = "incoming"
	ElementLane               ElementType = "lane"
	ElementLaneSet            ElementType = "laneSet"
	ElementManualTask         ElementType = "manualTask"
	ElementOutgoing           ElementType = "outgoing"
	ElementParallelGateway    ElementType = "parallelGateway"
	ElementProcess            ElementType = "process"
	ElementReceiveTask        ElementType = "receiveTask"
	ElementScriptTask         ElementType = "scriptTask"
	ElementSendTask           ElementType = "sendTask"
	ElementSequenceFlow       ElementType = "sequenceFlow"
	ElementServiceTask        ElementType = "serviceTask"
	ElementSourceRef          ElementType = "sourceRef"
	ElementStartEvent         ElementType = "startEvent"
	ElementTargetRef          ElementType = "targetRef"
	ElementTask               ElementType = "task"
	ElementText               ElementType = "text"
	ElementTextAnnotation     ElementType = "textAnnotation"
	ElementUserTask           ElementType = "userTask"
)

// scorable lists the substrings of a qualified tag, which make an element relevant for the process selection.
// The match is case-sensitive.
var scorable = []string{"task", "event", "gateway", "sequenceFlow"}

// IsGateway reports whether the type denotes any kind of gateway.
func (v ElementType) IsGateway() bool {
	return strings.Contains(strings.ToLower(string(v)), "gateway")
}

// IsTask reports whether the type denotes a task kind, which is expected to have a name and an actor.
func (v ElementType) IsTask() bool {
	switch v {
	case
		ElementTask,
		ElementUserTask,
		ElementServiceTask,
		ElementManualTask,
		ElementScriptTask,
		ElementSendTask,
		ElementReceiveTask:
		return true
	default:
		return false
	}
}

func (v ElementType) String() string {
	return string(v)
}
