package model

// BPMN 2.0 namespace URIs.
const (
	NamespaceBpmn   = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	NamespaceBpmnDi = "http://www.omg.org/spec/BPMN/20100524/DI"
	NamespaceDc     = "http://www.omg.org/spec/DD/20100524/DC"
	NamespaceDi     = "http://www.omg.org/spec/DD/20100524/DI"
)

// namespace returns the URI for one of the well known prefixes "bpmn", "bpmndi", "dc" or "di".
// For any other prefix an empty string is returned.
func namespace(prefix string) string {
	switch prefix {
	case "bpmn":
		return NamespaceBpmn
	case "bpmndi":
		return NamespaceBpmnDi
	case "dc":
		return NamespaceDc
	case "di":
		return NamespaceDi
	default:
		return ""
	}
}

// isModelNamespace reports whether space denotes BPMN model elements.
// Documents without namespace declarations are accepted as well.
func isModelNamespace(space string) bool {
	return space == NamespaceBpmn || space == ""
}
