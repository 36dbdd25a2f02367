package model

import (
	"os"
	"testing"
)

func mustCreateResult(t *testing.T, fileName string) *Result {
	fileName = "../test/bpmn/" + fileName

	bpmnXml, err := os.ReadFile(fileName)
	if err != nil {
		t.Fatalf("failed to read BPMN file %s: %v", fileName, err)
	}

	result, err := New(bpmnXml)
	if err != nil {
		t.Fatalf("failed to extract BPMN XML: %v", err)
	}

	return result
}

func mustLoad(t *testing.T, bpmnXml string) *Document {
	document, err := Load([]byte(bpmnXml), 0)
	if err != nil {
		t.Fatalf("failed to load BPMN XML: %v", err)
	}
	return document
}

func boolPtr(b bool) *bool {
	return &b
}

func flowOrderIds(result *Result) []string {
	ids := make([]string, len(result.FlowOrder))
	for i, item := range result.FlowOrder {
		ids[i] = item.Id
	}
	return ids
}
