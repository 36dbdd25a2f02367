package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateWarnings(t *testing.T) {
	newResult := func(lanes map[string]string, elements ...*Element) *Result {
		result := Result{
			Elements: make(map[string]*Element),
			Lanes:    lanes,
		}
		for _, element := range elements {
			result.Elements[element.Id] = element
			result.ElementIds = append(result.ElementIds, element.Id)
		}
		return &result
	}

	t.Run("without lanes", func(t *testing.T) {
		result := newResult(nil,
			&Element{Id: "task", Type: ElementTask},
			&Element{Id: "userTask", Type: ElementUserTask, Name: "User task"},
			&Element{Id: "receiveTask", Type: ElementReceiveTask},
			&Element{Id: "businessRuleTask", Type: "businessRuleTask"},
			&Element{Id: "eventBasedGateway", Type: "eventBasedGateway"},
			&Element{Id: "exclusiveGateway", Type: ElementExclusiveGateway, Name: "Approved?"},
			&Element{Id: "endEvent", Type: ElementEndEvent},
		)

		generateWarnings(result)

		assert.Equal(t, []string{
			"activity without a name: task",
			"activity without a name: receiveTask",
			"gateway without a name: eventBasedGateway",
		}, result.Warnings)
	})

	t.Run("with lanes", func(t *testing.T) {
		result := newResult(map[string]string{"manualTask": "Clerk"},
			&Element{Id: "manualTask", Type: ElementManualTask, Name: "Sign"},
			&Element{Id: "sendTask", Type: ElementSendTask, Name: "Send"},
			&Element{Id: "scriptTask", Type: ElementScriptTask},
			&Element{Id: "startEvent", Type: ElementStartEvent},
		)

		generateWarnings(result)

		assert.Equal(t, []string{
			"activity without an identified actor: Send",
			"activity without a name: scriptTask",
			"activity without an identified actor: scriptTask",
		}, result.Warnings)
	})
}

func TestElementType(t *testing.T) {
	assert := assert.New(t)

	assert.True(ElementExclusiveGateway.IsGateway())
	assert.True(ElementType("complexGateway").IsGateway())
	assert.True(ElementType("Gateway").IsGateway())
	assert.False(ElementTask.IsGateway())

	assert.True(ElementServiceTask.IsTask())
	assert.False(ElementType("businessRuleTask").IsTask())
	assert.False(ElementType("subProcess").IsTask())
	assert.False(ElementStartEvent.IsTask())
}

func TestErrorType(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("PARSE", ErrorParse.String())
	assert.Equal("STRUCTURE", ErrorStructure.String())
	assert.Equal("", ErrorType(0).String())
}
