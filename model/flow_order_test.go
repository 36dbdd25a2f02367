package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowOrderLoop(t *testing.T) {
	assert := assert.New(t)

	// when
	result := mustCreateResult(t, "loop.bpmn")

	// then
	require.Equal(t, []string{"startEvent", "fork", "taskA", "endEvent", "taskB"}, flowOrderIds(result))

	fork := result.FlowOrder[1]
	assert.Equal(ElementExclusiveGateway, fork.Type)
	assert.Equal(0, fork.Level)
	assert.True(fork.Divergent())
	assert.True(fork.Convergent())
	assert.Equal([]Branch{
		{Name: "yes", Condition: "${approved}", Target: "taskA"},
		{Name: "no", Condition: "${!approved}", Target: "taskB"},
	}, fork.Branches)
	assert.Equal(0, fork.LoopTarget)

	assert.Equal(1, result.FlowOrder[2].Level)
	assert.Equal(1, result.FlowOrder[3].Level)

	taskB := result.FlowOrder[4]
	assert.Equal(1, taskB.Level)
	assert.Equal(2, taskB.LoopTarget)
	assert.Equal([]int{2}, taskB.LoopTargets)

	assert.Empty(result.Warnings)
}

func TestFlowOrderSubProcess(t *testing.T) {
	assert := assert.New(t)

	// when
	result := mustCreateResult(t, "sub-process.bpmn")

	// then
	assert.Equal("Sub process", result.Title)
	assert.Contains(result.Elements, "scriptTask")
	assert.Equal(ElementScriptTask, result.Elements["scriptTask"].Type)
	assert.Equal([]string{"sf1"}, result.Elements["scriptTask"].Incoming)

	require.Equal(t, []string{"startEvent", "fork", "subProcess", "join", "endEvent", "sendTask"}, flowOrderIds(result))

	levels := make([]int, len(result.FlowOrder))
	for i, item := range result.FlowOrder {
		levels[i] = item.Level
	}
	assert.Equal([]int{0, 0, 1, 1, 1, 1}, levels)

	fork := result.FlowOrder[1]
	assert.True(fork.Divergent())
	assert.Equal(new(bool), fork.IsConvergent)
	assert.Len(fork.Branches, 2)

	join := result.FlowOrder[3]
	assert.Equal(new(bool), join.IsDivergent)
	assert.True(join.Convergent())
	assert.Empty(join.Branches)

	// sequence flow to an element, which has already been visited via another branch
	sendTask := result.FlowOrder[5]
	assert.Equal(4, sendTask.LoopTarget)

	assert.Equal([]string{
		"gateway without a name: fork",
		"gateway without a name: join",
	}, result.Warnings)
}

func TestFlowOrderNoStartEvent(t *testing.T) {
	assert := assert.New(t)

	// when
	result := mustCreateResult(t, "no-start-event.bpmn")

	// then
	assert.Empty(result.FlowOrder)
	assert.NotNil(result.FlowOrder)
	assert.Equal([]string{warningNoStartEvent}, result.Warnings)
	assert.Len(result.Flows, 1)
}

func TestFlowOrderMultipleLoopTargets(t *testing.T) {
	assert := assert.New(t)

	result, err := New([]byte(`
		<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
			<process id="process">
				<startEvent id="startEvent"><outgoing>f1</outgoing></startEvent>
				<task id="taskA" name="A">
					<incoming>f1</incoming>
					<outgoing>f2</outgoing>
				</task>
				<task id="taskB" name="B">
					<incoming>f2</incoming>
					<outgoing>f3</outgoing>
					<outgoing>f4</outgoing>
				</task>
				<sequenceFlow id="f1" sourceRef="startEvent" targetRef="taskA" />
				<sequenceFlow id="f2" sourceRef="taskA" targetRef="taskB" />
				<sequenceFlow id="f3" sourceRef="taskB" targetRef="startEvent" />
				<sequenceFlow id="f4" sourceRef="taskB" targetRef="taskA" />
			</process>
		</definitions>
	`))
	require.NoError(t, err)

	require.Equal(t, []string{"startEvent", "taskA", "taskB"}, flowOrderIds(result))

	taskB := result.FlowOrder[2]
	assert.Nil(taskB.IsDivergent) // no gateway
	assert.Nil(taskB.IsConvergent)
	assert.Nil(taskB.Branches)
	assert.Equal(2, taskB.LoopTarget)
	assert.Equal([]int{1, 2}, taskB.LoopTargets)
}

func TestFlowOrderUnresolvable(t *testing.T) {
	assert := assert.New(t)

	result, err := New([]byte(`
		<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
			<process id="process">
				<startEvent id="startEvent">
					<outgoing>unknown</outgoing>
					<outgoing>f1</outgoing>
					<outgoing>f2</outgoing>
				</startEvent>
				<inclusiveGateway id="gateway" name="Which?">
					<incoming>f2</incoming>
					<outgoing>f3</outgoing>
					<outgoing>f4</outgoing>
					<outgoing>missing</outgoing>
				</inclusiveGateway>
				<endEvent id="endEvent"><incoming>f4</incoming></endEvent>
				<sequenceFlow id="f1" sourceRef="startEvent" targetRef="nowhere" />
				<sequenceFlow id="f2" sourceRef="startEvent" targetRef="gateway" />
				<sequenceFlow id="f3" name="dangling" sourceRef="gateway" targetRef="nowhere" />
				<sequenceFlow id="f4" sourceRef="gateway" targetRef="endEvent" />
			</process>
		</definitions>
	`))
	require.NoError(t, err)

	require.Equal(t, []string{"startEvent", "gateway", "endEvent"}, flowOrderIds(result))

	gateway := result.FlowOrder[1]
	assert.True(gateway.Divergent())
	assert.Equal([]Branch{
		{Name: "dangling", Target: "nowhere"},
		{Target: "endEvent"},
	}, gateway.Branches)

	assert.Equal(1, result.FlowOrder[2].Level)
	assert.Equal("nowhere", result.Flows["f1"].Target)
}

func TestFlowOrderFirstStartEvent(t *testing.T) {
	result, err := New([]byte(`
		<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
			<process id="process">
				<startEvent id="startEventA" />
				<startEvent id="startEventB"><outgoing>f1</outgoing></startEvent>
				<task id="task" name="Task"><incoming>f1</incoming></task>
				<sequenceFlow id="f1" sourceRef="startEventB" targetRef="task" />
			</process>
		</definitions>
	`))
	require.NoError(t, err)

	assert.Equal(t, []string{"startEventA"}, flowOrderIds(result))
}

func TestFlowOrderGatewayFlags(t *testing.T) {
	assert := assert.New(t)

	result, err := New([]byte(`
		<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
			<process id="process">
				<startEvent id="startEvent"><outgoing>f1</outgoing></startEvent>
				<exclusiveGateway id="gateway" name="Pass">
					<incoming>f1</incoming>
					<outgoing>f2</outgoing>
				</exclusiveGateway>
				<endEvent id="endEvent"><incoming>f2</incoming></endEvent>
				<sequenceFlow id="f1" sourceRef="startEvent" targetRef="gateway" />
				<sequenceFlow id="f2" sourceRef="gateway" targetRef="endEvent" />
			</process>
		</definitions>
	`))
	require.NoError(t, err)

	require.Equal(t, []string{"startEvent", "gateway", "endEvent"}, flowOrderIds(result))

	gateway := result.FlowOrder[1]
	assert.False(gateway.Divergent())
	assert.False(gateway.Convergent())
	assert.Equal(0, result.FlowOrder[2].Level)

	b, err := json.Marshal(gateway)
	require.NoError(t, err)
	assert.Contains(string(b), `"is_divergent":false`)
	assert.Contains(string(b), `"is_convergent":false`)

	b, err = json.Marshal(result.FlowOrder[0])
	require.NoError(t, err)
	assert.NotContains(string(b), "is_divergent")
	assert.NotContains(string(b), "is_convergent")
}
