package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInvalidXml(t *testing.T) {
	tests := map[string]string{
		"empty":               "",
		"no element":          "#",
		"end tag mismatch":    "<process></process1>",
		"unclosed element":    "<definitions><process>",
		"multiple roots":      "<definitions /><definitions />",
		"invalid utf-8":       "<definitions name=\"\xff\" />",
		"unsupported charset": `<?xml version="1.0" encoding="x-unknown"?><definitions />`,
	}

	for name, bpmnXml := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(bpmnXml), 0)
			require.Error(t, err)

			var modelErr Error
			require.True(t, errors.As(err, &modelErr), "expected model error")
			assert.Equal(t, ErrorParse, modelErr.Type)
		})
	}
}

func TestLoadMaxDepth(t *testing.T) {
	assert := assert.New(t)

	bpmnXml := "<a><b><c><d /></c></b></a>"

	_, err := Load([]byte(bpmnXml), 3)
	assert.ErrorContains(err, "maximum depth of 3")

	_, err = Load([]byte(bpmnXml), 4)
	assert.NoError(err)

	deep := strings.Repeat("<a>", defaultMaxDepth+1) + strings.Repeat("</a>", defaultMaxDepth+1)

	_, err = Load([]byte(deep), 0)
	assert.ErrorContains(err, "maximum depth of 256")
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	document := mustLoad(t, `
		<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:x="urn:x" id="definitions">
			<bpmn:process id="process" name="Process">
				<bpmn:documentation>  text  </bpmn:documentation>
				<bpmn:task id="task" />
				<x:task id="extension" />
				<bpmn:task id="task" name="duplicate" />
			</bpmn:process>
		</bpmn:definitions>
	`)

	root := document.Root
	assert.Equal(NamespaceBpmn, root.Name.Space)
	assert.Equal("definitions", root.Name.Local)
	assert.Equal("{http://www.omg.org/spec/BPMN/20100524/MODEL}definitions", root.QualifiedName())
	assert.Nil(root.Parent)

	processes := document.FindAll(ElementProcess)
	require.Len(t, processes, 1)

	process := processes[0]
	assert.Equal("Process", process.Attribute("name"))
	assert.Equal("", process.Attribute("unknown"))
	assert.Equal(root, process.Parent)
	assert.Equal("text", process.Child(ElementDocumentation).Text())
	assert.Nil(process.Child(ElementLaneSet))

	tasks := process.ChildrenByType(ElementTask)
	require.Len(t, tasks, 2)
	assert.Equal("", tasks[0].Attribute("name"))
	assert.Equal("duplicate", tasks[1].Attribute("name"))

	assert.Len(process.Descendants(), 4)
	assert.Len(root.DescendantsByType(ElementTask), 2)

	t.Run("node by id", func(t *testing.T) {
		assert.Equal(root, document.NodeById("definitions"))
		assert.Equal(process, document.NodeById("process"))
		assert.Equal(tasks[0], document.NodeById("task"))
		assert.Equal("urn:x", document.NodeById("extension").Name.Space)
		assert.Nil(document.NodeById("unknown"))
	})
}

func TestLoadWithoutNamespace(t *testing.T) {
	assert := assert.New(t)

	document := mustLoad(t, `<definitions><process id="process"><startEvent id="startEvent" /></process></definitions>`)

	process := document.NodeById("process")
	assert.True(process.Is(ElementProcess))
	assert.Equal("process", process.QualifiedName())
	assert.NotNil(process.Child(ElementStartEvent))
}

func TestLoadUndeclaredPrefix(t *testing.T) {
	assert := assert.New(t)

	document := mustLoad(t, `
		<bpmn:definitions>
			<bpmn:process id="process">
				<bpmn:task id="task" />
				<bpmndi:BPMNDiagram id="diagram" />
				<xsi:any id="any" />
			</bpmn:process>
		</bpmn:definitions>
	`)

	process := document.NodeById("process")
	assert.True(process.Is(ElementProcess))
	assert.Equal(NamespaceBpmn, process.Name.Space)
	assert.True(document.NodeById("task").Is(ElementTask))
	assert.Equal(NamespaceBpmnDi, document.NodeById("diagram").Name.Space)
	assert.Equal("xsi", document.NodeById("any").Name.Space)
}

func TestLoadLatin1(t *testing.T) {
	assert := assert.New(t)

	for _, encoding := range []string{"ISO-8859-1", "windows-1252"} {
		bpmnXml := `<?xml version="1.0" encoding="` + encoding + `"?>
			<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
				<process id="process" name="Caf` + "\xe9" + `"><task id="task" name="x" /></process>
			</definitions>`

		document, err := Load([]byte(bpmnXml), 0)
		require.NoError(t, err, encoding)

		assert.Equal("Café", document.NodeById("process").Attribute("name"), encoding)
	}

	result, err := New([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">` +
		"<process id=\"process\" name=\"Caf\xe9\"><task id=\"task\" name=\"x\" /></process>" +
		`</definitions>`))
	require.NoError(t, err)

	assert.Equal("Café", result.Title)
}
