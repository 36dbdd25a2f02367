package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gclaussn/go-bpmn-extract/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExtractCmd(cli *Cli) *cobra.Command {
	var (
		bpmnFileName string
		indent       bool
		outputV      = outputValue(outputJson)
	)

	c := cobra.Command{
		Use:   "extract",
		Short: "Extract elements, flows and the flow order of a BPMN process",
		Long: `Extract elements, flows and the flow order of the most relevant BPMN process.

BPMN XML is read from a file or from stdin, when the file name is "-".`,
		RunE: func(c *cobra.Command, _ []string) error {
			bpmnXml, err := readBpmnFile(c, bpmnFileName)
			if err != nil {
				return err
			}

			result, err := cli.extractor.Extract(context.Background(), bpmnXml)
			if err != nil {
				var modelErr model.Error
				if !errors.As(err, &modelErr) {
					return err
				}

				if err := writeOutput(c.OutOrStdout(), output(outputV), model.NewErrorResult(err), indent); err != nil {
					return err
				}
				return err
			}

			return writeOutput(c.OutOrStdout(), output(outputV), result, indent)
		},
	}

	c.Flags().StringVar(&bpmnFileName, "bpmn-file", "", "Path to a BPMN XML file or - to read from stdin")
	c.Flags().BoolVar(&indent, "indent", false, "Indent JSON output")
	c.Flags().VarP(&outputV, "output", "o", "Output format: json, yaml or table")

	c.MarkFlagRequired("bpmn-file")

	c.MarkFlagFilename("bpmn-file", ".bpmn", ".bpmn20.xml", ".xml")

	return &c
}

func readBpmnFile(c *cobra.Command, bpmnFileName string) ([]byte, error) {
	if bpmnFileName == "-" {
		bpmnXml, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read BPMN XML from stdin: %v", err)
		}
		return bpmnXml, nil
	}

	bpmnFile, err := os.Open(bpmnFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open BPMN file %s: %v", bpmnFileName, err)
	}

	defer bpmnFile.Close()

	bpmnXml, err := io.ReadAll(bpmnFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read BPMN XML: %v", err)
	}

	return bpmnXml, nil
}

// writeOutput writes a [*model.Result] or a [model.ErrorResult] in the given output format.
func writeOutput(w io.Writer, o output, v any, indent bool) error {
	switch o {
	case outputYaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %v", err)
		}
		return encoder.Close()
	case outputTable:
		var s string
		switch v := v.(type) {
		case *model.Result:
			s = formatResult(v)
		case model.ErrorResult:
			s = formatErrorResult(v)
		}
		_, err := io.WriteString(w, s)
		return err
	default:
		encoder := json.NewEncoder(w)
		if indent {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %v", err)
		}
		return nil
	}
}
