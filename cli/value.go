package cli

import (
	"fmt"
	"strings"
)

type output int

const (
	outputJson output = iota + 1
	outputYaml
	outputTable
)

// outputValue is a custom flag value for an output format.
type outputValue output

func (v *outputValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "json":
		*v = outputValue(outputJson)
	case "yaml":
		*v = outputValue(outputYaml)
	case "table":
		*v = outputValue(outputTable)
	default:
		return fmt.Errorf("invalid output %s, expected json, yaml or table", s)
	}
	return nil
}

func (v outputValue) String() string {
	switch output(v) {
	case outputJson:
		return "json"
	case outputYaml:
		return "yaml"
	case outputTable:
		return "table"
	default:
		return ""
	}
}

func (v outputValue) Type() string {
	return "output"
}
