package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gclaussn/go-bpmn-extract/model"
)

func formatErrorResult(errorResult model.ErrorResult) string {
	var sb strings.Builder
	sb.WriteString("error: ")
	sb.WriteString(errorResult.Error)
	sb.WriteRune('\n')
	formatWarnings(&sb, errorResult.Warnings)
	return sb.String()
}

// formatResult formats title, objective, flow order and warnings of a result.
func formatResult(result *model.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("title:     %s\n", result.Title))
	sb.WriteString(fmt.Sprintf("objective: %s\n", result.Objective))
	sb.WriteRune('\n')

	table := newTable([]string{
		"#",
		"ID",
		"TYPE",
		"NAME",
		"ACTOR",
		"LEVEL",
		"GATEWAY",
		"LOOP TARGETS",
		"SYSTEMS",
	})

	for i, item := range result.FlowOrder {
		var gateway []string
		if item.Divergent() {
			gateway = append(gateway, fmt.Sprintf("divergent (%d)", len(item.Branches)))
		}
		if item.Convergent() {
			gateway = append(gateway, "convergent")
		}

		loopTargets := make([]string, len(item.LoopTargets))
		for j, loopTarget := range item.LoopTargets {
			loopTargets[j] = strconv.Itoa(loopTarget)
		}

		table.addRow([]string{
			strconv.Itoa(i + 1),
			item.Id,
			item.Type.String(),
			item.Name,
			item.Actor,
			strconv.Itoa(item.Level),
			strings.Join(gateway, ","),
			strings.Join(loopTargets, ","),
			strings.Join(item.Systems, ","),
		})
	}

	sb.WriteString(table.format())
	formatWarnings(&sb, result.Warnings)

	return sb.String()
}

func formatWarnings(sb *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	sb.WriteString("\nwarnings:\n")
	for _, warning := range warnings {
		sb.WriteString("- ")
		sb.WriteString(warning)
		sb.WriteRune('\n')
	}
}

func newTable(headers []string) table {
	rows := make([][]string, 2)
	rows[0] = headers
	rows[1] = make([]string, len(headers))

	return table{rows: rows}
}

type table struct {
	rows [][]string
}

func (t *table) addRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *table) format() string {
	rows := t.rows

	columns := make([]int, len(rows[0]))
	for i := 0; i < len(rows); i++ {
		for j := 0; j < len(columns); j++ {
			l := utf8.RuneCountInString(rows[i][j])
			if columns[j] < l {
				columns[j] = l
			}
		}
	}

	var sb strings.Builder
	for i := 0; i < len(rows); i++ {
		for j := 0; j < len(columns); j++ {
			if j != 0 {
				sb.WriteString("   ")
			}

			value := rows[i][j]
			sb.WriteString(value)

			l := utf8.RuneCountInString(value)
			for k := 0; k < columns[j]-l; k++ {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
