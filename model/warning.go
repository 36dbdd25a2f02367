package model

import "fmt"

// generateWarnings reports tasks and gateways without name as well as tasks without lane.
// Elements are checked in document order.
func generateWarnings(r *Result) {
	hasLanes := len(r.Lanes) != 0

	for _, id := range r.ElementIds {
		element := r.Elements[id]

		if element.Type.IsTask() {
			if element.Name == "" {
				r.Warnings = append(r.Warnings, fmt.Sprintf("activity without a name: %s", element.Id))
			}

			if _, ok := r.Lanes[element.Id]; hasLanes && !ok {
				r.Warnings = append(r.Warnings, fmt.Sprintf("activity without an identified actor: %s", displayName(element)))
			}
		}

		if element.Type.IsGateway() && element.Name == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("gateway without a name: %s", element.Id))
		}
	}
}

func displayName(element *Element) string {
	if element.Name != "" {
		return element.Name
	}
	return element.Id
}
