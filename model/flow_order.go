package model

const warningNoStartEvent = "no start event found"

// buildFlowOrder traverses the sequence flows depth-first, starting at the first start event in document order.
// Each element is visited once. A sequence flow, leading to an already visited element, is recorded as loop target.
func buildFlowOrder(r *Result) {
	var start *Element
	for _, id := range r.ElementIds {
		if element := r.Elements[id]; element.Type == ElementStartEvent {
			start = element
			break
		}
	}

	if start == nil {
		r.Warnings = append(r.Warnings, warningNoStartEvent)
		return
	}

	positions := make(map[string]int) // element ID to 1-based position within the flow order

	visit := func(element *Element, level int) *flowOrderFrame {
		r.FlowOrder = append(r.FlowOrder, newFlowOrderItem(r, element, level))
		positions[element.Id] = len(r.FlowOrder)

		return &flowOrderFrame{element: element, item: len(r.FlowOrder) - 1}
	}

	stack := []*flowOrderFrame{visit(start, 0)}
	for len(stack) != 0 {
		frame := stack[len(stack)-1]
		if frame.next == len(frame.element.Outgoing) {
			stack = stack[:len(stack)-1]
			continue
		}

		flowId := frame.element.Outgoing[frame.next]
		frame.next++

		flow, ok := r.Flows[flowId]
		if !ok {
			continue
		}
		successor, ok := r.Elements[flow.Target]
		if !ok {
			continue // dangling target
		}

		item := &r.FlowOrder[frame.item]
		if position, ok := positions[successor.Id]; ok {
			item.LoopTarget = position
			item.LoopTargets = append(item.LoopTargets, position)
			continue
		}

		level := item.Level
		if item.Divergent() {
			level++
		}

		stack = append(stack, visit(successor, level))
	}
}

func newFlowOrderItem(r *Result, element *Element, level int) FlowOrderItem {
	item := FlowOrderItem{
		Id:      element.Id,
		Type:    element.Type,
		Name:    element.Name,
		Actor:   r.Lanes[element.Id],
		Systems: element.Systems,
		Level:   level,
	}

	if !element.Type.IsGateway() {
		return item
	}

	divergent := len(element.Outgoing) > 1
	convergent := len(element.Incoming) > 1

	item.IsDivergent = &divergent
	item.IsConvergent = &convergent

	if divergent {
		for _, flowId := range element.Outgoing {
			flow, ok := r.Flows[flowId]
			if !ok {
				continue
			}

			item.Branches = append(item.Branches, Branch{
				Name:      flow.Name,
				Condition: flow.Condition,
				Target:    flow.Target,
			})
		}
	}

	return item
}

// flowOrderFrame replaces a recursive call, visiting the outgoing sequence flows of an element one by one.
type flowOrderFrame struct {
	element *Element
	item    int // index of the element's item
	next    int // index of the next outgoing sequence flow
}
