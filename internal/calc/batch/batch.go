package batch

import (
	"fmt"

	"Glasschek/internal/calc/design"
	"Glasschek/internal/interlayer"
)

type Input struct {
	Items []design.Request `json:"items"`
}

type Result struct {
	Reports []design.Report `json:"reports"`
}

// Calculate evaluates a batch of design requests. Like a single request,
// the batch is all-or-nothing: one failing item aborts the whole run.
func Calculate(table *interlayer.Table, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Reports: make([]design.Report, 0, len(in.Items))}
	for _, item := range in.Items {
		report, err := design.Evaluate(table, item)
		if err != nil {
			return Result{}, err
		}
		out.Reports = append(out.Reports, report)
	}
	return out, nil
}
