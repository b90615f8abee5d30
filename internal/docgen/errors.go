package docgen

import "fmt"

// ValidationError reports an order projection that cannot be rendered
// (missing supplier, no line items, empty currency, unknown entity).
// Surfaced before any assembly starts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid order projection: " + e.Reason
}

// TemplateLoadError reports a failure to fetch or parse the template for a
// variant. Fatal for the render; the engine never retries.
type TemplateLoadError struct {
	Variant string
	Err     error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("loading template for %s: %v", e.Variant, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// LayoutOverflowError reports more line items than the fixed single-page
// item table can hold. The order is rejected rather than rendered with
// rows overlapping the totals block.
type LayoutOverflowError struct {
	Rows    int
	MaxRows int
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("order has %d line items but the template fits %d rows", e.Rows, e.MaxRows)
}
