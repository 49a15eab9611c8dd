package request

// RenderRequest selects the output of an invoice or report.
type RenderRequest struct {
	// Format is json or a print layout (58mm, 80mm, a5, a4).
	Format string `form:"format"`
	// Download sends a PDF as an attachment instead of inline.
	Download bool `form:"download"`
}

// PrintRequest is the request body for sending an invoice to the printer.
type PrintRequest struct {
	Layout string `json:"layout" binding:"omitempty,oneof=58mm 80mm a5 a4"`
}
