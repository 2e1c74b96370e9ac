package export

// Dataset is the renderer-agnostic tabular shape produced by the dashboard
// export endpoints.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
