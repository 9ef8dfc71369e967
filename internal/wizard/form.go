// Package wizard implements the multi-step job submission workflow: a
// linear state machine that collects a job type, generic metadata, and a
// job-type-specific parameter set, validating each step client-side before
// handing a well-formed payload to the job queue.
package wizard

// FormData is the accumulated wizard input. The controller owns the
// canonical copy; panels receive a copy and send changes back as intents,
// never by mutating shared state.
type FormData struct {
	JobName     string
	Description string
	Parameters  map[string]interface{}
}

// Clone returns a copy with its own parameter map.
func (f FormData) Clone() FormData {
	params := make(map[string]interface{}, len(f.Parameters))
	for k, v := range f.Parameters {
		params[k] = v
	}
	f.Parameters = params
	return f
}

// CloneParams returns a copy of a parameter map. Panel change helpers use
// this so the caller's map is never written through.
func CloneParams(params map[string]interface{}) map[string]interface{} {
	next := make(map[string]interface{}, len(params))
	for k, v := range params {
		next[k] = v
	}
	return next
}
