package httpx

// APIResponse is the envelope of every public API endpoint.
// AlreadySubmitted marks the dedicated terminal outcome for an address that
// already holds a SENT record; it is never mixed with field errors.
type APIResponse struct {
	Success          bool     `json:"success"`
	Data             any      `json:"data,omitempty"`
	Errors           []string `json:"errors,omitempty"`
	AlreadySubmitted bool     `json:"alreadySubmitted,omitempty"`
}

func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func Fail(errors ...string) APIResponse {
	return APIResponse{Success: false, Errors: errors}
}

func AlreadySubmitted() APIResponse {
	return APIResponse{Success: false, AlreadySubmitted: true}
}
