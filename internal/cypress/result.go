package cypress

// Status reports what a transform did.
type Status string

const (
	StatusInjected          Status = "injected"
	StatusAlreadyConfigured Status = "already_configured"
	StatusUnresolved        Status = "unresolved"
)

func (s Status) String() string { return string(s) }

// Result carries the transformed source and the reason it looks the way it does.
// Content equals the input unless Status is StatusInjected.
type Result struct {
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// Changed reports whether the transform modified the source.
func (r Result) Changed() bool { return r.Status == StatusInjected }

func unchanged(content string, status Status) Result {
	return Result{Content: content, Status: status}
}
