package datamodel

// FailureModel is the serializable form of a failure.
type FailureModel struct {
	Name    *string `json:"name,omitempty"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

func (f FailureModel) Error() string {
	return f.Message
}
