package bulk

type ApproveRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type RejectRequest struct {
	IDs   []string `json:"ids" binding:"required"`
	Notes string   `json:"notes"`
}

type Failure struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Result lists outcomes in the order the ids were given.
type Result struct {
	Succeeded []string  `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}
