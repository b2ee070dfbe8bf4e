package ad

type CreateAdRequest struct {
	CompanyID      string         `json:"company_id" binding:"required"`
	Title          string         `json:"title" binding:"required,max=200"`
	Description    string         `json:"description" binding:"required"`
	Category       string         `json:"category" binding:"required,max=80"`
	CategoryFields CategoryFields `json:"category_fields"`
}

// UpdateAdRequest patches a draft; nil fields are left unchanged.
type UpdateAdRequest struct {
	CompanyID      *string         `json:"company_id"`
	Title          *string         `json:"title" binding:"omitempty,max=200"`
	Description    *string         `json:"description"`
	Category       *string         `json:"category" binding:"omitempty,max=80"`
	CategoryFields *CategoryFields `json:"category_fields"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type ListQuery struct {
	Status     string `form:"status"`
	EmployerID string `form:"employer_id"`
	CompanyID  string `form:"company_id"`
	Search     string `form:"q"`
}

type AdResponse struct {
	ID             string         `json:"id"`
	ReferenceNo    string         `json:"reference_no"`
	EmployerID     string         `json:"employer_id"`
	CompanyID      string         `json:"company_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	CategoryFields CategoryFields `json:"category_fields"`
	Status         string         `json:"status"`
	SubmittedAt    *string        `json:"submitted_at,omitempty"`
	ApprovedAt     *string        `json:"approved_at,omitempty"`
	ApprovedBy     *string        `json:"approved_by,omitempty"`
	RejectedAt     *string        `json:"rejected_at,omitempty"`
	RejectedBy     *string        `json:"rejected_by,omitempty"`
	RejectionNotes string         `json:"rejection_notes,omitempty"`
	ArchivedAt     *string        `json:"archived_at,omitempty"`
	ArchivedBy     *string        `json:"archived_by,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}
