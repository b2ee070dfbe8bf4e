package employer

type RegisterEmployerRequest struct {
	Name  string `json:"name" binding:"required,max=150"`
	Email string `json:"email" binding:"required,email"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type ListQuery struct {
	Status string `form:"status"`
	Search string `form:"q"`
}

type CreateCompanyRequest struct {
	Name               string `json:"name" binding:"required,max=150"`
	Industry           string `json:"industry" binding:"max=100"`
	RegistrationType   string `json:"registration_type"`
	RegistrationNumber string `json:"registration_number" binding:"max=100"`
}

type EmployerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	StatusNotes string  `json:"status_notes,omitempty"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	Version     int     `json:"version"`
	CreatedAt   string  `json:"created_at"`
}

type CompanyResponse struct {
	ID                 string `json:"id"`
	EmployerID         string `json:"employer_id"`
	Name               string `json:"name"`
	Industry           string `json:"industry"`
	RegistrationType   string `json:"registration_type,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	CreatedAt          string `json:"created_at"`
}
