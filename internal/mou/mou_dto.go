package mou

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type CreateMOURequest struct {
	EmployerID string          `json:"employer_id" binding:"required"`
	FeeType    string          `json:"fee_type" binding:"required,oneof=FIXED PERCENTAGE"`
	FeeValue   decimal.Decimal `json:"fee_value"`
	SignedAt   time.Time       `json:"signed_at" binding:"required"`
	ValidUntil *time.Time      `json:"valid_until"`
}

type DocumentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MOUResponse struct {
	ID            string  `json:"id"`
	EmployerID    string  `json:"employer_id"`
	BranchAdminID string  `json:"branch_admin_id"`
	FeeType       string  `json:"fee_type"`
	FeeValue      string  `json:"fee_value"`
	SignedAt      string  `json:"signed_at"`
	ValidUntil    *string `json:"valid_until"`
	IsActive      bool    `json:"is_active"`
	IsValid       bool    `json:"is_valid"`
	Version       int     `json:"version"`
	DocumentKey   *string `json:"document_key,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type MouStatusResponse struct {
	EmployerID   string       `json:"employer_id"`
	HasActiveMou bool         `json:"has_active_mou"`
	ActiveMOU    *MOUResponse `json:"active_mou,omitempty"`
	CheckedAt    string       `json:"checked_at"`
}
