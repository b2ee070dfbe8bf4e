package ad

import (
	"strings"

	"go-jobmarket/internal/shared/apperror"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

const maxSkills = 30

// CategoryFields is the typed shape of an ad's category-specific attributes,
// stored as jsonb.
type CategoryFields struct {
	SalaryMin      *int64         `json:"salary_min,omitempty"`
	SalaryMax      *int64         `json:"salary_max,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	EmploymentType EmploymentType `json:"employment_type"`
	Location       string         `json:"location,omitempty"`
	Remote         bool           `json:"remote"`
}

// Normalize trims strings, upper-cases enums and drops blank skills.
func (f CategoryFields) Normalize() CategoryFields {
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	f.EmploymentType = EmploymentType(strings.ToUpper(strings.TrimSpace(string(f.EmploymentType))))
	f.Location = strings.TrimSpace(f.Location)

	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	f.Skills = skills
	return f
}

func (f CategoryFields) Validate() error {
	if !f.EmploymentType.Valid() {
		return apperror.Validation("category_fields.employment_type", "must be one of FULL_TIME PART_TIME CONTRACT INTERNSHIP")
	}
	if f.SalaryMin != nil && *f.SalaryMin < 0 {
		return apperror.Validation("category_fields.salary_min", "must not be negative")
	}
	if f.SalaryMax != nil && *f.SalaryMax < 0 {
		return apperror.Validation("category_fields.salary_max", "must not be negative")
	}
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return apperror.Validation("category_fields.salary_min", "must not exceed salary_max")
	}
	if (f.SalaryMin != nil || f.SalaryMax != nil) && len(f.Currency) != 3 {
		return apperror.Validation("category_fields.currency", "must be a 3-letter code when a salary is given")
	}
	if len(f.Skills) > maxSkills {
		return apperror.Validation("category_fields.skills", "must not list more than 30 skills")
	}
	if !f.Remote && f.Location == "" {
		return apperror.Validation("category_fields.location", "is required for on-site ads")
	}
	return nil
}
