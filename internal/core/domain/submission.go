package domain

import "strings"

// InputField identifies a single field of the submission form.
type InputField string

const (
	// FieldCompanyName is the company name form field.
	FieldCompanyName InputField = "company_name"
	// FieldWebsite is the company website form field.
	FieldWebsite InputField = "website"
)

// SubmissionInput is the company identifier submitted for enrichment.
// Both fields are required non-empty; no further validation is applied.
type SubmissionInput struct {
	CompanyName string `json:"companyName"`
	Website     string `json:"website"`
}

// Set merges a single field value into the input. Unknown fields are
// ignored so stray UI events cannot corrupt the form state.
func (in *SubmissionInput) Set(field InputField, value string) {
	switch field {
	case FieldCompanyName:
		in.CompanyName = value
	case FieldWebsite:
		in.Website = value
	}
}

// Complete reports whether every required field is filled in.
// Whitespace-only values do not count as filled.
func (in SubmissionInput) Complete() bool {
	return strings.TrimSpace(in.CompanyName) != "" && strings.TrimSpace(in.Website) != ""
}

// Empty reports whether the input holds no data at all.
func (in SubmissionInput) Empty() bool {
	return in.CompanyName == "" && in.Website == ""
}
