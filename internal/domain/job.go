// Package domain defines the core types passed between the pipeline stages.
package domain

import "time"

// SalaryUnit is the payout interval a salary figure refers to.
type SalaryUnit string

const (
	SalaryHour  SalaryUnit = "HOUR"
	SalaryMonth SalaryUnit = "MONTH"
	SalaryYear  SalaryUnit = "YEAR"
)

// NormalizedJob is the provider-agnostic, in-memory shape every adapter
// produces. It is never persisted directly.
type NormalizedJob struct {
	Source      string     `json:"source"`
	SourceID    string     `json:"sourceId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompanyName string     `json:"companyName,omitempty"`
	City        string     `json:"city,omitempty"`
	PostalCode  string     `json:"postalCode,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	SalaryMin   *float64   `json:"salaryMin,omitempty"`
	SalaryMax   *float64   `json:"salaryMax,omitempty"`
	SalaryUnit  SalaryUnit `json:"salaryUnit"`
	Category    string     `json:"category"`
	CategoryTag string     `json:"categoryTag"`
	ExternalURL string     `json:"externalUrl"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	TitleHash   string     `json:"titleHash"`
	Slug        string     `json:"slug"`
}

// ExternalJob is the persisted mirror of a remote listing. The natural key is
// (source, source_id); title_hash is indexed for cross-source dedup lookups.
type ExternalJob struct {
	ID          int64      `db:"id"            json:"id"`
	Source      string     `db:"source"        json:"source"`
	SourceID    string     `db:"source_id"     json:"sourceId"`
	Title       string     `db:"title"         json:"title"`
	Description string     `db:"description"   json:"description"`
	CompanyName *string    `db:"company_name"  json:"companyName,omitempty"`
	City        *string    `db:"city"          json:"city,omitempty"`
	PostalCode  *string    `db:"postal_code"   json:"postalCode,omitempty"`
	Latitude    *float64   `db:"latitude"      json:"latitude,omitempty"`
	Longitude   *float64   `db:"longitude"     json:"longitude,omitempty"`
	SalaryMin   *float64   `db:"salary_min"    json:"salaryMin,omitempty"`
	SalaryMax   *float64   `db:"salary_max"    json:"salaryMax,omitempty"`
	SalaryUnit  string     `db:"salary_unit"   json:"salaryUnit"`
	Category    string     `db:"category"      json:"category"`
	CategoryTag string     `db:"category_tag"  json:"categoryTag"`
	ExternalURL string     `db:"external_url"  json:"externalUrl"`
	PublishedAt *time.Time `db:"published_at"  json:"publishedAt,omitempty"`
	TitleHash   string     `db:"title_hash"    json:"titleHash"`
	Slug        string     `db:"slug"          json:"slug"`
	JobType     string     `db:"job_type"      json:"jobType"`
	PortalID    int        `db:"portal_id"     json:"portalId"`
	IsActive    bool       `db:"is_active"     json:"isActive"`
	LastSeenAt  time.Time  `db:"last_seen_at"  json:"lastSeenAt"`
	ExpiresAt   time.Time  `db:"expires_at"    json:"expiresAt"`
	CreatedAt   time.Time  `db:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at"    json:"updatedAt"`
}
