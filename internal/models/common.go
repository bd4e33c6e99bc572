package models

// Status mirrors domain.Status at the storage layer.
type Status string

const (
	Active   Status = "ACTIVE"
	Inactive Status = "INACTIVE"
)
