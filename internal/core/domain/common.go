package domain

// Status is the lifecycle flag shared by every entity. Records are never hard
// deleted; retiring one flips its status to INACTIVE and the read paths treat
// it as absent.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)
