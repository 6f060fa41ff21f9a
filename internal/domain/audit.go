package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records a single mutation for traceability. Audit writes are
// best-effort: a failed audit insert never fails the business operation.
type AuditLog struct {
	ID           string
	OwnerID      string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionAccountCreate AuditAction = "account.create"
	AuditActionAccountUpdate AuditAction = "account.update"
	AuditActionAccountDelete AuditAction = "account.delete"

	AuditActionTransactionCreate AuditAction = "transaction.create"
	AuditActionTransactionUpdate AuditAction = "transaction.update"
	AuditActionTransactionDelete AuditAction = "transaction.delete"

	AuditActionCategoryCreate AuditAction = "category.create"
	AuditActionCategoryDelete AuditAction = "category.delete"

	AuditActionBudgetCreate AuditAction = "budget.create"
	AuditActionBudgetDelete AuditAction = "budget.delete"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
