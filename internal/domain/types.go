// Package domain defines the normalized domain types for GitHub Projects v2.
// These types represent the core concepts independent of the GitHub GraphQL API structure.
package domain

// FieldType constants for the five supported field data types.
const (
	FieldTypeText         = "TEXT"
	FieldTypeNumber       = "NUMBER"
	FieldTypeDate         = "DATE"
	FieldTypeSingleSelect = "SINGLE_SELECT"
	FieldTypeIteration    = "ITERATION"
)

// Field represents a project field definition with its metadata.
// Options is populated only for SINGLE_SELECT fields, Configuration
// only for ITERATION fields.
type Field struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	DataType      string                  `json:"dataType"`
	Options       []Option                `json:"options,omitempty"`
	Configuration *IterationConfiguration `json:"configuration,omitempty"`
}

// Option represents a single option value for a SINGLE_SELECT field.
// Name is the human-facing key; ID is the opaque mutation argument.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IterationConfiguration holds the two ordered iteration sets of an
// ITERATION field. Titles are the human-facing keys.
type IterationConfiguration struct {
	CompletedIterations []Iteration `json:"completedIterations"`
	Iterations          []Iteration `json:"iterations"`
}

// Iteration represents one iteration of an ITERATION field.
type Iteration struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FieldValue is the discriminated value payload for the
// updateProjectV2ItemFieldValue mutation. Exactly one member is set;
// constructing more than one is a defect.
type FieldValue struct {
	Text                 *string  `json:"text,omitempty"`
	Number               *float64 `json:"number,omitempty"`
	Date                 *string  `json:"date,omitempty"`
	SingleSelectOptionID *string  `json:"singleSelectOptionId,omitempty"`
	IterationID          *string  `json:"iterationId,omitempty"`
}

// Item type discriminators as returned by the API.
const (
	ItemTypeDraftIssue  = "DRAFT_ISSUE"
	ItemTypeIssue       = "ISSUE"
	ItemTypePullRequest = "PULL_REQUEST"
	ItemTypeRedacted    = "REDACTED"
)

// Item is a project item in its projected form: an opaque id, the
// content type, and a flat mapping from field display name to scalar
// value. The mapping is the evaluation context handed to user scripts,
// so its keys are field names, never field ids.
type Item struct {
	ID          string
	Type        string
	FieldValues map[string]any
}
