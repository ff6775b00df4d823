package models

import "github.com/google/uuid"

// Exercise is a catalog entry. Built-in exercises ship with the system
// and are immutable; custom ones are owned by CreatedBy.
type Exercise struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Muscles     []string   `json:"muscles"`
	Gadgets     []string   `json:"gadgets"`
	IsCustom    bool       `json:"isCustom"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
}

// Gadget is a piece of equipment in the catalog.
type Gadget struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsCustom    bool       `json:"isCustom"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
}

// ExerciseDraft is the caller-supplied part of a new custom exercise.
type ExerciseDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Muscles     []string `json:"muscles"`
	Gadgets     []string `json:"gadgets"`
}

// GadgetDraft is the caller-supplied part of a new custom gadget.
type GadgetDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
