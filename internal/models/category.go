package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is a user-defined collection kept videos are filed under.
// Created on demand during review.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks that the category carries a usable name.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is empty")
	}
	return nil
}

// NormalizedName returns the trimmed name used for uniqueness checks.
func (c Category) NormalizedName() string {
	return strings.TrimSpace(c.Name)
}
