// Package model provides the entities of the review metrics engine.
package model

import "time"

// Author identifies a GitLab user.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// SameAs reports whether a and other are the same person.
// IDs win when both are known; usernames are the fallback.
func (a Author) SameAs(other Author) bool {
	if a.ID != 0 && other.ID != 0 {
		return a.ID == other.ID
	}
	return a.Username != "" && a.Username == other.Username
}

// MergeRequest is the slice of a GitLab merge request the engine needs.
type MergeRequest struct {
	// IID is the project-scoped identifier used in API paths.
	IID       int        `json:"iid"`
	ProjectID int        `json:"project_id"`
	Author    Author     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}

// IsMerged reports whether the merge request has a merge timestamp.
func (mr MergeRequest) IsMerged() bool {
	return mr.MergedAt != nil
}

// Key uniquely identifies a merge request across projects.
type Key struct {
	ProjectID int `json:"project_id"`
	IID       int `json:"iid"`
}

// Key returns the cross-project identity of mr.
func (mr MergeRequest) Key() Key {
	return Key{ProjectID: mr.ProjectID, IID: mr.IID}
}
