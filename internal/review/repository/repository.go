// Package repository provides read access to merge requests and notes on GitLab.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/xanzy/go-gitlab"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Repository defines the data the report needs from the hosting API.
type Repository interface {
	// ListMergeRequests returns merge requests of a project created inside (createdAfter, createdBefore).
	ListMergeRequests(ctx context.Context, projectID int, createdAfter, createdBefore time.Time) ([]model.MergeRequest, error)

	// ListNotes returns every note of a merge request.
	ListNotes(ctx context.Context, mr model.Key) ([]model.Note, error)

	// ListDiscussionNotes returns the notes of every discussion thread of a merge request.
	ListDiscussionNotes(ctx context.Context, mr model.Key) ([]model.Note, error)

	// Ping checks that the API answers.
	Ping(ctx context.Context) error
}

type repository struct {
	client  *gitlab.Client
	perPage int
	logger  *zap.SugaredLogger
}

// New creates a GitLab backed repository.
func New(client *gitlab.Client, perPage int, logger *zap.SugaredLogger) Repository {
	return &repository{
		client:  client,
		perPage: perPage,
		logger:  logger,
	}
}

// ListMergeRequests returns merge requests of a project created inside the window.
func (r *repository) ListMergeRequests(
	ctx context.Context, projectID int, createdAfter, createdBefore time.Time,
) ([]model.MergeRequest, error) {
	r.logger.Debugw("ListMergeRequests called",
		"project_id", projectID,
		"created_after", createdAfter,
		"created_before", createdBefore,
	)

	raw, err := collectPages(ctx, func(ctx context.Context, page int) ([]*gitlab.MergeRequest, int, error) {
		opts := &gitlab.ListProjectMergeRequestsOptions{
			ListOptions:   gitlab.ListOptions{PerPage: r.perPage, Page: page},
			CreatedAfter:  gitlab.Ptr(createdAfter),
			CreatedBefore: gitlab.Ptr(createdBefore),
		}
		mrs, resp, err := r.client.MergeRequests.ListProjectMergeRequests(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, 0, err
		}
		return mrs, resp.NextPage, nil
	})
	if err != nil {
		r.logger.Errorw("ListMergeRequests failed", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("%w: merge requests of project %d: %w", model.ErrFetchFailed, projectID, err)
	}

	result := make([]model.MergeRequest, 0, len(raw))
	for _, mr := range raw {
		if mr == nil {
			continue
		}
		result = append(result, toMergeRequest(mr, projectID))
	}

	r.logger.Debugw("ListMergeRequests completed", "project_id", projectID, "count", len(result))
	return result, nil
}

// ListNotes returns every note of a merge request.
func (r *repository) ListNotes(ctx context.Context, mr model.Key) ([]model.Note, error) {
	r.logger.Debugw("ListNotes called", "project_id", mr.ProjectID, "iid", mr.IID)

	raw, err := collectPages(ctx, func(ctx context.Context, page int) ([]*gitlab.Note, int, error) {
		opts := &gitlab.ListMergeRequestNotesOptions{
			ListOptions: gitlab.ListOptions{PerPage: r.perPage, Page: page},
		}
		notes, resp, err := r.client.Notes.ListMergeRequestNotes(mr.ProjectID, mr.IID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, 0, err
		}
		return notes, resp.NextPage, nil
	})
	if err != nil {
		r.logger.Errorw("ListNotes failed", "project_id", mr.ProjectID, "iid", mr.IID, "error", err)
		return nil, fmt.Errorf("%w: notes of merge request %d!%d: %w", model.ErrFetchFailed, mr.ProjectID, mr.IID, err)
	}

	result := make([]model.Note, 0, len(raw))
	for _, n := range raw {
		if n == nil {
			continue
		}
		result = append(result, toNote(n, mr))
	}

	r.logger.Debugw("ListNotes completed", "project_id", mr.ProjectID, "iid", mr.IID, "count", len(result))
	return result, nil
}

// ListDiscussionNotes returns the notes of every discussion thread of a merge request.
func (r *repository) ListDiscussionNotes(ctx context.Context, mr model.Key) ([]model.Note, error) {
	r.logger.Debugw("ListDiscussionNotes called", "project_id", mr.ProjectID, "iid", mr.IID)

	raw, err := collectPages(ctx, func(ctx context.Context, page int) ([]*gitlab.Discussion, int, error) {
		opts := &gitlab.ListMergeRequestDiscussionsOptions{PerPage: r.perPage, Page: page}
		discussions, resp, err := r.client.Discussions.ListMergeRequestDiscussions(
			mr.ProjectID, mr.IID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, 0, err
		}
		return discussions, resp.NextPage, nil
	})
	if err != nil {
		r.logger.Errorw("ListDiscussionNotes failed", "project_id", mr.ProjectID, "iid", mr.IID, "error", err)
		return nil, fmt.Errorf("%w: discussions of merge request %d!%d: %w", model.ErrFetchFailed, mr.ProjectID, mr.IID, err)
	}

	var result []model.Note
	for _, d := range raw {
		if d == nil {
			continue
		}
		for _, n := range d.Notes {
			if n == nil {
				continue
			}
			result = append(result, toNote(n, mr))
		}
	}

	r.logger.Debugw("ListDiscussionNotes completed", "project_id", mr.ProjectID, "iid", mr.IID, "count", len(result))
	return result, nil
}

// Ping checks that the API answers the version endpoint.
func (r *repository) Ping(ctx context.Context) error {
	if _, _, err := r.client.Version.GetVersion(gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: version: %w", model.ErrFetchFailed, err)
	}
	return nil
}

func toMergeRequest(mr *gitlab.MergeRequest, projectID int) model.MergeRequest {
	result := model.MergeRequest{
		IID:       mr.IID,
		ProjectID: mr.ProjectID,
		MergedAt:  mr.MergedAt,
	}
	if result.ProjectID == 0 {
		result.ProjectID = projectID
	}
	if mr.Author != nil {
		result.Author = model.Author{
			ID:       mr.Author.ID,
			Username: mr.Author.Username,
			Name:     mr.Author.Name,
		}
	}
	if mr.CreatedAt != nil {
		result.CreatedAt = *mr.CreatedAt
	}
	return result
}

func toNote(n *gitlab.Note, mr model.Key) model.Note {
	result := model.Note{
		ID: n.ID,
		Author: model.Author{
			ID:       n.Author.ID,
			Username: n.Author.Username,
			Name:     n.Author.Name,
		},
		Body:         n.Body,
		System:       n.System,
		Type:         model.NoteType(n.Type),
		MergeRequest: mr,
	}
	if n.CreatedAt != nil {
		result.CreatedAt = *n.CreatedAt
	}
	return result
}
