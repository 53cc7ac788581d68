package api

import (
	"context"
	"net/url"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func (c *Client) ListSubjects(ctx context.Context, branch string, semester string) ([]models.Subject, error) {
	query := url.Values{}
	if branch != "" {
		query.Set("branch", branch)
	}
	if semester != "" {
		query.Set("semester", semester)
	}

	var subjects []models.Subject
	err := c.get(ctx, "/resources/subjects", query, &subjects)
	return subjects, err
}

func (c *Client) ListResources(ctx context.Context, subjectID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := c.get(ctx, "/resources/subjects/"+subjectID+"/resources", nil, &resources)
	return resources, err
}

type AddResourceRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	FileURL     string  `json:"file_url" validate:"required,url"`
	FileName    string  `json:"file_name" validate:"required"`
}

// AddResource registers resource metadata; the file itself lives in
// external storage.
func (c *Client) AddResource(ctx context.Context, subjectID string, request AddResourceRequest) (models.Resource, error) {
	var resource models.Resource
	err := c.post(ctx, "/resources/subjects/"+subjectID+"/resources", request, &resource)
	return resource, err
}
