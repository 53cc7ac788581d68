package api

import (
	"context"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func (c *Client) GiveFeedback(ctx context.Context, rating models.ProfessorRating) error {
	return c.post(ctx, "/give_feedback", rating, nil)
}

func (c *Client) ListProfessors(ctx context.Context) ([]models.ProfessorSummary, error) {
	var professors []models.ProfessorSummary
	err := c.get(ctx, "/professors", nil, &professors)
	return professors, err
}

func (c *Client) GetProfessorFeedback(ctx context.Context, professorID string) (models.ProfessorSummary, error) {
	var summary models.ProfessorSummary
	err := c.get(ctx, "/professors/"+professorID+"/feedback", nil, &summary)
	return summary, err
}
