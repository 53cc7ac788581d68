package models

type ProfessorRating struct {
	ProfessorID   string  `json:"professor_id"`
	Teaching      int     `json:"teaching" validate:"min=1,max=5"`
	Communication int     `json:"communication" validate:"min=1,max=5"`
	Helpfulness   int     `json:"helpfulness" validate:"min=1,max=5"`
	Comment       *string `json:"comment,omitempty"`
}

type ProfessorSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	Breakdown map[string]float64 `json:"breakdown"`
}
