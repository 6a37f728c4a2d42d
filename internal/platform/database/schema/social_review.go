package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table      string
	ID         string
	Title      string
	Text       string
	Rating     string
	PokemonID  string
	ReviewerID string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:      "social.review",
	ID:         "id",
	Title:      "title",
	Text:       "text",
	Rating:     "rating",
	PokemonID:  "pokemonid",
	ReviewerID: "reviewerid",
}

func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.Title, t.Text, t.Rating, t.PokemonID, t.ReviewerID}
}
