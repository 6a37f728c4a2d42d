package schema

// SocialReviewerTable represents the 'social.reviewer' table
type SocialReviewerTable struct {
	Table     string
	ID        string
	FirstName string
	LastName  string
}

// SocialReviewer is the schema definition for social.reviewer
var SocialReviewer = SocialReviewerTable{
	Table:     "social.reviewer",
	ID:        "id",
	FirstName: "firstname",
	LastName:  "lastname",
}

func (t SocialReviewerTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName}
}
