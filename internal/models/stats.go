package models

// Stats is a point-in-time summary of one user's collection. Every field is
// derived from the current card set on each call; nothing is cached.
type Stats struct {
	TotalCards         int     `json:"total_cards"`
	DueForReview       int     `json:"due_for_review"`
	EasyCards          int     `json:"easy_cards"`
	MediumCards        int     `json:"medium_cards"`
	HardCards          int     `json:"hard_cards"`
	TotalReviews       int     `json:"total_reviews"`
	OverallSuccessRate float64 `json:"overall_success_rate"`
	BestStreak         int     `json:"best_streak"`
	CardsWithStreaks   int     `json:"cards_with_streaks"`
}
