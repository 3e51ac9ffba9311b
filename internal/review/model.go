package review

import "time"

type Review struct {
	ID        int       `db:"id" json:"id"`
	PitchID   int       `db:"pitch_id" json:"pitchId"`
	UserID    int       `db:"user_id" json:"userId"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type ReviewWithUser struct {
	Review
	UserName string `db:"user_name" json:"userName"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type PitchReviews struct {
	Reviews       []ReviewWithUser `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
}
