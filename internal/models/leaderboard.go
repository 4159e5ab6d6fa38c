package models

// Score action tags. Each admin leaderboard mutation is one of these
// variants; a reducer turns the variant into the persisted update.
const (
	ActionScoreUpdate       = "score_update"
	ActionAchievementAdd    = "achievement_add"
	ActionAchievementRemove = "achievement_remove"
	ActionScoreReset        = "score_reset"
)

type ScoreAction struct {
	Action      string `json:"action" binding:"required,oneof=score_update achievement_add achievement_remove score_reset"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,oneof=student member"`
	Score       int    `json:"score"`
	Achievement string `json:"achievement"`
}

type ScoreActionBatch struct {
	Actions []ScoreAction `json:"actions" binding:"required,min=1,dive"`
}

type LeaderboardEntry struct {
	Email        string   `json:"email" bson:"email"`
	FullName     string   `json:"full_name" bson:"full_name"`
	Score        int      `json:"score" bson:"score"`
	Achievements []string `json:"achievements,omitempty" bson:"achievements,omitempty"`
}
