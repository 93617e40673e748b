package recommend

type RecordInteractionDTO struct {
	UserID  int64  `json:"user_id" validate:"required"`
	EventID string `json:"event_id" validate:"required"`
	Action  string `json:"action" validate:"required,oneof=like dislike click view"`
}
