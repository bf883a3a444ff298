package chat

type SendMessageRequest struct {
	UserID  string `json:"-"`
	Message string `json:"message" validate:"required,max=2000"`
	Mode    string `json:"mode" validate:"omitempty,oneof=chat budget category_budget bulk_expense"`
	Online  bool   `json:"online"`
}

type SendMessageResponse struct {
	Reply            string `json:"reply"`
	AppliedCount     int    `json:"applied_count"`
	FailedCount      int    `json:"failed_count"`
	RecordedByRemote int    `json:"recorded_by_remote,omitempty"`
}

type MessageResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Mode      string `json:"mode,omitempty"`
	CreatedAt string `json:"created_at"`
}

type HistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
}
