package waha

type SendTextRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
}

type SendTextResponse struct {
	ID        any            `json:"id,omitempty"`
	Message   string         `json:"message,omitempty"`
	Exception *ExceptionBody `json:"exception,omitempty"`
}

type ExceptionBody struct {
	Message string `json:"message"`
}

type NumberStatusResponse struct {
	NumberExists bool `json:"numberExists"`
}
