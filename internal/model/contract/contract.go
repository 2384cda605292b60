package contract

type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type CompletionResponse struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}
