package api

import "user-service/internal/validation"

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message" example:"user not found"`
}

// ValidationErrorResponse lists every rejected field. An empty field is about the payload as a
// whole.
// swagger:model api.ValidationErrorResponse
type ValidationErrorResponse struct {
	Message string                  `json:"message" example:"validation failed"`
	Errors  []validation.FieldError `json:"errors"`
}

// PingResponse 健康檢查回應模型
// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
