package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/anuragkar/scambait/internal/api/response"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/service"
)

var validate = validator.New()

// ChatHandler handles the engagement endpoint
type ChatHandler struct {
	engagement *service.EngagementService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engagement *service.EngagementService) *ChatHandler {
	return &ChatHandler{engagement: engagement}
}

// Handle processes one scammer message and returns the persona reply
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			errors := make(map[string]string)
			for _, e := range validationErrors {
				field := e.Field()
				tag := e.Tag()
				switch tag {
				case "required":
					errors[field] = "field is required"
				case "oneof":
					errors[field] = "must be one of: " + e.Param()
				case "max":
					errors[field] = "must be at most " + e.Param() + " characters"
				default:
					errors[field] = "validation failed on " + tag
				}
			}
			response.BadRequest(w, errors)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.engagement.HandleMessage(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Internal server error")
		return
	}

	response.OK(w, resp)
}
