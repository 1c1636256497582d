package httpapi

import (
	"net/http"

	"vta-orchestrator/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AnswerRequest is the body of POST /api/.
type AnswerRequest struct {
	Question string `json:"question"`
	Link     string `json:"link,omitempty"`
	Image    string `json:"image,omitempty"`
}

// AnswerLink points back at a retrieved passage.
type AnswerLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// AnswerResponse is the body of a successful POST /api/.
type AnswerResponse struct {
	Answer string       `json:"answer"`
	Links  []AnswerLink `json:"links"`
}

type Handler struct {
	answerUsecase usecase.AnswerQuestionUsecase
}

func NewHandler(answerUsecase usecase.AnswerQuestionUsecase) *Handler {
	return &Handler{answerUsecase: answerUsecase}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/", h.Answer)
}

// Answer runs the question pipeline and returns the generated answer plus
// source links for the passages that backed it.
// (POST /api/)
func (h *Handler) Answer(ctx echo.Context) error {
	var req AnswerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Question == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Missing 'question' in request"})
	}

	output, err := h.answerUsecase.Execute(ctx.Request().Context(), usecase.AnswerQuestionInput{
		Question: req.Question,
		Link:     req.Link,
		Image:    req.Image,
	})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	links := make([]AnswerLink, 0, len(output.Reranked))
	for _, hit := range output.Reranked {
		links = append(links, AnswerLink{
			Text: hit.Passage.Content,
			URL:  hit.Passage.Metadata.URL,
		})
	}

	return ctx.JSON(http.StatusOK, AnswerResponse{
		Answer: output.Answer,
		Links:  links,
	})
}
