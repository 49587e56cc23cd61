package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/roadsign"
)

// buttonDescriptionWidth is the WhatsApp list-row description limit.
const buttonDescriptionWidth = 71

type quizParams struct {
	Phone string `query:"phone" required:"true" description:"User phone number, digits only" validate:"required,numeric,min=6,max=20"`
	Level string `query:"level" description:"Difficulty from 1 to 5, default 2" validate:"omitempty,oneof=1 2 3 4 5"`
}

// Button is one WhatsApp interactive answer choice.
type Button struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// QuizResponse is a question rendered for a WhatsApp message.
type QuizResponse struct {
	ID          string   `json:"id" description:"Quiz instance ID, used to record the answer"`
	Text        string   `json:"text"`
	Buttons     []Button `json:"buttons"`
	Answer      string   `json:"answer" description:"Index of the correct button"`
	Explanation string   `json:"explanation"`
}

func newQuizResponse(q *roadsign.Quiz) QuizResponse {
	lines := make([]string, len(q.Options))
	buttons := make([]Button, len(q.Options))
	for i, opt := range q.Options {
		lines[i] = fmt.Sprintf("%d) %s", i+1, opt)
		buttons[i] = Button{
			ID:          strconv.Itoa(i),
			Label:       fmt.Sprintf("Option %d", i+1),
			Description: catalog.Truncate(opt, buttonDescriptionWidth),
		}
	}
	return QuizResponse{
		ID:          q.ID,
		Text:        q.Question + "\n\n" + strings.Join(lines, "\n"),
		Buttons:     buttons,
		Answer:      strconv.Itoa(q.Answer),
		Explanation: q.Explanation,
	}
}

func handleQuiz(logger *slog.Logger, svc *roadsign.Service, typ roadsign.QuizType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := quizParams{
			Phone: normalizePhone(r.URL.Query().Get("phone")),
			Level: strings.TrimSpace(r.URL.Query().Get("level")),
		}
		if err := validateRequest(params); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		quiz, err := svc.GenerateQuiz(r.Context(), params.Phone, params.Level, typ)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, newQuizResponse(quiz))
	}
}
