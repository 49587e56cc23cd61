package server

import (
	"log/slog"
	"net/http"

	"github.com/abhisek/roadsign/internal/catalog"
	"github.com/abhisek/roadsign/internal/roadsign"
)

type learnParams struct {
	Phone    string `query:"phone" required:"true" validate:"required,numeric,min=6,max=20"`
	Category string `query:"category" enum:"regulatory,warning,information" validate:"omitempty,oneof=regulatory warning information"`
}

// SignResponse is a sign card rendered for WhatsApp.
type SignResponse struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image"`
}

func handleLearnSign(logger *slog.Logger, svc *roadsign.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := learnParams{
			Phone:    normalizePhone(r.URL.Query().Get("phone")),
			Category: r.URL.Query().Get("category"),
		}
		if err := validateRequest(params); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var kind *catalog.Kind
		if params.Category != "" {
			k := catalog.Kind(params.Category)
			kind = &k
		}

		sign, err := svc.SelectSignToLearn(r.Context(), params.Phone, kind)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, SignResponse{
			ID:    sign.ID,
			Text:  catalog.FormatSign(sign),
			Image: sign.Image,
		})
	}
}
