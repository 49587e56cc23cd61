package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Road Sign API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("WhatsApp chatbot backend to learn French road signs.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the state of the database and the sign catalog.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /sign-quizz and /general-quizz
	for _, q := range []struct{ path, summary, desc string }{
		{"/sign-quizz", "Sign quiz", "Generates a question about the signs the user studied last."},
		{"/general-quizz", "General quiz", "Generates a driving-theory question adapted to the user's history."},
	} {
		op, _ := r.NewOperationContext(http.MethodGet, q.path)
		op.SetSummary(q.summary)
		op.SetDescription(q.desc)
		op.AddReqStructure(quizParams{})
		op.AddRespStructure(QuizResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusGatewayTimeout))
		_ = r.AddOperation(op)
	}

	// GET /learn-sign
	getLearn, _ := r.NewOperationContext(http.MethodGet, "/learn-sign")
	getLearn.SetSummary("Learn a sign")
	getLearn.SetDescription("Picks a sign the user has seen least and records the view.")
	getLearn.AddReqStructure(learnParams{})
	getLearn.AddRespStructure(SignResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getLearn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getLearn)

	// POST /recognize-sign
	postRecognize, _ := r.NewOperationContext(http.MethodPost, "/recognize-sign")
	postRecognize.SetSummary("Recognize signs")
	postRecognize.SetDescription("Describes the signs in an image given by URL, or uploaded as a multipart \"image\" file.")
	postRecognize.AddReqStructure(RecognizeRequest{})
	postRecognize.AddRespStructure(RecognizeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRecognize.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRecognize.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postRecognize)

	// POST /quizz/{id}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/quizz/{id}/answer")
	postAnswer.SetSummary("Record answer")
	postAnswer.SetDescription("Stores whether the user answered the quiz correctly.")
	postAnswer.AddReqStructure(answerRequest{})
	postAnswer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postAnswer)

	// PUT /users/{phone}/plan
	putPlan, _ := r.NewOperationContext(http.MethodPut, "/users/{phone}/plan")
	putPlan.SetSummary("Set plan")
	putPlan.SetDescription("Switches the user between the free and pro plans.")
	putPlan.AddReqStructure(planRequest{})
	putPlan.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	putPlan.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putPlan)

	// GET /users/{phone}/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/users/{phone}/stats")
	getStats.SetSummary("User stats")
	getStats.SetDescription("Returns quiz counts per type with answered and correct totals.")
	getStats.AddReqStructure(statsParams{})
	getStats.AddRespStructure(StatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStats.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getStats)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
