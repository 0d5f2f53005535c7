package ui

import (
	"log"
	"net/http"

	"careerpath/domain/survey"
	"careerpath/internal/errors"
	"careerpath/internal/predict"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// App is the JSON API, mounted by Server under /api
type App struct {
	router  *chi.Mux
	service *predict.Service
}

// OptionsResponse lists the allowed values of every question
type OptionsResponse struct {
	Fields  []FieldSpec `json:"fields"`
	Classes []string    `json:"classes"`
}

// FieldSpec describes one question for API clients
type FieldSpec struct {
	Key      string   `json:"key"`
	Question string   `json:"question"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     *float64 `json:"step,omitempty"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewApp creates the API router
func NewApp(service *predict.Service) *App {
	app := &App{
		router:  chi.NewRouter(),
		service: service,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", a.handlePredict)
		r.Get("/options", a.handleOptions)
	})
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	var answers survey.Answers
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&answers); err != nil {
		writeError(w, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "request body is not a valid answer set")))
		return
	}

	pred, err := a.service.Predict(r.Context(), answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	resp := OptionsResponse{Classes: a.service.Classes()}
	for _, f := range survey.Fields {
		spec := FieldSpec{Key: f.Key, Question: f.Question, Kind: string(f.Kind)}
		if f.Encoding != nil {
			spec.Options = f.Encoding.Labels()
		} else {
			lo, hi, step := f.Min, f.Max, f.Step
			spec.Min, spec.Max, spec.Step = &lo, &hi, &step
		}
		resp.Fields = append(resp.Fields, spec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %v", err)
	}
	writeJSON(w, status, ErrorResponse{
		Code:    errors.GetCode(err),
		Message: err.Error(),
		Fields:  errors.GetFields(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Error writing response: %v", err)
	}
}
