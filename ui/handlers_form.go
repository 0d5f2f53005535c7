package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"careerpath/domain/survey"
	"careerpath/internal/errors"
	"careerpath/internal/predict"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// FormField is one question as rendered by the form
type FormField struct {
	survey.Field
	Value   string
	Options []string
	Invalid bool
}

// FormPage is the data of index.html
type FormPage struct {
	Fields     []FormField
	Prediction *predict.Prediction
	Errors     []string
	Classes    []string
	TrainedAt  string
	Accuracy   float64
}

// ReportPage is the data of report.html
type ReportPage struct {
	Content template.HTML
	Missing bool
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", s.formPage(survey.DefaultAnswers(), nil, nil))
}

func (s *Server) handlePredict(c *gin.Context) {
	var answers survey.Answers
	if err := c.ShouldBind(&answers); err != nil {
		page := s.formPage(answers, nil, nil)
		page.Errors = []string{fmt.Sprintf("could not read the form: %v", err)}
		s.renderTemplate(c, http.StatusBadRequest, "index.html", page)
		return
	}

	pred, err := s.service.Predict(c.Request.Context(), answers)
	if err != nil {
		page := s.formPage(answers, nil, err)
		s.renderTemplate(c, errors.HTTPStatus(err), "index.html", page)
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", s.formPage(answers, &pred, nil))
}

func (s *Server) handleReport(c *gin.Context) {
	md, err := s.store.LoadReport()
	if err != nil {
		log.Printf("[Report] %v", err)
		s.renderTemplate(c, http.StatusNotFound, "report.html", ReportPage{Missing: true})
		return
	}
	s.renderTemplate(c, http.StatusOK, "report.html", ReportPage{Content: renderMarkdown(md)})
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{
		"status":       "ok",
		"uptime":       time.Since(s.startedAt).Round(time.Second).String(),
		"persona_mode": s.service.PersonaMode(),
		"classes":      s.service.Classes(),
	}
	if run := s.service.Run(); run != nil {
		body["run_id"] = run.ID
	}
	c.JSON(http.StatusOK, body)
}

// formPage builds the form with the given answers filled in
func (s *Server) formPage(answers survey.Answers, pred *predict.Prediction, err error) FormPage {
	values := answers.Values()
	invalid := map[string]bool{}
	for _, f := range errors.GetFields(err) {
		invalid[f] = true
	}

	page := FormPage{Prediction: pred, Classes: s.service.Classes()}
	for _, f := range survey.Fields {
		ff := FormField{Field: f, Value: values[f.Key], Invalid: invalid[f.Key]}
		if f.Encoding != nil {
			ff.Options = f.Encoding.Labels()
		}
		page.Fields = append(page.Fields, ff)
	}
	if err != nil {
		page.Errors = []string{err.Error()}
	}
	if run := s.service.Run(); run != nil {
		page.TrainedAt = run.CreatedAt.Format("2006-01-02")
		page.Accuracy = run.Accuracy
	}
	return page
}

func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.Render(p.Parse([]byte(md)), renderer))
}
