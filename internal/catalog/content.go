package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/hagios/internal/quiz"
)

// ContentDocument returns the document name holding module id's content.
func ContentDocument(id string) string {
	return fmt.Sprintf("modulo%s.json", id)
}

// Section is one titled block of study material. Body is HTML.
type Section struct {
	Title string
	Body  string
}

// Text returns the section body rendered as plain text.
func (s Section) Text() string {
	return PlainText(s.Body)
}

// Content is the full study material for one module.
type Content struct {
	ID               string
	Sections         []Section
	Quiz             *quiz.AnswerKey // nil when the module has no quiz
	PreviousModuleID string
	NextModuleID     string
}

// AnswerKey returns the module's quiz, or an empty key when there is none.
func (c Content) AnswerKey() quiz.AnswerKey {
	if c.Quiz == nil {
		return quiz.AnswerKey{}
	}
	return *c.Quiz
}

// PassThreshold returns the module's quiz pass mark.
func (c Content) PassThreshold() int {
	return c.AnswerKey().Threshold()
}

type wireContent struct {
	ID       flexID `json:"id"`
	Sections []struct {
		Title string `json:"titulo"`
		Body  string `json:"conteudo"`
	} `json:"secoes"`
	Quiz *struct {
		Title     string `json:"titulo"`
		Threshold int    `json:"minimoAprovacao"`
		Questions []struct {
			ID      flexID `json:"id"`
			Prompt  string `json:"pergunta"`
			Options []struct {
				ID   flexID `json:"id"`
				Text string `json:"texto"`
			} `json:"opcoes"`
			Correct flexID `json:"correta"`
		} `json:"perguntas"`
	} `json:"quiz"`
	Previous flexID `json:"moduloAnterior"`
	Next     flexID `json:"proximoModulo"`
}

// LoadContent fetches and decodes the content document for module id.
func LoadContent(ctx context.Context, src Source, id string) (Content, error) {
	doc := ContentDocument(id)
	raw, err := src.Fetch(ctx, doc)
	if err != nil {
		return Content{}, unavailable(doc, err)
	}
	c, err := ParseContent(raw)
	if err != nil {
		return Content{}, unavailable(doc, err)
	}
	if c.ID == "" {
		c.ID = id
	}
	return c, nil
}

// ParseContent validates and decodes a module content document.
func ParseContent(raw []byte) (Content, error) {
	if err := ContentSchema.Validate(raw); err != nil {
		return Content{}, err
	}
	var w wireContent
	if err := json.Unmarshal(raw, &w); err != nil {
		return Content{}, err
	}

	c := Content{
		ID:               string(w.ID),
		PreviousModuleID: string(w.Previous),
		NextModuleID:     string(w.Next),
	}
	for _, s := range w.Sections {
		c.Sections = append(c.Sections, Section{Title: s.Title, Body: s.Body})
	}
	if w.Quiz != nil {
		key := &quiz.AnswerKey{
			Title:                w.Quiz.Title,
			PassThresholdPercent: w.Quiz.Threshold,
		}
		seen := make(map[string]bool, len(w.Quiz.Questions))
		for _, q := range w.Quiz.Questions {
			qid := string(q.ID)
			if seen[qid] {
				return Content{}, fmt.Errorf("duplicate question id %q", qid)
			}
			seen[qid] = true
			question := quiz.Question{
				ID:              qid,
				Prompt:          q.Prompt,
				CorrectOptionID: string(q.Correct),
			}
			for _, o := range q.Options {
				question.Options = append(question.Options, quiz.Option{ID: string(o.ID), Text: o.Text})
			}
			key.Questions = append(key.Questions, question)
		}
		c.Quiz = key
	}
	return c, nil
}
