package app

import (
	"fmt"
	"math"
	"time"

	"arcadia-quote-service/internal/domain"
)

// BuildBreakdown maps the ordered priced answers onto the fixed 8-stage
// template and computes the aggregates. It is a pure function of its
// inputs: no mutation, no I/O.
//
// The mapping is positional: answer i fills stage i+2 (the first two
// stages are always free). Missing answers leave a stage at its zero
// default; extra answers beyond the priced slots are ignored.
func BuildBreakdown(answers []domain.Answer, language string, now time.Time) domain.QuoteBreakdown {
	templates := domain.StageTemplates()
	stages := make([]domain.StageQuote, 0, len(templates))

	priced := 0
	totalPrice := 0
	totalHours := 0
	for _, tpl := range templates {
		stage := domain.StageQuote{
			ID:    tpl.ID,
			Name:  tpl.Name,
			Free:  tpl.Free,
			Hours: tpl.Hours,
		}
		if !tpl.Free {
			if priced < len(answers) {
				answer := answers[priced]
				stage.Hours = answer.Hours
				stage.BasePrice = answer.BasePrice
				stage.Price = answer.FinalPrice
				stage.Adjusted = answer.BasePrice != answer.FinalPrice
			}
			priced++
		}
		if stage.Hours > 0 && stage.Price > 0 {
			stage.HourlyRate = int(math.Round(float64(stage.Price) / float64(stage.Hours)))
		}
		totalPrice += stage.Price
		totalHours += stage.Hours
		stages = append(stages, stage)
	}

	weeks := estimatedWeeks(totalHours)
	completion := now.AddDate(0, 0, weeks*7)

	return domain.QuoteBreakdown{
		Stages:         stages,
		TotalPrice:     totalPrice,
		TotalHours:     totalHours,
		EstimatedWeeks: weeks,
		CompletionDate: completion,
		CompletionText: formatDate(completion, language),
		Language:       language,
	}
}

// estimatedWeeks is ceil(totalHours / HoursPerWeek).
func estimatedWeeks(totalHours int) int {
	if totalHours <= 0 {
		return 0
	}
	return (totalHours + domain.HoursPerWeek - 1) / domain.HoursPerWeek
}

var months = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
}

// formatDate renders the completion date for display in the given
// language, defaulting to English for unknown codes.
func formatDate(t time.Time, language string) string {
	names, ok := months[language]
	if !ok {
		names = months["en"]
		language = "en"
	}
	month := names[t.Month()-1]
	switch language {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
	case "de":
		return fmt.Sprintf("%d. %s %d", t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
}
