package app_test

import (
	"testing"
	"time"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/domain"
)

func sixAnswers() []domain.Answer {
	return []domain.Answer{
		{QuestionID: "q1", OptionID: "o1", BasePrice: 1000, FinalPrice: 1200, Hours: 40},
		{QuestionID: "q2", OptionID: "o2", BasePrice: 2000, FinalPrice: 3600, Hours: 60},
		{QuestionID: "q3", OptionID: "o3", BasePrice: 500, FinalPrice: 600, Hours: 10},
		{QuestionID: "q4", OptionID: "o4", BasePrice: 400, FinalPrice: 400, Hours: 8},
		{QuestionID: "q5", OptionID: "o5", BasePrice: 700, FinalPrice: 840, Hours: 14},
		{QuestionID: "q6", OptionID: "o6", BasePrice: 300, FinalPrice: 360, Hours: 6},
	}
}

func TestBreakdownPositionalMapping(t *testing.T) {
	answers := sixAnswers()
	b := app.BuildBreakdown(answers, "en", time.Now())

	if len(b.Stages) != 8 {
		t.Fatalf("expected 8 stages, got %d", len(b.Stages))
	}
	if !b.Stages[0].Free || !b.Stages[1].Free {
		t.Fatalf("expected first two stages free")
	}
	if b.Stages[0].Price != 0 || b.Stages[1].Price != 0 {
		t.Fatalf("free stages must be zero price")
	}
	// Positional contract: answer i fills stage i+2.
	for i, answer := range answers {
		stage := b.Stages[i+2]
		if stage.Price != answer.FinalPrice || stage.Hours != answer.Hours || stage.BasePrice != answer.BasePrice {
			t.Fatalf("stage %d mismatch: %+v vs answer %+v", i+2, stage, answer)
		}
	}
}

func TestBreakdownTotals(t *testing.T) {
	b := app.BuildBreakdown(sixAnswers(), "en", time.Now())

	wantPrice := 1200 + 3600 + 600 + 400 + 840 + 360
	if b.TotalPrice != wantPrice {
		t.Fatalf("expected total price %d, got %d", wantPrice, b.TotalPrice)
	}
	wantHours := 40 + 60 + 10 + 8 + 14 + 6 + domain.FreeStageHours
	if b.TotalHours != wantHours {
		t.Fatalf("expected total hours %d, got %d", wantHours, b.TotalHours)
	}
}

func TestBreakdownEstimatedWeeks(t *testing.T) {
	// 361 total hours -> ceil(361/40) = 10 weeks.
	answers := []domain.Answer{
		{QuestionID: "q1", BasePrice: 100, FinalPrice: 100, Hours: 341},
	}
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	b := app.BuildBreakdown(answers, "en", now)

	if b.TotalHours != 361 {
		t.Fatalf("expected 361 hours, got %d", b.TotalHours)
	}
	if b.EstimatedWeeks != 10 {
		t.Fatalf("expected 10 weeks, got %d", b.EstimatedWeeks)
	}
	want := now.AddDate(0, 0, 70)
	if !b.CompletionDate.Equal(want) {
		t.Fatalf("expected completion %v, got %v", want, b.CompletionDate)
	}
	if b.CompletionText != "May 11, 2026" {
		t.Fatalf("unexpected completion text %q", b.CompletionText)
	}
}

func TestBreakdownAdjustedPriceFlag(t *testing.T) {
	answers := []domain.Answer{
		{QuestionID: "q1", BasePrice: 500, FinalPrice: 600, Hours: 10},
		{QuestionID: "q2", BasePrice: 400, FinalPrice: 400, Hours: 8},
	}
	b := app.BuildBreakdown(answers, "en", time.Now())

	adjusted := b.Stages[2]
	if !adjusted.Adjusted || adjusted.BasePrice != 500 || adjusted.Price != 600 {
		t.Fatalf("expected adjusted stage showing 500 and 600, got %+v", adjusted)
	}
	flat := b.Stages[3]
	if flat.Adjusted {
		t.Fatalf("expected unadjusted stage to show one value, got %+v", flat)
	}
	if adjusted.HourlyRate != 60 {
		t.Fatalf("expected hourly rate 60, got %d", adjusted.HourlyRate)
	}
}

func TestBreakdownFewerAnswersLeavesZeroStages(t *testing.T) {
	b := app.BuildBreakdown(sixAnswers()[:2], "en", time.Now())
	if b.Stages[4].Price != 0 || b.Stages[4].Hours != 0 {
		t.Fatalf("expected zero default for unfilled stage, got %+v", b.Stages[4])
	}
}

func TestBreakdownLocalizedDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	answers := []domain.Answer{{QuestionID: "q1", BasePrice: 100, FinalPrice: 100, Hours: 20}}

	es := app.BuildBreakdown(answers, "es", now)
	if es.CompletionText != "9 de marzo de 2026" {
		t.Fatalf("unexpected spanish date %q", es.CompletionText)
	}
	de := app.BuildBreakdown(answers, "de", now)
	if de.CompletionText != "9. März 2026" {
		t.Fatalf("unexpected german date %q", de.CompletionText)
	}
	// Unknown language falls back to English formatting.
	xx := app.BuildBreakdown(answers, "xx", now)
	if xx.CompletionText != "March 9, 2026" {
		t.Fatalf("unexpected fallback date %q", xx.CompletionText)
	}
}
