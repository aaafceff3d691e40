package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/config"
	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
)

const analysisSystemPrompt = "You are a pediatric care assistant. Summarize the week of " +
	"observations for the care team in plain language: overall trends, anything " +
	"that needs attention, and one or two practical suggestions. Do not give a " +
	"medical diagnosis."

const notRecorded = "Not recorded"

// Heuristic thresholds, in percent of logs in the window.
const (
	foodThreshold      = 70
	medsThreshold      = 90
	hydrationThreshold = 60
)

// TextGenerator is the optional external text-generation capability. A nil
// generator means the deterministic heuristic is always used.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

type AnalysisResult struct {
	HasData  bool   `json:"hasData"`
	Analysis string `json:"analysis"`
	Note     string `json:"note,omitempty"`
}

type AnalysisService struct {
	patientRepo repository.PatientRepository
	careLogRepo repository.CareLogRepository
	generator   TextGenerator
}

func NewAnalysisService(
	patientRepo repository.PatientRepository,
	careLogRepo repository.CareLogRepository,
	generator TextGenerator,
) *AnalysisService {
	return &AnalysisService{
		patientRepo: patientRepo,
		careLogRepo: careLogRepo,
		generator:   generator,
	}
}

// Generate summarizes the trailing seven days of logs. External failures are
// never surfaced: the heuristic fallback answers with a degraded note
// instead.
func (s *AnalysisService) Generate(ctx context.Context, patientID string) (*AnalysisResult, error) {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if patient == nil {
		return nil, apperrors.NotFound("Patient")
	}

	since := time.Now().Add(-config.AnalysisWindow)
	logs, err := s.careLogRepo.FindByPatientSince(ctx, patientID, since)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if len(logs) == 0 {
		return &AnalysisResult{
			HasData:  false,
			Analysis: "No observations were recorded in the last 7 days.",
		}, nil
	}

	if s.generator != nil {
		prompt := buildAnalysisPrompt(patient, logs)
		text, genErr := s.generator.GenerateText(ctx, analysisSystemPrompt, prompt)
		if genErr == nil {
			return &AnalysisResult{HasData: true, Analysis: text}, nil
		}
		log.Warn().
			Err(genErr).
			Str("patientId", patientID).
			Msg("text generation failed, falling back to basic analysis")
		return &AnalysisResult{
			HasData:  true,
			Analysis: heuristicSummary(patient, logs),
			Note:     "AI analysis was unavailable; showing a basic analysis instead.",
		}, nil
	}

	return &AnalysisResult{
		HasData:  true,
		Analysis: heuristicSummary(patient, logs),
	}, nil
}

func buildAnalysisPrompt(patient *model.Patient, logs []model.CareLog) string {
	diagnosis := patient.Diagnosis()
	if diagnosis == "" {
		diagnosis = "No diagnosis recorded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s\n", patient.Name())
	fmt.Fprintf(&b, "Diagnosis: %s\n", diagnosis)
	fmt.Fprintf(&b, "Observations from the last 7 days (%d entries):\n", len(logs))

	for i, entry := range logs {
		fmt.Fprintf(&b, "\nDay %d (%s):\n", i+1, entry.CreatedAt.Format("Mon Jan 2"))
		fmt.Fprintf(&b, "  Mood: %s\n", valueOr(entry.Mood))
		fmt.Fprintf(&b, "  Sleep: %s to %s\n", valueOr(entry.SleepStart), valueOr(entry.SleepEnd))
		fmt.Fprintf(&b, "  Hydration: %s\n", valueOr(entry.Hydration))
		fmt.Fprintf(&b, "  Food intake: %s\n", valueOr(entry.Food))
		fmt.Fprintf(&b, "  Medication: %s\n", valueOr(entry.Meds))
		fmt.Fprintf(&b, "  Antecedent: %s\n", valueOr(entry.Antecedent))
		fmt.Fprintf(&b, "  Behavior: %s\n", valueOr(entry.Behavior))
		fmt.Fprintf(&b, "  Consequence: %s\n", valueOr(entry.Consequence))
		fmt.Fprintf(&b, "  Note: %s\n", valueOr(entry.Note))
	}

	return b.String()
}

// heuristicSummary is the deterministic fallback. Only reached when at least
// one log exists, so the percentage math cannot divide by zero.
func heuristicSummary(patient *model.Patient, logs []model.CareLog) string {
	total := len(logs)

	var moods []string
	var foodCount, medsCount, hydrationCount int
	for _, entry := range logs {
		if entry.Mood != "" {
			moods = append(moods, entry.Mood)
		}
		if entry.Food == "full" {
			foodCount++
		}
		if entry.Meds == "given" {
			medsCount++
		}
		hydration := strings.ToLower(entry.Hydration)
		if hydration != "" && (strings.Contains(hydration, "drank") || hydration == "full") {
			hydrationCount++
		}
	}

	foodPct := foodCount * 100 / total
	medsPct := medsCount * 100 / total
	hydrationPct := hydrationCount * 100 / total

	moodsText := "none recorded"
	if len(moods) > 0 {
		moodsText = strings.Join(moods, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary for %s over the last 7 days (%d logs).\n", patient.Name(), total)
	fmt.Fprintf(&b, "Moods observed: %s.\n", moodsText)
	fmt.Fprintf(&b, "Full meals in %d%% of logs, medication given in %d%%, hydration on track in %d%%.\n",
		foodPct, medsPct, hydrationPct)

	var recommendations []string
	if foodPct < foodThreshold {
		recommendations = append(recommendations, "Food intake was low this week; monitor meals closely.")
	}
	if medsPct < medsThreshold {
		recommendations = append(recommendations, "Medication compliance was below target; review the schedule with the care team.")
	}
	if hydrationPct < hydrationThreshold {
		recommendations = append(recommendations, "Hydration was inconsistent; encourage more fluids during the day.")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "All tracked indicators look stable; continue the current care plan.")
	}

	b.WriteString("Recommendations: ")
	b.WriteString(strings.Join(recommendations, " "))

	return b.String()
}

func valueOr(v string) string {
	if v == "" {
		return notRecorded
	}
	return v
}
