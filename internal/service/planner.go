package service

import "oneclarity/internal/model"

// Planner selects an ordered action plan from query intent, retrieval
// confidence, and the student's topic record. Pure and deterministic:
// identical inputs always yield the identical plan.
type Planner struct{}

// NewPlanner creates a planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Decide evaluates the decision rules in strict precedence order; the
// first matching rule wins:
//
//  1. quiz_request intent     -> quiz at the record's current difficulty
//  2. ungrounded retrieval    -> explain only (never quiz on unverified
//     material)
//  3. weak topic strength     -> explain, then an easy remediation quiz
//  4. factual intent          -> explain only
//  5. strong topic strength   -> hard quiz only
//  6. otherwise               -> explain, then a medium quiz
//
// Explain always precedes Quiz within a plan.
func (p *Planner) Decide(intent model.Intent, verdict model.ConfidenceVerdict, record *model.StudentTopicRecord) []model.ActionPlanEntry {
	if intent == model.IntentQuizRequest {
		return []model.ActionPlanEntry{
			{Action: model.ActionQuiz, Difficulty: record.CurrentDifficulty},
		}
	}

	if !verdict.Grounded {
		return []model.ActionPlanEntry{{Action: model.ActionExplain}}
	}

	strength := record.Strength()
	if strength == model.StrengthWeak {
		return []model.ActionPlanEntry{
			{Action: model.ActionExplain},
			{Action: model.ActionQuiz, Difficulty: model.DifficultyEasy},
		}
	}

	if intent == model.IntentFactual {
		return []model.ActionPlanEntry{{Action: model.ActionExplain}}
	}

	if strength == model.StrengthStrong {
		return []model.ActionPlanEntry{
			{Action: model.ActionQuiz, Difficulty: model.DifficultyHard},
		}
	}

	return []model.ActionPlanEntry{
		{Action: model.ActionExplain},
		{Action: model.ActionQuiz, Difficulty: model.DifficultyMedium},
	}
}
