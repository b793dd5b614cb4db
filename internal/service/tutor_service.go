package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"oneclarity/internal/cache"
	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

// TutorService orchestrates one tutoring exchange: evidence in, decision
// out, outcome back into the student model. The external retrieval and
// generation services are invoked through their clients; the decision
// core itself never blocks on network or disk.
type TutorService struct {
	students        *StudentService
	interactionRepo repository.InteractionRepo
	classifier      *IntentClassifier
	evaluator       *ConfidenceEvaluator
	planner         *Planner
	retriever       *RetrievalClient
	generator       *GeneratorService
	quizCache       cache.QuizCache
	evidenceCache   cache.EvidenceCache
	quizSize        int
}

// NewTutorService creates a new tutor service
func NewTutorService(
	students *StudentService,
	interactionRepo repository.InteractionRepo,
	classifier *IntentClassifier,
	evaluator *ConfidenceEvaluator,
	planner *Planner,
	retriever *RetrievalClient,
	generator *GeneratorService,
	quizCache cache.QuizCache,
	evidenceCache cache.EvidenceCache,
	quizSize int,
) *TutorService {
	if quizSize <= 0 {
		quizSize = 3
	}
	return &TutorService{
		students:        students,
		interactionRepo: interactionRepo,
		classifier:      classifier,
		evaluator:       evaluator,
		planner:         planner,
		retriever:       retriever,
		generator:       generator,
		quizCache:       quizCache,
		evidenceCache:   evidenceCache,
		quizSize:        quizSize,
	}
}

// evidence returns passages for a topic, going through the evidence cache
// first. Cache failures are logged and treated as misses.
func (s *TutorService) evidence(ctx context.Context, topic string) []model.Passage {
	passages, err := s.evidenceCache.GetPassages(ctx, topic)
	if err != nil {
		log.Printf("Warning: evidence cache read failed for %q: %v", topic, err)
	}
	if passages != nil {
		return passages
	}

	passages, err = s.retriever.Retrieve(ctx, topic, s.evaluator.TopK)
	if err != nil {
		log.Printf("Warning: retrieval failed for %q: %v", topic, err)
		return nil
	}
	if err := s.evidenceCache.SetPassages(ctx, topic, passages); err != nil {
		log.Printf("Warning: evidence cache write failed for %q: %v", topic, err)
	}
	return passages
}

// Ask handles one student query end to end: topic resolution, intent
// classification, confidence evaluation, planning, generation, and the
// interaction log append.
func (s *TutorService) Ask(ctx context.Context, req *model.AskRequest) (*model.AskResponse, error) {
	topic, err := s.classifier.ResolveTopic(req.Query, req.Topic)
	if err != nil {
		return nil, err
	}
	intent := s.classifier.Classify(req.Query)

	record, err := s.students.GetOrCreate(ctx, req.StudentID, topic)
	if err != nil {
		return nil, err
	}

	passages := s.evidence(ctx, topic)
	verdict := s.evaluator.Evaluate(passages)
	plan := s.planner.Decide(intent, verdict, record)

	resp := &model.AskResponse{
		StudentID:      req.StudentID,
		Topic:          topic,
		Intent:         intent,
		Plan:           plan,
		Confidence:     verdict.Score,
		Grounded:       verdict.Grounded,
		QuizSuggestion: model.PlanSuggestsQuiz(plan),
	}

	var quiz []model.QuizQuestion
	for _, entry := range plan {
		switch entry.Action {
		case model.ActionExplain:
			resp.Answer = s.generator.GenerateExplanation(ctx, topic, passages)
			if len(passages) > 0 {
				resp.Chapter = passages[0].Chapter
			}
		case model.ActionQuiz:
			quiz = s.generator.GenerateQuiz(ctx, topic, entry.Difficulty, s.quizSize, passages)
		}
	}

	interaction := &model.Interaction{
		StudentID:  req.StudentID,
		Topic:      topic,
		QueryText:  req.Query,
		Intent:     intent,
		Confidence: verdict,
		Plan:       plan,
		CreatedAt:  time.Now(),
	}
	id, err := s.interactionRepo.Append(ctx, interaction)
	if err != nil {
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}
	resp.InteractionID = id

	if len(quiz) > 0 {
		if err := s.quizCache.SetAnswerKey(ctx, id, AnswerKey(quiz)); err != nil {
			log.Printf("Warning: answer key cache write failed for interaction %d: %v", id, err)
		}
		resp.Quiz = quiz
	}

	return resp, nil
}

// Quiz handles an independent quiz request. An explicit difficulty
// bypasses the decision rules but is still recorded on the interaction.
func (s *TutorService) Quiz(ctx context.Context, studentID, topic, difficulty string) (*model.QuizResponse, error) {
	resolved, err := s.classifier.ResolveTopic("", topic)
	if err != nil {
		return nil, err
	}

	record, err := s.students.GetOrCreate(ctx, studentID, resolved)
	if err != nil {
		return nil, err
	}

	passages := s.evidence(ctx, resolved)
	verdict := s.evaluator.Evaluate(passages)

	var level model.Difficulty
	switch difficulty {
	case "", "auto":
		plan := s.planner.Decide(model.IntentQuizRequest, verdict, record)
		level = plan[0].Difficulty
	default:
		level = model.Difficulty(difficulty)
		if !level.Valid() {
			return nil, model.ErrInvalidDifficulty
		}
	}

	quiz := s.generator.GenerateQuiz(ctx, resolved, level, s.quizSize, passages)

	interaction := &model.Interaction{
		StudentID:  studentID,
		Topic:      resolved,
		QueryText:  fmt.Sprintf("[quiz] %s", resolved),
		Intent:     model.IntentQuizRequest,
		Confidence: verdict,
		Plan: []model.ActionPlanEntry{
			{Action: model.ActionQuiz, Difficulty: level},
		},
		CreatedAt: time.Now(),
	}
	id, err := s.interactionRepo.Append(ctx, interaction)
	if err != nil {
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}

	if err := s.quizCache.SetAnswerKey(ctx, id, AnswerKey(quiz)); err != nil {
		log.Printf("Warning: answer key cache write failed for interaction %d: %v", id, err)
	}

	return &model.QuizResponse{
		InteractionID: id,
		StudentID:     studentID,
		Topic:         resolved,
		Difficulty:    level,
		Quiz:          quiz,
	}, nil
}

// SubmitAnswer grades a submission against the stored answer key, closes
// the interaction, and feeds the outcome into the student model. A
// duplicate submission is a no-op that returns the prior outcome.
func (s *TutorService) SubmitAnswer(ctx context.Context, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	interaction, err := s.interactionRepo.GetByID(ctx, req.InteractionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction: %w", err)
	}
	if interaction == nil {
		return nil, model.ErrInteractionNotFound
	}

	correctOption := req.CorrectOption
	key, err := s.quizCache.GetAnswerKey(ctx, req.InteractionID)
	if err != nil {
		log.Printf("Warning: answer key cache read failed for interaction %d: %v", req.InteractionID, err)
	}
	if req.QuestionIndex >= 0 && req.QuestionIndex < len(key) {
		correctOption = key[req.QuestionIndex]
	}

	selected := strings.TrimSpace(req.SelectedOption)
	correct := correctOption != "" && selected == strings.TrimSpace(correctOption)

	// Close is the atomic gate against duplicate submissions: only the
	// winner updates the student model.
	err = s.interactionRepo.Close(ctx, req.InteractionID, selected, correct)
	if errors.Is(err, model.ErrAlreadyAnswered) {
		prior, getErr := s.interactionRepo.GetByID(ctx, req.InteractionID)
		if getErr != nil {
			return nil, getErr
		}
		resp := &model.SubmitAnswerResponse{
			InteractionID: req.InteractionID,
			StudentID:     interaction.StudentID,
			Topic:         interaction.Topic,
			Duplicate:     true,
		}
		if prior != nil && prior.Outcome != nil {
			resp.SelectedOption = prior.Outcome.SelectedOption
			resp.Correct = prior.Outcome.Correct
		}
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	record, err := s.students.RecordAnswer(ctx, interaction.StudentID, interaction.Topic, correct)
	if err != nil {
		return nil, err
	}

	return &model.SubmitAnswerResponse{
		InteractionID:  req.InteractionID,
		StudentID:      interaction.StudentID,
		Topic:          interaction.Topic,
		SelectedOption: selected,
		Correct:        correct,
		Record:         record,
	}, nil
}

// Interactions lists a student's interaction history, optionally filtered
// to one topic.
func (s *TutorService) Interactions(ctx context.Context, studentID, topic string) ([]*model.Interaction, error) {
	if topic != "" {
		return s.interactionRepo.ListByTopic(ctx, studentID, NormalizeTopic(topic))
	}
	return s.interactionRepo.ListByStudent(ctx, studentID)
}
