package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"oneclarity/internal/config"
	"oneclarity/internal/model"
)

const (
	// maxExplanationChars bounds assembled explanation text
	maxExplanationChars = 1000

	// noExplanationText is returned when no usable passages exist
	noExplanationText = "No explanation found."
)

// distractorBank supplies plausible wrong options for mock MCQs
var distractorBank = []string{
	"Limit", "Derivative", "Integral", "Matrix", "Determinant",
	"Probability", "Permutation", "Combination", "Vector",
	"Scalar", "Continuity", "Differentiability", "Gradient", "Rank",
}

// GeneratorService produces explanation text and MCQs through the Gemini
// API, falling back to deterministic local generation when the API is not
// configured or a call fails.
type GeneratorService struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(cfg *config.AIConfig) *GeneratorService {
	return &GeneratorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// GenerateExplanation assembles a student-facing explanation of a topic
// from retrieved passages.
func (s *GeneratorService) GenerateExplanation(ctx context.Context, topic string, passages []model.Passage) string {
	if len(passages) == 0 {
		return noExplanationText
	}

	if !s.config.IsEnabled() {
		return assembleExplanation(passages)
	}

	prompt := s.buildExplainPrompt(topic, passages)
	response, err := s.callGemini(ctx, s.config.Models.Explain, prompt)
	if err != nil {
		return assembleExplanation(passages)
	}

	var result struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(response), &result); err != nil || result.Explanation == "" {
		return assembleExplanation(passages)
	}
	return result.Explanation
}

// GenerateQuiz produces n MCQs for a topic at the given difficulty,
// grounded on the retrieved passages.
func (s *GeneratorService) GenerateQuiz(ctx context.Context, topic string, difficulty model.Difficulty, n int, passages []model.Passage) []model.QuizQuestion {
	if n <= 0 {
		n = 1
	}

	if !s.config.IsEnabled() {
		return s.mockQuiz(topic, difficulty, n, passages)
	}

	prompt := s.buildQuizPrompt(topic, difficulty, n, passages)
	response, err := s.callGemini(ctx, s.config.Models.Quiz, prompt)
	if err != nil {
		return s.mockQuiz(topic, difficulty, n, passages)
	}

	var result struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(response), &result); err != nil || len(result.Questions) == 0 {
		return s.mockQuiz(topic, difficulty, n, passages)
	}

	questions := result.Questions
	if len(questions) > n {
		questions = questions[:n]
	}
	for i := range questions {
		questions[i].Difficulty = difficulty
	}
	return questions
}

// AnswerKey extracts the correct answer letters of a quiz, index-aligned
// with the questions.
func AnswerKey(quiz []model.QuizQuestion) []string {
	key := make([]string, len(quiz))
	for i, q := range quiz {
		key[i] = q.Answer
	}
	return key
}

// assembleExplanation joins passage texts best-first, trimmed to a budget
func assembleExplanation(passages []model.Passage) string {
	var parts []string
	total := 0
	for _, p := range passages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		if total+len(text) > maxExplanationChars && total > 0 {
			break
		}
		parts = append(parts, text)
		total += len(text)
	}
	if len(parts) == 0 {
		return noExplanationText
	}
	joined := strings.Join(parts, "\n\n")
	if len(joined) > maxExplanationChars {
		joined = joined[:maxExplanationChars]
	}
	return joined
}

// mockQuiz builds definitional MCQs without the API. Option order is a
// deterministic rotation so tests and the answer key line up.
func (s *GeneratorService) mockQuiz(topic string, difficulty model.Difficulty, n int, passages []model.Passage) []model.QuizQuestion {
	chapter := topic
	if len(passages) > 0 && passages[0].Chapter != "" {
		chapter = passages[0].Chapter
	}

	questions := make([]model.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		correct := fmt.Sprintf("A brief description of %s.", topic)
		if i < len(passages) && strings.TrimSpace(passages[i].Text) != "" {
			correct = strings.TrimSpace(passages[i].Text)
		}

		distractors := make([]string, 0, 3)
		for _, d := range distractorBank {
			if strings.EqualFold(d, topic) {
				continue
			}
			distractors = append(distractors, d)
			if len(distractors) == 3 {
				break
			}
		}

		correctAt := i % 4
		options := make([]string, 0, 4)
		for pos, d := 0, 0; pos < 4; pos++ {
			if pos == correctAt {
				options = append(options, correct)
				continue
			}
			options = append(options, distractors[d])
			d++
		}

		questions = append(questions, model.QuizQuestion{
			Chapter:     chapter,
			Question:    fmt.Sprintf("Which of the following best describes %s?", topic),
			Options:     options,
			Answer:      string(rune('A' + correctAt)),
			Explanation: correct,
			Difficulty:  difficulty,
		})
	}
	return questions
}

// callGemini makes a request to the Gemini API
func (s *GeneratorService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders

func (s *GeneratorService) buildExplainPrompt(topic string, passages []model.Passage) string {
	var sb strings.Builder
	for _, p := range passages {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", p.Chapter, p.Text))
	}

	return fmt.Sprintf(`You are a patient mathematics tutor. Using ONLY the source passages below,
write a short explanation of the topic for a student. Return ONLY valid JSON:
{
  "explanation": "plain-language explanation, at most 150 words"
}

Topic: %s
Source passages:
%s
Do not introduce facts that are not supported by the passages.`, topic, sb.String())
}

func (s *GeneratorService) buildQuizPrompt(topic string, difficulty model.Difficulty, n int, passages []model.Passage) string {
	var sb strings.Builder
	for _, p := range passages {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", p.Chapter, p.Text))
	}

	return fmt.Sprintf(`You are generating multiple-choice questions for a student. Return ONLY valid JSON:
{
  "questions": [{
    "chapter": "source chapter",
    "question": "question text",
    "options": ["option A", "option B", "option C", "option D"],
    "answer": "A" or "B" or "C" or "D",
    "explanation": "why the answer is correct"
  }]
}

Topic: %s
Difficulty: %s
Number of questions: %d
Source passages:
%s
Base every question on the source passages. Exactly four options each.`, topic, difficulty, n, sb.String())
}
