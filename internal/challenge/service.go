package challenge

import (
	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/progress"
	"github.com/codequest-dev/codequest/internal/validator"
)

// Service binds challenge definitions, the validator and the progress
// tracker together, exposing the submit/hint/solution operations the UI
// layer consumes.
type Service struct {
	validator *validator.Validator
	tracker   *progress.Tracker

	challenges map[string]*domain.ChallengeDefinition
	order      []string
}

// NewService creates the orchestrator over a loaded catalog and wires the
// tracker's category resolver to it.
func NewService(catalog []*domain.ChallengeDefinition, v *validator.Validator, t *progress.Tracker) *Service {
	s := &Service{
		validator:  v,
		tracker:    t,
		challenges: make(map[string]*domain.ChallengeDefinition, len(catalog)),
		order:      make([]string, 0, len(catalog)),
	}
	for _, ch := range catalog {
		s.challenges[ch.ID] = ch
		s.order = append(s.order, ch.ID)
	}

	t.SetCategoryResolver(func(id string) domain.Category {
		if ch, ok := s.challenges[id]; ok {
			return ch.Category
		}
		return ""
	})
	return s
}

// SubmitResult is returned to the UI layer for every submission.
type SubmitResult struct {
	Valid     bool                  `json:"valid"`
	Score     float64               `json:"score"`
	Message   string                `json:"message"`
	XPAwarded int                   `json:"xp_awarded"`
	Feedback  string                `json:"feedback"`
	Details   []domain.CheckResult  `json:"details"`
	Outcome   domain.AttemptOutcome `json:"outcome"`
}

// Submit validates user code against a challenge and records the attempt.
// The full challenge XP is awarded only on first completion; any other
// attempt earns partial credit proportional to its score.
func (s *Service) Submit(id, code string) (*SubmitResult, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}

	if !s.tracker.Started(id) {
		s.tracker.StartChallenge(id)
	}
	firstCompletion := !s.tracker.Completed(id)

	result := s.validator.Validate(ch, code)
	outcome, err := s.tracker.SubmitAttempt(id, result)
	if err != nil {
		return nil, err
	}

	xp := result.XPAwarded
	if result.Valid && firstCompletion {
		xp = ch.XP
	}

	return &SubmitResult{
		Valid:     result.Valid,
		Score:     result.Score,
		Message:   result.Message,
		XPAwarded: xp,
		Feedback:  validator.Feedback(result),
		Details:   result.Details,
		Outcome:   outcome,
	}, nil
}

// Start opens a working session on a challenge.
func (s *Service) Start(id string) error {
	if _, ok := s.challenges[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	s.tracker.StartChallenge(id)
	return nil
}

// GetHint returns the hint at the given reveal index.
func (s *Service) GetHint(id string, index int) (string, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return "", domain.ErrChallengeNotFound
	}
	return ch.Hint(index)
}

// GetSolution returns the reference solution code.
func (s *Service) GetSolution(id string) (map[string]string, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	if len(ch.Solution) == 0 {
		return nil, domain.ErrSolutionNotFound
	}
	return ch.Solution, nil
}

// Get returns a challenge definition by id.
func (s *Service) Get(id string) (*domain.ChallengeDefinition, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	return ch, nil
}

// List returns the catalog in load order.
func (s *Service) List() []*domain.ChallengeDefinition {
	out := make([]*domain.ChallengeDefinition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.challenges[id])
	}
	return out
}

// ByCategory filters the catalog by category.
func (s *Service) ByCategory(cat domain.Category) []*domain.ChallengeDefinition {
	var out []*domain.ChallengeDefinition
	for _, ch := range s.List() {
		if ch.Category == cat {
			out = append(out, ch)
		}
	}
	return out
}

// ByDifficulty filters the catalog by difficulty.
func (s *Service) ByDifficulty(d domain.Difficulty) []*domain.ChallengeDefinition {
	var out []*domain.ChallengeDefinition
	for _, ch := range s.List() {
		if ch.Difficulty == d {
			out = append(out, ch)
		}
	}
	return out
}
