package personalization

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vitalia-ro/wellness-ai-platform/internal/observability/metrics"
	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
	"github.com/vitalia-ro/wellness-ai-platform/pkg/logging"
)

// Service orchestrates the per-message fast path: extract, classify, merge
// against the stored profile, persist, synthesize.
type Service struct {
	repo    profile.Repository
	logger  *logging.Logger
	metrics *metrics.PersonalizationMetrics
	locks   sync.Map // userID -> *sync.Mutex
	now     func() time.Time
}

// NewService wires the fast path over a profile repository.
func NewService(repo profile.Repository, logger *logging.Logger, m *metrics.PersonalizationMetrics) *Service {
	if repo == nil {
		panic("personalization: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:    repo,
		logger:  logger.Component("personalization"),
		metrics: m,
		now:     time.Now,
	}
}

// Result is the fast-path output for one message.
type Result struct {
	Profile    *profile.UserProfile `json:"profile"`
	Mood       profile.Mood         `json:"mood"`
	Context    string               `json:"context"`
	FactsFound int                  `json:"facts_found"`
}

// ProcessMessage runs the read-merge-write cycle for one message. The cycle
// is serialized per user ID so two in-flight messages from the same user
// cannot lose updates; distinct users proceed in parallel.
func (s *Service) ProcessMessage(ctx context.Context, userID, message string) (*Result, error) {
	if userID == "" {
		s.metrics.ObserveMessage("invalid")
		return nil, profile.ErrMissingUserID
	}

	facts, err := Extract(message)
	if err != nil {
		s.metrics.ObserveMessage("invalid")
		return nil, err
	}
	mood := ClassifyMood(message)
	facts.Style = detectStyle(message)

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	start := s.now()

	current, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrProfileNotFound):
		current = profile.New(userID, start)
	default:
		s.metrics.ObserveMessage("store_error")
		s.metrics.ObserveStoreError("get")
		return nil, fmt.Errorf("personalization: load profile %s: %w", userID, err)
	}

	merged := profile.Merge(current, facts, mood, start)

	if err := s.repo.Put(ctx, merged); err != nil {
		s.metrics.ObserveMessage("store_error")
		s.metrics.ObserveStoreError("put")
		return nil, fmt.Errorf("personalization: persist profile %s: %w", userID, err)
	}

	block := Synthesize(merged)

	s.metrics.ObserveMergeLatency(s.now().Sub(start).Seconds())
	s.metrics.ObserveContextLength(len(block))
	s.recordFactMetrics(facts)
	s.metrics.ObserveMessage("ok")

	s.logger.Info("message processed",
		"user_id", userID,
		"mood", mood,
		"facts_found", facts.Count(),
	)

	return &Result{
		Profile:    merged,
		Mood:       mood,
		Context:    block,
		FactsFound: facts.Count(),
	}, nil
}

// Profile returns the stored profile for a user.
func (s *Service) Profile(ctx context.Context, userID string) (*profile.UserProfile, error) {
	if userID == "" {
		return nil, profile.ErrMissingUserID
	}
	return s.repo.Get(ctx, userID)
}

// Correct applies explicit correction semantics: the supplied scalar facts
// overwrite stored values even when already set.
func (s *Service) Correct(ctx context.Context, userID string, facts profile.PartialFacts) (*profile.UserProfile, error) {
	if userID == "" {
		return nil, profile.ErrMissingUserID
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalization: load profile %s: %w", userID, err)
	}
	corrected := profile.ApplyCorrection(current, facts, s.now())
	if err := s.repo.Put(ctx, corrected); err != nil {
		s.metrics.ObserveStoreError("put")
		return nil, fmt.Errorf("personalization: persist profile %s: %w", userID, err)
	}
	s.logger.Info("profile corrected", "user_id", userID)
	return corrected, nil
}

// Forget purges a user's profile. The explicit deletion path: nothing in
// the pipeline recreates the profile until the user writes again.
func (s *Service) Forget(ctx context.Context, userID string) error {
	if userID == "" {
		return profile.ErrMissingUserID
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		s.metrics.ObserveStoreError("delete")
		return fmt.Errorf("personalization: delete profile %s: %w", userID, err)
	}
	s.logger.Info("profile deleted", "user_id", userID)
	return nil
}

// AnalyzeHistory runs the batch pass and renders its behavioral block. The
// result is ephemeral; it is returned, not persisted.
func (s *Service) AnalyzeHistory(ctx context.Context, userID string, conversations []Conversation) (*PersonalityProfile, string, error) {
	if userID == "" {
		return nil, "", profile.ErrMissingUserID
	}
	p, err := Analyze(conversations)
	if err != nil {
		s.metrics.ObserveAnalyzerRun("invalid")
		return nil, "", err
	}
	s.metrics.ObserveAnalyzerRun("ok")
	s.logger.Info("history analyzed",
		"user_id", userID,
		"conversations", p.AnalyzedConversations,
		"messages", p.AnalyzedMessages,
	)
	return p, SynthesizeBehavior(p), nil
}

func (s *Service) lockFor(userID string) *sync.Mutex {
	lockAny, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return lockAny.(*sync.Mutex)
}

func (s *Service) recordFactMetrics(facts profile.PartialFacts) {
	if facts.Name != "" {
		s.metrics.ObserveFacts("name", 1)
	}
	if facts.Age != 0 {
		s.metrics.ObserveFacts("age", 1)
	}
	if facts.Occupation != "" {
		s.metrics.ObserveFacts("occupation", 1)
	}
	if facts.Location != "" {
		s.metrics.ObserveFacts("location", 1)
	}
	s.metrics.ObserveFacts("interest", len(facts.Interests))
	s.metrics.ObserveFacts("health_condition", len(facts.HealthConditions))
	s.metrics.ObserveFacts("medication", len(facts.Medications))
	s.metrics.ObserveFacts("desire", len(facts.Desires))
	s.metrics.ObserveFacts("concern", len(facts.Concerns))
	s.metrics.ObserveFacts("pleasure", len(facts.Pleasures))
}
