package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/matching"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

const (
	VariantOpeningsForStudent = "openings_for_student"
	VariantMentorsForStudent  = "mentors_for_student"
	VariantStudentsForFaculty = "students_for_faculty"
	VariantStudentsForOpening = "students_for_opening"
)

// OpeningMatch explains how one student scores against one opening.
type OpeningMatch struct {
	OpeningID           string   `json:"opening_id"`
	MatchScore          int      `json:"match_score"`
	BaseScore           int      `json:"base_score"`
	MatchedConceptNames []string `json:"matched_concept_names"`
	MissingConceptNames []string `json:"missing_concept_names"`
	Eligible            bool     `json:"eligible"`
	Reason              string   `json:"reason,omitempty"`
}

type RecommendationService interface {
	OpeningsForStudent(ctx context.Context, studentID string, limit int) ([]domain.Recommendation, error)
	MentorsForStudent(ctx context.Context, studentID string, limit int) ([]domain.Recommendation, error)
	StudentsForFaculty(ctx context.Context, facultyID string, limit int) ([]domain.Recommendation, error)
	StudentsForOpening(ctx context.Context, facultyID, openingID string, limit int) ([]domain.Recommendation, error)
	OpeningMatch(ctx context.Context, studentID, openingID string) (OpeningMatch, error)
}

type recommendationService struct {
	log      *logger.Logger
	people   graph.PeopleStore
	openings graph.OpeningStore
	cfg      matching.Config
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewRecommendationService(
	log *logger.Logger,
	people graph.PeopleStore,
	openings graph.OpeningStore,
	cfg matching.Config,
) RecommendationService {
	return &recommendationService{
		log:      log.With("service", "RecommendationService"),
		people:   people,
		openings: openings,
		cfg:      cfg.Normalize(),
		metrics:  observability.Current(),
		now:      time.Now,
	}
}

// run wraps one variant with a span, metrics and error mapping.
func (s *recommendationService) run(
	ctx context.Context,
	variant string,
	subjectID string,
	fn func(ctx context.Context) ([]domain.Recommendation, error),
) ([]domain.Recommendation, error) {
	start := time.Now()
	op := "recommendation." + variant
	ctx, span := observability.StartSpan(ctx, op,
		attribute.String("recommendation.variant", variant),
		attribute.String("recommendation.subject_id", subjectID),
	)
	defer span.End()

	out, err := fn(ctx)
	if err != nil {
		err = dataagg.MapError(op, err)
		observability.RecordError(span, err)
		s.metrics.ObserveRecommendation(variant, string(domainagg.CodeOf(err)), time.Since(start), 0)
		if code := domainagg.CodeOf(err); code == domainagg.CodeInternal || code == domainagg.CodeUnavailable {
			s.log.Error("recommendation failed", "variant", variant, "subject_id", subjectID, "error", err)
		}
		return nil, err
	}
	if out == nil {
		out = []domain.Recommendation{}
	}
	span.SetAttributes(attribute.Int("recommendation.results", len(out)))
	s.metrics.ObserveRecommendation(variant, "success", time.Since(start), len(out))
	return out, nil
}

func (s *recommendationService) loadPerson(ctx context.Context, op, userID string, role domain.Role) (*domain.Person, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "user_id required", nil)
	}
	p, err := s.people.GetPerson(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := dataagg.RequireRole(op, p.Role, role); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *recommendationService) OpeningsForStudent(ctx context.Context, studentID string, limit int) ([]domain.Recommendation, error) {
	const variant = VariantOpeningsForStudent
	return s.run(ctx, variant, studentID, func(ctx context.Context) ([]domain.Recommendation, error) {
		op := "recommendation." + variant
		student, err := s.loadPerson(ctx, op, studentID, domain.RoleStudent)
		if err != nil {
			return nil, err
		}
		if limit <= 0 {
			return []domain.Recommendation{}, nil
		}

		var (
			pool    []*domain.Opening
			applied map[string]struct{}
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			pool, err = s.openings.ListActive(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			applied, err = s.openings.AppliedOpeningIDs(gctx, student.UserID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		now := s.now()
		loc := s.cfg.Location()
		cands := make([]matching.Candidate, 0, len(pool))
		for _, o := range pool {
			if o == nil {
				continue
			}
			if _, ok := applied[o.ID]; ok {
				continue
			}
			if d := matching.Check(matching.SnapshotOf(student, o, false), now, loc); !d.Eligible {
				continue
			}
			base := matching.Score(o.RequiredConcepts, student.Skills)
			score := s.cfg.Recency.ApplyRecency(base, matching.AgeDays(o.CreatedAt, now))
			cands = append(cands, matching.Candidate{
				Recommendation: domain.Recommendation{
					EntityID:            o.ID,
					DisplayFields:       o.DisplayFields(),
					MatchScore:          score,
					MatchedConceptNames: matching.Matched(o.RequiredConcepts, student.Skills),
				},
				CreatedAt: o.CreatedAt,
			})
		}
		return matching.Rank(cands, limit), nil
	})
}

func (s *recommendationService) MentorsForStudent(ctx context.Context, studentID string, limit int) ([]domain.Recommendation, error) {
	const variant = VariantMentorsForStudent
	return s.run(ctx, variant, studentID, func(ctx context.Context) ([]domain.Recommendation, error) {
		student, err := s.loadPerson(ctx, "recommendation."+variant, studentID, domain.RoleStudent)
		if err != nil {
			return nil, err
		}
		if limit <= 0 {
			return []domain.Recommendation{}, nil
		}
		faculty, err := s.people.ListByRole(ctx, domain.RoleFaculty)
		if err != nil {
			return nil, err
		}
		return matching.Rank(peopleCandidates(student.Interests, faculty, interestsOf), limit), nil
	})
}

func (s *recommendationService) StudentsForFaculty(ctx context.Context, facultyID string, limit int) ([]domain.Recommendation, error) {
	const variant = VariantStudentsForFaculty
	return s.run(ctx, variant, facultyID, func(ctx context.Context) ([]domain.Recommendation, error) {
		fac, err := s.loadPerson(ctx, "recommendation."+variant, facultyID, domain.RoleFaculty)
		if err != nil {
			return nil, err
		}
		if limit <= 0 {
			return []domain.Recommendation{}, nil
		}
		students, err := s.people.ListByRole(ctx, domain.RoleStudent)
		if err != nil {
			return nil, err
		}
		return matching.Rank(peopleCandidates(fac.Interests, students, skillsOf), limit), nil
	})
}

func (s *recommendationService) StudentsForOpening(ctx context.Context, facultyID, openingID string, limit int) ([]domain.Recommendation, error) {
	const variant = VariantStudentsForOpening
	return s.run(ctx, variant, facultyID, func(ctx context.Context) ([]domain.Recommendation, error) {
		op := "recommendation." + variant
		if _, err := s.loadPerson(ctx, op, facultyID, domain.RoleFaculty); err != nil {
			return nil, err
		}
		openingID = strings.TrimSpace(openingID)
		if openingID == "" {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, "opening_id required", nil)
		}
		opening, err := s.openings.GetOpening(ctx, openingID)
		if err != nil {
			return nil, err
		}
		if err := dataagg.RequireOwner(op, opening.FacultyID, facultyID); err != nil {
			return nil, err
		}
		if limit <= 0 {
			return []domain.Recommendation{}, nil
		}

		var (
			students   []*domain.Person
			applicants map[string]struct{}
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			students, err = s.people.ListByRole(gctx, domain.RoleStudent)
			return err
		})
		g.Go(func() error {
			var err error
			applicants, err = s.openings.ApplicantIDs(gctx, opening.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		now := s.now()
		loc := s.cfg.Location()
		eligible := make([]*domain.Person, 0, len(students))
		for _, st := range students {
			if st == nil {
				continue
			}
			_, applied := applicants[st.UserID]
			if d := matching.Check(matching.SnapshotOf(st, opening, applied), now, loc); !d.Eligible {
				continue
			}
			eligible = append(eligible, st)
		}
		return matching.Rank(peopleCandidates(opening.RequiredConcepts, eligible, skillsOf), limit), nil
	})
}

func (s *recommendationService) OpeningMatch(ctx context.Context, studentID, openingID string) (OpeningMatch, error) {
	const op = "recommendation.opening_match"
	ctx, span := observability.StartSpan(ctx, op, attribute.String("opening.id", openingID))
	defer span.End()

	student, err := s.loadPerson(ctx, op, studentID, domain.RoleStudent)
	if err != nil {
		return OpeningMatch{}, dataagg.MapError(op, err)
	}
	opening, err := s.openings.GetOpening(ctx, strings.TrimSpace(openingID))
	if err != nil {
		return OpeningMatch{}, dataagg.MapError(op, err)
	}
	applied, err := s.openings.AppliedOpeningIDs(ctx, student.UserID)
	if err != nil {
		return OpeningMatch{}, dataagg.MapError(op, err)
	}
	_, already := applied[opening.ID]

	now := s.now()
	decision := matching.Check(matching.SnapshotOf(student, opening, already), now, s.cfg.Location())
	base := matching.Score(opening.RequiredConcepts, student.Skills)
	matched := matching.Matched(opening.RequiredConcepts, student.Skills)
	return OpeningMatch{
		OpeningID:           opening.ID,
		BaseScore:           base,
		MatchScore:          s.cfg.Recency.ApplyRecency(base, matching.AgeDays(opening.CreatedAt, now)),
		MatchedConceptNames: matched,
		MissingConceptNames: missing(opening.RequiredConcepts, matched),
		Eligible:            decision.Eligible,
		Reason:              decision.Reason,
	}, nil
}

func skillsOf(p *domain.Person) []string    { return p.Skills }
func interestsOf(p *domain.Person) []string { return p.Interests }

// peopleCandidates scores each person's concept set against required. People
// carry no created_at, so ties keep pool order.
func peopleCandidates(required []string, pool []*domain.Person, possessed func(*domain.Person) []string) []matching.Candidate {
	out := make([]matching.Candidate, 0, len(pool))
	for _, p := range pool {
		if p == nil {
			continue
		}
		have := possessed(p)
		out = append(out, matching.Candidate{
			Recommendation: domain.Recommendation{
				EntityID:            p.UserID,
				DisplayFields:       p.DisplayFields(),
				MatchScore:          matching.Score(required, have),
				MatchedConceptNames: matching.Matched(required, have),
			},
		})
	}
	return out
}

func missing(required, matched []string) []string {
	have := make(map[string]struct{}, len(matched))
	for _, m := range matched {
		have[m] = struct{}{}
	}
	out := []string{}
	for _, name := range domain.NormalizeConceptNames(required) {
		if _, ok := have[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
