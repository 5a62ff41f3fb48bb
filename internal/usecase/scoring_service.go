package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/paddockleague/fantasy-motogp/internal/domain/league"
	"github.com/paddockleague/fantasy-motogp/internal/domain/race"
	"github.com/paddockleague/fantasy-motogp/internal/domain/raceresult"
	"github.com/paddockleague/fantasy-motogp/internal/domain/rider"
	"github.com/paddockleague/fantasy-motogp/internal/domain/scoring"
	"github.com/paddockleague/fantasy-motogp/internal/domain/team"
	"github.com/paddockleague/fantasy-motogp/internal/platform/cache"
	idgen "github.com/paddockleague/fantasy-motogp/internal/platform/id"
	"github.com/paddockleague/fantasy-motogp/internal/platform/logging"
	"github.com/paddockleague/fantasy-motogp/internal/platform/resilience"
)

// ResultInput is one classification row as delivered by the results
// feed.
type ResultInput struct {
	RiderID  string
	Category string
	Position int
	Status   string
}

// IngestResultsInput replaces one session's classification for a race.
type IngestResultsInput struct {
	RaceID  string
	Session string
	Results []ResultInput
}

// RecomputePublisher hands a recompute off to the job queue so result
// ingestion returns fast. When nil, recomputes run inline.
type RecomputePublisher interface {
	PublishRecompute(ctx context.Context, leagueID, raceID string) error
}

type ScoringService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	raceRepo   race.Repository
	resultRepo raceresult.Repository
	scoreRepo  scoring.Repository
	fallback   *FallbackResolver
	publisher  RecomputePublisher
	cache      *cache.Store
	flights    resilience.SingleFlight
	pool       *ants.Pool
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	raceRepo race.Repository,
	resultRepo raceresult.Repository,
	scoreRepo scoring.Repository,
	fallback *FallbackResolver,
	publisher RecomputePublisher,
	store *cache.Store,
	pool *ants.Pool,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		raceRepo:   raceRepo,
		resultRepo: resultRepo,
		scoreRepo:  scoreRepo,
		fallback:   fallback,
		publisher:  publisher,
		cache:      store,
		pool:       pool,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// IngestResults stores one session's classification and kicks off a
// recompute for every league in the race's season. Re-ingesting the
// same session replaces the previous classification, so steward
// corrections just flow through again.
func (s *ScoringService) IngestResults(ctx context.Context, input IngestResultsInput) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.IngestResults")
	defer span.End()

	input.RaceID = strings.TrimSpace(input.RaceID)
	if input.RaceID == "" {
		return fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	session := raceresult.Session(strings.ToUpper(strings.TrimSpace(input.Session)))
	if !session.Valid() {
		return fmt.Errorf("%w: unknown session %q", ErrInvalidInput, input.Session)
	}
	if len(input.Results) == 0 {
		return fmt.Errorf("%w: results are required", ErrInvalidInput)
	}

	event, err := s.raceRepo.GetByID(ctx, input.RaceID)
	if err != nil {
		if errors.Is(err, race.ErrNotFound) {
			return fmt.Errorf("%w: race %s", ErrNotFound, input.RaceID)
		}
		return fmt.Errorf("get race: %w", err)
	}
	if session == raceresult.SessionSprint && !event.HasSprint() {
		return fmt.Errorf("%w: race %s has no sprint", ErrInvalidInput, event.ID)
	}

	now := s.now().UTC()
	rows := make([]raceresult.Result, 0, len(input.Results))
	seen := make(map[string]bool, len(input.Results))
	for _, in := range input.Results {
		riderID := strings.TrimSpace(in.RiderID)
		if riderID == "" {
			return fmt.Errorf("%w: result rider id is required", ErrInvalidInput)
		}
		if seen[riderID] {
			return fmt.Errorf("%w: rider %s classified twice", ErrInvalidInput, riderID)
		}
		seen[riderID] = true

		category := riderCategory(in.Category)
		if !category.Valid() {
			return fmt.Errorf("%w: rider %s has unknown category %q", ErrInvalidInput, riderID, in.Category)
		}
		status := raceresult.NormalizeStatus(in.Status)
		if status.Finished() && in.Position < 1 {
			return fmt.Errorf("%w: rider %s finished with position %d", ErrInvalidInput, riderID, in.Position)
		}
		resultID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate result id: %w", err)
		}
		rows = append(rows, raceresult.Result{
			ID:        resultID,
			RaceID:    event.ID,
			Session:   session,
			RiderID:   riderID,
			Category:  category,
			Position:  in.Position,
			Status:    status,
			CreatedAt: now,
		})
	}

	if err := s.resultRepo.ReplaceByRaceSession(ctx, event.ID, session, rows); err != nil {
		return fmt.Errorf("store results: %w", err)
	}
	s.logger.InfoContext(ctx, "results ingested",
		"race_id", event.ID,
		"session", string(session),
		"rows", len(rows),
	)

	leagues, err := s.leagueRepo.ListBySeason(ctx, event.Season)
	if err != nil {
		return fmt.Errorf("list season leagues: %w", err)
	}
	for _, l := range leagues {
		if s.publisher != nil {
			if err := s.publisher.PublishRecompute(ctx, l.ID, event.ID); err == nil {
				continue
			} else {
				s.logger.WarnContext(ctx, "recompute publish failed, running inline",
					"league_id", l.ID, "race_id", event.ID, "error", err)
			}
		}
		if err := s.RecomputeRace(ctx, l.ID, event.ID); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeRace rebuilds every team score for one league and race from
// the stored classification. Concurrent calls for the same pair share
// one computation.
func (s *ScoringService) RecomputeRace(ctx context.Context, leagueID, raceID string) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecomputeRace")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	raceID = strings.TrimSpace(raceID)
	if leagueID == "" || raceID == "" {
		return fmt.Errorf("%w: league id and race id are required", ErrInvalidInput)
	}

	_, err, _ := s.flights.Do("recompute:"+leagueID+":"+raceID, func() (any, error) {
		return nil, s.recomputeRace(ctx, leagueID, raceID)
	})
	return err
}

func (s *ScoringService) recomputeRace(ctx context.Context, leagueID, raceID string) error {
	owningLeague, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return fmt.Errorf("get league: %w", err)
	}
	event, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		if errors.Is(err, race.ErrNotFound) {
			return fmt.Errorf("%w: race %s", ErrNotFound, raceID)
		}
		return fmt.Errorf("get race: %w", err)
	}

	raceRows, err := s.resultRepo.ListByRaceSession(ctx, event.ID, raceresult.SessionRace)
	if err != nil {
		return fmt.Errorf("list race results: %w", err)
	}
	if len(raceRows) == 0 {
		s.logger.InfoContext(ctx, "race has no classification yet, skipping recompute",
			"league_id", leagueID, "race_id", event.ID)
		return nil
	}
	raceResults := indexResults(raceRows)

	var sprintResults map[string]raceresult.Result
	if event.HasSprint() && owningLeague.Scoring.SprintScoringEnabled {
		sprintRows, err := s.resultRepo.ListByRaceSession(ctx, event.ID, raceresult.SessionSprint)
		if err != nil {
			return fmt.Errorf("list sprint results: %w", err)
		}
		sprintResults = indexResults(sprintRows)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list league teams: %w", err)
	}

	now := s.now().UTC()
	scores := make([]scoring.TeamScore, 0, len(teams))
	for _, entry := range teams {
		resolved, source, ok, err := s.fallback.Resolve(ctx, entry.ID, *event)
		if err != nil {
			return err
		}
		if !ok {
			if owningLeague.Scoring.MissedRacePolicy != league.MissedRaceMaxPenalty {
				continue
			}
			scoreID, err := s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate score id: %w", err)
			}
			scores = append(scores, scoring.TeamScore{
				ID:         scoreID,
				TeamID:     entry.ID,
				LeagueID:   leagueID,
				RaceID:     event.ID,
				Points:     scoring.MissedRaceScore(owningLeague.Scoring),
				Source:     scoring.SourcePenalty,
				ComputedAt: now,
			})
			continue
		}

		breakdown, points, err := scoring.ScoreLineup(resolved, raceResults, sprintResults, owningLeague.Scoring)
		if err != nil {
			if errors.Is(err, scoring.ErrMissingResult) {
				s.logger.WarnContext(ctx, "classification incomplete, deferring recompute",
					"league_id", leagueID, "race_id", event.ID, "team_id", entry.ID, "error", err)
				return nil
			}
			return fmt.Errorf("score lineup: %w", err)
		}
		scoreID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate score id: %w", err)
		}
		scores = append(scores, scoring.TeamScore{
			ID:         scoreID,
			TeamID:     entry.ID,
			LeagueID:   leagueID,
			RaceID:     event.ID,
			Points:     points,
			Source:     source,
			Breakdown:  breakdown,
			ComputedAt: now,
		})
	}

	if err := s.scoreRepo.ReplaceByLeagueRace(ctx, leagueID, event.ID, scores); err != nil {
		return fmt.Errorf("store scores: %w", err)
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "standings:"+leagueID)
	}

	s.logger.InfoContext(ctx, "race recomputed",
		"league_id", leagueID,
		"race_id", event.ID,
		"teams_scored", len(scores),
	)
	return nil
}

// RecomputeSeason replays every finished race of the league's season
// through the worker pool. Used after scoring parameter changes and by
// the season reset.
func (s *ScoringService) RecomputeSeason(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecomputeSeason")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	owningLeague, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
		}
		return fmt.Errorf("get league: %w", err)
	}
	calendar, err := s.raceRepo.ListBySeason(ctx, owningLeague.Season)
	if err != nil {
		return fmt.Errorf("list season races: %w", err)
	}

	now := s.now().UTC()
	var wg sync.WaitGroup
	errs := make([]error, len(calendar))
	for i, event := range calendar {
		if !event.Finished(now) {
			continue
		}
		i, raceID := i, event.ID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			errs[i] = s.RecomputeRace(ctx, leagueID, raceID)
		}
		if s.pool != nil {
			if err := s.pool.Submit(task); err != nil {
				wg.Done()
				errs[i] = fmt.Errorf("submit recompute: %w", err)
			}
		} else {
			task()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (s *ScoringService) ListTeamScores(ctx context.Context, teamID string) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ListTeamScores")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	scores, err := s.scoreRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}
	return scores, nil
}

func riderCategory(raw string) rider.Category {
	return rider.Category(strings.ToUpper(strings.TrimSpace(raw)))
}

func indexResults(rows []raceresult.Result) map[string]raceresult.Result {
	out := make(map[string]raceresult.Result, len(rows))
	for _, row := range rows {
		out[row.RiderID] = row
	}
	return out
}
