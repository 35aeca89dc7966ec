package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
)

const statsRebuildWorkers = 8

// StatsService rebuilds every team's win/draw/loss record from the stored
// match results. It exists as a repair job: the records are maintained
// incrementally on every match commit, and this recomputes them from scratch
// when they are suspected to have drifted.
type StatsService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewStatsService(teamRepo team.Repository, matchRepo match.Repository, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StatsService{teamRepo: teamRepo, matchRepo: matchRepo, logger: logger}
}

type RebuildRecordsOutput struct {
	TeamsScanned int
	TeamsFixed   int
}

type record struct {
	wins, draws, losses int
}

// RebuildRecords tallies every stored result into per-team records, then
// fans the comparison and repair out over a worker pool.
func (s *StatsService) RebuildRecords(ctx context.Context) (RebuildRecordsOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RebuildRecords")
	defer span.End()

	results, err := s.matchRepo.ListAll(ctx)
	if err != nil {
		return RebuildRecordsOutput{}, fmt.Errorf("list all matches: %w", err)
	}

	tally := make(map[string]record)
	for _, r := range results {
		playerRec := tally[r.PlayerTeamID]
		cpuRec := tally[r.CPUTeamID]
		switch {
		case r.PlayerScore > r.CPUScore:
			playerRec.wins++
			cpuRec.losses++
		case r.PlayerScore == r.CPUScore:
			playerRec.draws++
			cpuRec.draws++
		default:
			playerRec.losses++
			cpuRec.wins++
		}
		tally[r.PlayerTeamID] = playerRec
		tally[r.CPUTeamID] = cpuRec
	}

	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return RebuildRecordsOutput{}, fmt.Errorf("list all teams: %w", err)
	}

	pool, err := ants.NewPool(statsRebuildWorkers)
	if err != nil {
		return RebuildRecordsOutput{}, fmt.Errorf("%w: start rebuild pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fixed    int
		firstErr error
	)

	for _, item := range teams {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			want := tally[item.ID]
			if item.Wins == want.wins && item.Draws == want.draws && item.Losses == want.losses {
				return
			}

			// CPU teams start with a fabricated record; played matches are
			// stacked on top of it, so a tally mismatch there is expected
			// and not a drift.
			if item.IsCPU() {
				return
			}

			item.Wins = want.wins
			item.Draws = want.draws
			item.Losses = want.losses
			if err := s.teamRepo.Update(ctx, item); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("update team %s: %w", item.ID, err)
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			fixed++
			mu.Unlock()
			s.logger.InfoContext(ctx, "team record rebuilt", "team_id", item.ID,
				"wins", want.wins, "draws", want.draws, "losses", want.losses)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: submit rebuild task: %v", ErrDependencyUnavailable, submitErr)
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	if firstErr != nil {
		return RebuildRecordsOutput{}, firstErr
	}
	return RebuildRecordsOutput{TeamsScanned: len(teams), TeamsFixed: fixed}, nil
}
