package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/futsalverse/futsal-manager/internal/domain/match"
	"github.com/futsalverse/futsal-manager/internal/domain/player"
	"github.com/futsalverse/futsal-manager/internal/domain/sheet"
	"github.com/futsalverse/futsal-manager/internal/domain/sim"
	"github.com/futsalverse/futsal-manager/internal/domain/team"
	"github.com/futsalverse/futsal-manager/internal/platform/id"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

// Goal-count distribution for one fixture. Totals are drawn from a normal
// and clamped, so the typical match lands around six goals.
const (
	goalCountMean   = 6.0
	goalCountStdDev = 3.0
	goalCountMax    = 15
)

// Per-goal scoring chance: an even match sits at 50%, every point of lineup
// skill advantage moves the needle by two.
const (
	goalChanceBase        = 50
	goalChancePerSkillGap = 2
)

// Coin reward tuning. The base pays more for punching up, winning adds a
// per-goal-difference bonus, draws and losses keep a cut of the base.
const (
	rewardBase           = 200
	rewardPerSkillGap    = 5
	rewardPerGoalDiff    = 5
	rewardDrawMultiplier = 0.60
	rewardLossMultiplier = 0.35
)

// Post-match stamina movement. Fielded players drain (keepers at half rate),
// benched players recover.
const (
	staminaDrainLower = 27
	staminaDrainUpper = 33
	staminaDrainFloor = 1
	staminaRegenLower = 10
	staminaRegenUpper = 20
)

// ResultPublisher pushes a finished match to an external consumer. Delivery
// is best effort and never blocks the simulation result.
type ResultPublisher interface {
	PublishMatchResult(ctx context.Context, result match.Result, goals []match.Goal) error
}

type MatchService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	sheetRepo  sheet.Repository
	matchRepo  match.Repository
	writer     match.Writer
	opponents  *OpponentService
	positions  *sim.PositionGenerator
	calc       sim.SkillCalculator
	rng        *rng.Rand
	idGen      id.Generator
	publisher  ResultPublisher
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	sheetRepo sheet.Repository,
	matchRepo match.Repository,
	writer match.Writer,
	opponents *OpponentService,
	positions *sim.PositionGenerator,
	calc sim.SkillCalculator,
	r *rng.Rand,
	idGen id.Generator,
	publisher ResultPublisher,
	logger *logging.Logger,
	now func() time.Time,
) *MatchService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &MatchService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		sheetRepo:  sheetRepo,
		matchRepo:  matchRepo,
		writer:     writer,
		opponents:  opponents,
		positions:  positions,
		calc:       calc,
		rng:        r,
		idGen:      idGen,
		publisher:  publisher,
		logger:     logger,
		now:        now,
	}
}

// MatchOutput is the full account of one simulated fixture, including
// display names for both lineups so callers need no second lookup.
type MatchOutput struct {
	Result            match.Result
	Goals             []match.Goal
	PlayerTeam        team.Team
	CPUTeam           team.Team
	PlayerLineupNames map[sheet.Slot]string
	CPULineupNames    map[sheet.Slot]string
}

// PlayAgainstCPU simulates one match between the caller's selected sheet and
// a CPU opponent at the requested difficulty, then persists the result, goal
// log, stamina movement, career counters, coin reward, and both teams'
// records in a single commit.
func (s *MatchService) PlayAgainstCPU(ctx context.Context, ownerID, teamID, sheetID string, difficulty int) (MatchOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.PlayAgainstCPU")
	defer span.End()

	playerTeam, lineup, roster, err := s.loadChallenger(ctx, ownerID, teamID, sheetID)
	if err != nil {
		return MatchOutput{}, err
	}

	challengerSkill := sim.TeamSkill(roster)
	opponent, err := s.opponents.ForChallenge(ctx, challengerSkill, difficulty)
	if err != nil {
		return MatchOutput{}, err
	}

	playerByID := indexPlayers(roster)
	cpuByID := indexPlayers(opponent.Players)

	run := s.simulate(lineup, playerByID, opponent.Lineup, cpuByID)

	matchID, err := s.idGen.NewID()
	if err != nil {
		return MatchOutput{}, fmt.Errorf("generate match id: %w", err)
	}

	result := match.Result{
		ID:                 matchID,
		PlayerTeamID:       playerTeam.ID,
		CPUTeamID:          opponent.Team.ID,
		CPUTeamName:        opponent.Team.Name,
		PlayerScore:        run.playerScore,
		CPUScore:           run.cpuScore,
		PlayerAverageSkill: run.playerAverage,
		CPUAverageSkill:    run.cpuAverage,
		CoinsReward:        calcCoinReward(challengerSkill, opponent.Team.CPUSkill, run.playerScore, run.cpuScore),
		PlayerLineup:       lineup,
		CPULineup:          opponent.Lineup,
		PlayedAt:           s.now().UTC(),
	}
	if err := result.Validate(); err != nil {
		return MatchOutput{}, fmt.Errorf("simulated result invalid: %w", err)
	}

	goals, err := s.buildGoalLog(matchID, playerTeam.ID, opponent.Team.ID, lineup, opponent.Lineup, run)
	if err != nil {
		return MatchOutput{}, err
	}

	playerTeam, cpuTeam := applyRecords(playerTeam, opponent.Team, result)
	playerTeam.Coins += result.CoinsReward

	updatedPlayers := s.settlePlayers(roster, lineup, goals, playerTeam.ID)
	updatedPlayers = append(updatedPlayers, s.settleCPUPlayers(opponent.Players, opponent.Lineup, goals, opponent.Team.ID)...)

	commit := match.Commit{
		Result:  result,
		Goals:   goals,
		Teams:   []team.Team{playerTeam, cpuTeam},
		Players: updatedPlayers,
	}
	if err := s.writer.CommitResult(ctx, commit); err != nil {
		return MatchOutput{}, fmt.Errorf("commit match result: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishMatchResult(ctx, result, goals); err != nil {
			s.logger.WarnContext(ctx, "match result publish failed", "match_id", result.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "match played",
		"match_id", result.ID,
		"player_team_id", playerTeam.ID,
		"cpu_team_id", cpuTeam.ID,
		"score", fmt.Sprintf("%d-%d", result.PlayerScore, result.CPUScore),
		"reward", result.CoinsReward)

	return MatchOutput{
		Result:            result,
		Goals:             goals,
		PlayerTeam:        playerTeam,
		CPUTeam:           cpuTeam,
		PlayerLineupNames: lineupNames(lineup, playerByID),
		CPULineupNames:    lineupNames(opponent.Lineup, cpuByID),
	}, nil
}

// Get returns one stored match with its goal log. Only the owner of the
// human side may read it.
func (s *MatchService) Get(ctx context.Context, ownerID, matchID string) (match.Result, []match.Goal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if strings.TrimSpace(matchID) == "" {
		return match.Result{}, nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	result, goals, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Result{}, nil, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Result{}, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if err := s.authorizeTeam(ctx, ownerID, result.PlayerTeamID); err != nil {
		return match.Result{}, nil, err
	}
	return result, goals, nil
}

// History lists a team's played matches, newest first.
func (s *MatchService) History(ctx context.Context, ownerID, teamID string) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.History")
	defer span.End()

	if err := s.authorizeTeam(ctx, ownerID, teamID); err != nil {
		return nil, err
	}
	results, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list matches by team: %w", err)
	}
	return results, nil
}

// matchRun accumulates the in-flight state of one simulation.
type matchRun struct {
	playerScore   int
	cpuScore      int
	playerAverage int
	cpuAverage    int
	events        []goalEvent
}

type goalEvent struct {
	playerTeamScored bool
	minute           int
	scorerSlot       sheet.Slot
	assistSlot       sheet.Slot
	assisted         bool
}

// simulate rolls the total number of goals, attributes each to a side by
// comparing lineup strength, and stamps each goal with a scorer, an optional
// assist, and a unique minute.
func (s *MatchService) simulate(
	playerLineup sheet.PlayerSlots, playerByID map[string]player.Player,
	cpuLineup sheet.PlayerSlots, cpuByID map[string]player.Player,
) matchRun {
	run := matchRun{
		playerAverage: sim.LineupAverageSkill(playerLineup, playerByID, s.calc),
		cpuAverage:    sim.LineupAverageSkill(cpuLineup, cpuByID, s.calc),
	}

	totalGoals := s.rollGoalCount()
	if totalGoals == 0 {
		return run
	}

	chance := goalChanceBase + goalChancePerSkillGap*(run.playerAverage-run.cpuAverage)
	minutes := s.uniqueMinutes(totalGoals)

	for i := 0; i < totalGoals; i++ {
		scorer := s.positions.ScorerSlot()
		assist, assisted := s.positions.AssistSlot(scorer)

		run.events = append(run.events, goalEvent{
			playerTeamScored: s.rng.Percent() < chance,
			minute:           minutes[i],
			scorerSlot:       scorer,
			assistSlot:       assist,
			assisted:         assisted,
		})
	}

	for _, e := range run.events {
		if e.playerTeamScored {
			run.playerScore++
		} else {
			run.cpuScore++
		}
	}
	return run
}

func (s *MatchService) rollGoalCount() int {
	n := int(math.Round(goalCountMean + goalCountStdDev*s.rng.NormFloat64()))
	if n < 0 {
		return 0
	}
	if n > goalCountMax {
		return goalCountMax
	}
	return n
}

// uniqueMinutes draws n distinct minutes in [1, MaxMinute], ascending, so
// the goal log reads like a real timeline.
func (s *MatchService) uniqueMinutes(n int) []int {
	if n > match.MaxMinute {
		n = match.MaxMinute
	}

	taken := make(map[int]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		minute := s.rng.Between(1, match.MaxMinute)
		if taken[minute] {
			continue
		}
		taken[minute] = true
		out = append(out, minute)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (s *MatchService) buildGoalLog(
	matchID, playerTeamID, cpuTeamID string,
	playerLineup, cpuLineup sheet.PlayerSlots,
	run matchRun,
) ([]match.Goal, error) {
	goals := make([]match.Goal, 0, len(run.events))
	for _, e := range run.events {
		goalID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate goal id: %w", err)
		}

		teamID := cpuTeamID
		lineup := cpuLineup
		if e.playerTeamScored {
			teamID = playerTeamID
			lineup = playerLineup
		}

		goal := match.Goal{
			ID:             goalID,
			MatchID:        matchID,
			TeamID:         teamID,
			Minute:         e.minute,
			ScorerSlot:     e.scorerSlot,
			ScorerPlayerID: lineup.Get(e.scorerSlot),
		}
		if e.assisted {
			goal.AssistSlot = e.assistSlot
			goal.AssistPlayerID = lineup.Get(e.assistSlot)
		}
		if err := goal.Validate(); err != nil {
			return nil, fmt.Errorf("simulated goal invalid: %w", err)
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

// calcCoinReward prices the fixture. Underdogs earn a bigger base, winning
// adds a margin bonus, losing keeps a cut reduced by the margin, and the
// reward never goes negative.
func calcCoinReward(challengerSkill, cpuSkill, playerScore, cpuScore int) int {
	base := float64(rewardBase + rewardPerSkillGap*(cpuSkill-challengerSkill))
	goalDiff := playerScore - cpuScore

	var reward float64
	switch {
	case goalDiff > 0:
		reward = base + float64(rewardPerGoalDiff*goalDiff)
	case goalDiff == 0:
		reward = base * rewardDrawMultiplier
	default:
		reward = base*rewardLossMultiplier + float64(rewardPerGoalDiff*goalDiff)
	}

	if reward < 0 {
		return 0
	}
	return int(math.Round(reward))
}

func applyRecords(playerTeam, cpuTeam team.Team, result match.Result) (team.Team, team.Team) {
	switch {
	case result.PlayerScore > result.CPUScore:
		playerTeam.Wins++
		cpuTeam.Losses++
	case result.PlayerScore == result.CPUScore:
		playerTeam.Draws++
		cpuTeam.Draws++
	default:
		playerTeam.Losses++
		cpuTeam.Wins++
	}
	return playerTeam, cpuTeam
}

// settlePlayers applies stamina drain to fielded players, recovery to the
// bench, and career counters from the goal log.
func (s *MatchService) settlePlayers(roster []player.Player, lineup sheet.PlayerSlots, goals []match.Goal, teamID string) []player.Player {
	fielded := make(map[string]sheet.Slot, len(sheet.AllSlots))
	for _, slot := range sheet.AllSlots {
		if playerID := lineup.Get(slot); playerID != "" {
			fielded[playerID] = slot
		}
	}

	scored, assisted := countContributions(goals, teamID)

	out := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		if slot, ok := fielded[p.ID]; ok {
			drain := s.rng.Between(staminaDrainLower, staminaDrainUpper)
			if slot == sheet.SlotGoalkeeper {
				drain /= 2
			}
			p.StaminaLeft -= drain
			if p.StaminaLeft < staminaDrainFloor {
				p.StaminaLeft = staminaDrainFloor
			}
			p.MatchesPlayed++
			p.GoalsScored += scored[p.ID]
			p.AssistsMade += assisted[p.ID]
		} else {
			p.StaminaLeft += s.rng.Between(staminaRegenLower, staminaRegenUpper)
			if p.StaminaLeft > player.MaxStamina {
				p.StaminaLeft = player.MaxStamina
			}
		}
		out = append(out, p)
	}
	return out
}

// settleCPUPlayers updates CPU career counters but resets stamina: CPU
// squads are assumed fully rested for every fixture.
func (s *MatchService) settleCPUPlayers(squad []player.Player, lineup sheet.PlayerSlots, goals []match.Goal, teamID string) []player.Player {
	fielded := make(map[string]bool, len(sheet.AllSlots))
	for _, slot := range sheet.AllSlots {
		if playerID := lineup.Get(slot); playerID != "" {
			fielded[playerID] = true
		}
	}

	scored, assisted := countContributions(goals, teamID)

	out := make([]player.Player, 0, len(squad))
	for _, p := range squad {
		if fielded[p.ID] {
			p.MatchesPlayed++
			p.GoalsScored += scored[p.ID]
			p.AssistsMade += assisted[p.ID]
		}
		p.StaminaLeft = player.MaxStamina
		out = append(out, p)
	}
	return out
}

func countContributions(goals []match.Goal, teamID string) (scored, assisted map[string]int) {
	scored = make(map[string]int)
	assisted = make(map[string]int)
	for _, g := range goals {
		if g.TeamID != teamID {
			continue
		}
		if g.ScorerPlayerID != "" {
			scored[g.ScorerPlayerID]++
		}
		if g.AssistPlayerID != "" {
			assisted[g.AssistPlayerID]++
		}
	}
	return scored, assisted
}

func (s *MatchService) loadChallenger(ctx context.Context, ownerID, teamID, sheetID string) (team.Team, sheet.PlayerSlots, []player.Player, error) {
	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	sheetID = strings.TrimSpace(sheetID)
	if ownerID == "" || teamID == "" || sheetID == "" {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: owner id, team id and sheet id are required", ErrInvalidInput)
	}

	playerTeam, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if playerTeam.OwnerID != ownerID {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}

	selected, exists, err := s.sheetRepo.GetByID(ctx, sheetID)
	if err != nil {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("get sheet by id: %w", err)
	}
	if !exists {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: sheet=%s", ErrNotFound, sheetID)
	}
	if selected.TeamID != playerTeam.ID {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: sheet %s does not belong to team %s", ErrUnauthorized, sheetID, teamID)
	}
	if !selected.Slots.Filled() {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: sheet %s is not match ready, every slot must be filled", ErrInvalidInput, sheetID)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, playerTeam.ID)
	if err != nil {
		return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("list roster: %w", err)
	}

	rosterByID := indexPlayers(roster)
	for _, playerID := range selected.Slots.PlayerIDs() {
		if _, ok := rosterByID[playerID]; !ok {
			return team.Team{}, sheet.PlayerSlots{}, nil, fmt.Errorf("%w: sheet player %s is no longer on the team", ErrInvalidInput, playerID)
		}
	}

	return playerTeam, selected.Slots, roster, nil
}

func (s *MatchService) authorizeTeam(ctx context.Context, ownerID, teamID string) error {
	ownerID = strings.TrimSpace(ownerID)
	teamID = strings.TrimSpace(teamID)
	if ownerID == "" || teamID == "" {
		return fmt.Errorf("%w: owner id and team id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.OwnerID != ownerID {
		return fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}
	return nil
}

func indexPlayers(players []player.Player) map[string]player.Player {
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID
}

func lineupNames(slots sheet.PlayerSlots, byID map[string]player.Player) map[sheet.Slot]string {
	names := make(map[sheet.Slot]string, len(sheet.AllSlots))
	for _, slot := range sheet.AllSlots {
		if p, ok := byID[slots.Get(slot)]; ok {
			names[slot] = p.Name
		}
	}
	return names
}
