package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/domain"
	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

const (
	pgMaxOpenConns    = 10
	pgMaxIdleConns    = 5
	pgConnMaxLifetime = 30 * time.Minute
	pgConnectTimeout  = 30 * time.Second
)

// PostgresStore persists the league in Postgres via database/sql and lib/pq.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenPostgres connects to dsn and verifies the connection, retrying with
// exponential backoff so the service survives a database that is still
// starting up. The schema is created when missing.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	db.SetConnMaxLifetime(pgConnMaxLifetime)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = pgConnectTimeout
	ping := func() error { return db.PingContext(ctx) }
	notify := func(err error, wait time.Duration) {
		logging.Warn(logger, "postgres not ready, retrying",
			slog.Duration("backoff", wait), slog.String("error", err.Error()))
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{db: db, logger: logger}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema applies the bootstrap statements in order.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows so one scan helper serves both.
type rowScanner interface {
	Scan(dest ...any) error
}

const seasonColumns = `id, year, number`

func scanSeason(r rowScanner) (domain.Season, error) {
	var v domain.Season
	err := r.Scan(&v.ID, &v.Year, &v.Number)
	return v, err
}

// CurrentSeason returns the latest season on record.
func (s *PostgresStore) CurrentSeason(ctx context.Context) (domain.Season, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+seasonColumns+` FROM seasons ORDER BY year DESC, number DESC LIMIT 1`)
	season, err := scanSeason(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Season{}, ErrNotFound
	}
	if err != nil {
		return domain.Season{}, fmt.Errorf("query current season: %w", err)
	}
	return season, nil
}

// ToursBySeason returns the season's tours ordered by name.
func (s *PostgresStore) ToursBySeason(ctx context.Context, seasonID string) ([]domain.Tour, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, season_id, name, short_form FROM tours WHERE season_id = $1 ORDER BY name, id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query tours: %w", err)
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		var v domain.Tour
		if err := rows.Scan(&v.ID, &v.SeasonID, &v.Name, &v.ShortForm); err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		tours = append(tours, v)
	}
	return tours, rows.Err()
}

const tierColumns = `id, season_id, name, points, payouts`

func scanTier(r rowScanner) (domain.Tier, error) {
	var v domain.Tier
	var points pq.Int64Array
	var payouts pq.Float64Array
	if err := r.Scan(&v.ID, &v.SeasonID, &v.Name, &points, &payouts); err != nil {
		return domain.Tier{}, err
	}
	v.Points = intSlice(points)
	v.Payouts = []float64(payouts)
	return v, nil
}

// TiersBySeason returns the season's tiers ordered by name.
func (s *PostgresStore) TiersBySeason(ctx context.Context, seasonID string) ([]domain.Tier, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tierColumns+` FROM tiers WHERE season_id = $1 ORDER BY name, id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query tiers: %w", err)
	}
	defer rows.Close()

	var tiers []domain.Tier
	for rows.Next() {
		v, err := scanTier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers = append(tiers, v)
	}
	return tiers, rows.Err()
}

// TierByID retrieves one tier.
func (s *PostgresStore) TierByID(ctx context.Context, id string) (domain.Tier, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tierColumns+` FROM tiers WHERE id = $1`, id)
	tier, err := scanTier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tier{}, ErrNotFound
	}
	if err != nil {
		return domain.Tier{}, fmt.Errorf("query tier %s: %w", id, err)
	}
	return tier, nil
}

const tournamentColumns = `id, season_id, tier_id, api_id, name, course_par, start_date, end_date, current_round, live_play, tour_ids`

func scanTournament(r rowScanner) (domain.Tournament, error) {
	var v domain.Tournament
	var tourIDs pq.StringArray
	err := r.Scan(&v.ID, &v.SeasonID, &v.TierID, &v.ApiID, &v.Name, &v.CoursePar,
		&v.StartDate, &v.EndDate, &v.CurrentRound, &v.LivePlay, &tourIDs)
	if err != nil {
		return domain.Tournament{}, err
	}
	v.TourIDs = []string(tourIDs)
	return v, nil
}

func (s *PostgresStore) queryTournaments(ctx context.Context, query string, args ...any) ([]domain.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []domain.Tournament
	for rows.Next() {
		v, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		tournaments = append(tournaments, v)
	}
	return tournaments, rows.Err()
}

func (s *PostgresStore) queryTournament(ctx context.Context, query string, args ...any) (domain.Tournament, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	tournament, err := scanTournament(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tournament{}, ErrNotFound
	}
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("query tournament: %w", err)
	}
	return tournament, nil
}

// TournamentsBySeason returns the season's schedule ordered by start date.
func (s *PostgresStore) TournamentsBySeason(ctx context.Context, seasonID string) ([]domain.Tournament, error) {
	return s.queryTournaments(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE season_id = $1 ORDER BY start_date, id`, seasonID)
}

// TournamentByID retrieves one tournament.
func (s *PostgresStore) TournamentByID(ctx context.Context, id string) (domain.Tournament, error) {
	return s.queryTournament(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
}

// NextTournament returns the season's earliest tournament starting after now.
func (s *PostgresStore) NextTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error) {
	return s.queryTournament(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments
		 WHERE season_id = $1 AND start_date > $2
		 ORDER BY start_date, id LIMIT 1`, seasonID, now)
}

// CurrentTournament returns the season's tournament whose play window
// contains now. The window closes at the end of the final scheduled day.
func (s *PostgresStore) CurrentTournament(ctx context.Context, seasonID string, now time.Time) (domain.Tournament, error) {
	return s.queryTournament(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments
		 WHERE season_id = $1 AND start_date <= $2 AND end_date + INTERVAL '1 day' > $2
		 ORDER BY start_date DESC, id DESC LIMIT 1`, seasonID, now)
}

// UpdateTournament applies a patch to one tournament.
func (s *PostgresStore) UpdateTournament(ctx context.Context, id string, patch domain.TournamentPatch) error {
	query, args, ok := buildTournamentUpdate(id, patch)
	if !ok {
		return nil
	}
	return s.execUpdate(ctx, "tournament", query, args)
}

const golferColumns = `id, api_id, tournament_id, player_name, "group", world_rank, rating, country,
	round_one, round_two, round_three, round_four,
	round_one_tee_time, round_two_tee_time, round_three_tee_time, round_four_tee_time,
	score, today, thru, position, make_cut, top_ten, win, usage, round, earnings`

func scanGolfer(r rowScanner) (domain.Golfer, error) {
	var v domain.Golfer
	err := r.Scan(&v.ID, &v.ApiID, &v.TournamentID, &v.PlayerName, &v.Group,
		&v.WorldRank, &v.Rating, &v.Country,
		&v.RoundOne, &v.RoundTwo, &v.RoundThree, &v.RoundFour,
		&v.RoundOneTeeTime, &v.RoundTwoTeeTime, &v.RoundThreeTeeTime, &v.RoundFourTeeTime,
		&v.Score, &v.Today, &v.Thru, &v.Position,
		&v.MakeCut, &v.TopTen, &v.Win, &v.Usage, &v.Round, &v.Earnings)
	return v, err
}

// GolfersByTournament returns the tournament's field ordered by provider id.
func (s *PostgresStore) GolfersByTournament(ctx context.Context, tournamentID string) ([]domain.Golfer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+golferColumns+` FROM golfers WHERE tournament_id = $1 ORDER BY api_id`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("query golfers: %w", err)
	}
	defer rows.Close()

	var golfers []domain.Golfer
	for rows.Next() {
		v, err := scanGolfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan golfer: %w", err)
		}
		golfers = append(golfers, v)
	}
	return golfers, rows.Err()
}

const insertGolfer = `INSERT INTO golfers (
	api_id, tournament_id, player_name, "group", world_rank, rating, country,
	round_one, round_two, round_three, round_four,
	round_one_tee_time, round_two_tee_time, round_three_tee_time, round_four_tee_time,
	score, today, thru, position, make_cut, top_ten, win, usage, round, earnings
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
ON CONFLICT (tournament_id, api_id) DO NOTHING`

// CreateGolfers inserts new golfer rows in one transaction. Rows colliding
// with an existing tournament and provider id pair are skipped.
func (s *PostgresStore) CreateGolfers(ctx context.Context, golfers []domain.Golfer) error {
	if len(golfers) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create golfers: %w", err)
	}
	defer tx.Rollback()

	for _, g := range golfers {
		_, err := tx.ExecContext(ctx, insertGolfer,
			g.ApiID, g.TournamentID, g.PlayerName, g.Group, g.WorldRank, g.Rating, g.Country,
			g.RoundOne, g.RoundTwo, g.RoundThree, g.RoundFour,
			g.RoundOneTeeTime, g.RoundTwoTeeTime, g.RoundThreeTeeTime, g.RoundFourTeeTime,
			g.Score, g.Today, g.Thru, g.Position,
			g.MakeCut, g.TopTen, g.Win, g.Usage, g.Round, g.Earnings)
		if err != nil {
			return fmt.Errorf("insert golfer %d: %w", g.ApiID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create golfers: %w", err)
	}
	return nil
}

// UpdateGolfer applies a patch to one golfer row.
func (s *PostgresStore) UpdateGolfer(ctx context.Context, id int64, patch domain.GolferPatch) error {
	query, args, ok := buildGolferUpdate(id, patch)
	if !ok {
		return nil
	}
	return s.execUpdate(ctx, "golfer", query, args)
}

const teamColumns = `id, tournament_id, tour_card_id, golfer_ids, score, today, thru,
	round_one, round_two, round_three, round_four,
	round_one_tee_time, round_two_tee_time, round_three_tee_time, round_four_tee_time,
	position, past_position, points, earnings, round,
	make_cut, top_ten, top_five, top_three, win`

func scanTeam(r rowScanner) (domain.Team, error) {
	var v domain.Team
	var golferIDs pq.Int64Array
	err := r.Scan(&v.ID, &v.TournamentID, &v.TourCardID, &golferIDs,
		&v.Score, &v.Today, &v.Thru,
		&v.RoundOne, &v.RoundTwo, &v.RoundThree, &v.RoundFour,
		&v.RoundOneTeeTime, &v.RoundTwoTeeTime, &v.RoundThreeTeeTime, &v.RoundFourTeeTime,
		&v.Position, &v.PastPosition, &v.Points, &v.Earnings, &v.Round,
		&v.MakeCut, &v.TopTen, &v.TopFive, &v.TopThree, &v.Win)
	if err != nil {
		return domain.Team{}, err
	}
	v.GolferIDs = intSlice(golferIDs)
	return v, nil
}

func (s *PostgresStore) queryTeams(ctx context.Context, query string, args ...any) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		v, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, v)
	}
	return teams, rows.Err()
}

// TeamsByTournament returns the tournament's teams ordered by id.
func (s *PostgresStore) TeamsByTournament(ctx context.Context, tournamentID string) ([]domain.Team, error) {
	return s.queryTeams(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE tournament_id = $1 ORDER BY id`, tournamentID)
}

// TeamsBySeason returns every team fielded in the season's tournaments.
func (s *PostgresStore) TeamsBySeason(ctx context.Context, seasonID string) ([]domain.Team, error) {
	return s.queryTeams(ctx,
		`SELECT `+teamColumns+` FROM teams
		 WHERE tournament_id IN (SELECT id FROM tournaments WHERE season_id = $1)
		 ORDER BY id`, seasonID)
}

// UpdateTeam applies a patch to one team row.
func (s *PostgresStore) UpdateTeam(ctx context.Context, id int64, patch domain.TeamPatch) error {
	query, args, ok := buildTeamUpdate(id, patch)
	if !ok {
		return nil
	}
	return s.execUpdate(ctx, "team", query, args)
}

const tourCardColumns = `id, season_id, tour_id, member_id, display_name,
	points, earnings, win, top_ten, made_cut, appearances, position`

func scanTourCard(r rowScanner) (domain.TourCard, error) {
	var v domain.TourCard
	err := r.Scan(&v.ID, &v.SeasonID, &v.TourID, &v.MemberID, &v.DisplayName,
		&v.Points, &v.Earnings, &v.Win, &v.TopTen, &v.MadeCut, &v.Appearances, &v.Position)
	return v, err
}

// TourCardsBySeason returns the season's tour cards ordered by id.
func (s *PostgresStore) TourCardsBySeason(ctx context.Context, seasonID string) ([]domain.TourCard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tourCardColumns+` FROM tour_cards WHERE season_id = $1 ORDER BY id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query tour cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.TourCard
	for rows.Next() {
		v, err := scanTourCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tour card: %w", err)
		}
		cards = append(cards, v)
	}
	return cards, rows.Err()
}

// UpdateTourCard applies a patch to one tour card.
func (s *PostgresStore) UpdateTourCard(ctx context.Context, id string, patch domain.TourCardPatch) error {
	query, args, ok := buildTourCardUpdate(id, patch)
	if !ok {
		return nil
	}
	return s.execUpdate(ctx, "tour card", query, args)
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) execUpdate(ctx context.Context, entity, query string, args []any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", entity, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func intSlice(in pq.Int64Array) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

var _ Store = (*PostgresStore)(nil)
