package store

// schemaStatements bootstraps the Postgres schema. Statements run in order
// so referenced tables exist before their foreign keys.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS seasons (
		id TEXT PRIMARY KEY,
		year INT NOT NULL,
		number INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tours (
		id TEXT PRIMARY KEY,
		season_id TEXT NOT NULL REFERENCES seasons(id),
		name TEXT NOT NULL,
		short_form TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tiers (
		id TEXT PRIMARY KEY,
		season_id TEXT NOT NULL REFERENCES seasons(id),
		name TEXT NOT NULL,
		points INT[] NOT NULL DEFAULT '{}',
		payouts NUMERIC[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS tour_cards (
		id TEXT PRIMARY KEY,
		season_id TEXT NOT NULL REFERENCES seasons(id),
		tour_id TEXT NOT NULL REFERENCES tours(id),
		member_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		points INT NOT NULL DEFAULT 0,
		earnings NUMERIC NOT NULL DEFAULT 0,
		win INT NOT NULL DEFAULT 0,
		top_ten INT NOT NULL DEFAULT 0,
		made_cut INT NOT NULL DEFAULT 0,
		appearances INT NOT NULL DEFAULT 0,
		position TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id TEXT PRIMARY KEY,
		season_id TEXT NOT NULL REFERENCES seasons(id),
		tier_id TEXT NOT NULL REFERENCES tiers(id),
		api_id TEXT NOT NULL,
		name TEXT NOT NULL,
		course_par INT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		current_round INT,
		live_play BOOLEAN NOT NULL DEFAULT FALSE,
		tour_ids TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS golfers (
		id BIGSERIAL PRIMARY KEY,
		api_id INT NOT NULL,
		tournament_id TEXT NOT NULL REFERENCES tournaments(id),
		player_name TEXT NOT NULL,
		"group" INT NOT NULL DEFAULT 0,
		world_rank INT,
		rating NUMERIC,
		country TEXT,
		round_one INT,
		round_two INT,
		round_three INT,
		round_four INT,
		round_one_tee_time TEXT,
		round_two_tee_time TEXT,
		round_three_tee_time TEXT,
		round_four_tee_time TEXT,
		score INT,
		today INT,
		thru INT,
		position TEXT NOT NULL DEFAULT '',
		make_cut NUMERIC,
		top_ten NUMERIC,
		win NUMERIC,
		usage NUMERIC,
		round INT,
		earnings NUMERIC,
		UNIQUE (tournament_id, api_id)
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id BIGSERIAL PRIMARY KEY,
		tournament_id TEXT NOT NULL REFERENCES tournaments(id),
		tour_card_id TEXT NOT NULL REFERENCES tour_cards(id),
		golfer_ids INT[] NOT NULL DEFAULT '{}',
		score NUMERIC,
		today NUMERIC,
		thru NUMERIC,
		round_one NUMERIC,
		round_two NUMERIC,
		round_three NUMERIC,
		round_four NUMERIC,
		round_one_tee_time TEXT,
		round_two_tee_time TEXT,
		round_three_tee_time TEXT,
		round_four_tee_time TEXT,
		position TEXT NOT NULL DEFAULT '',
		past_position TEXT NOT NULL DEFAULT '',
		points INT,
		earnings NUMERIC,
		round INT,
		make_cut NUMERIC,
		top_ten NUMERIC,
		top_five NUMERIC,
		top_three NUMERIC,
		win NUMERIC,
		UNIQUE (tournament_id, tour_card_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tournaments_season ON tournaments (season_id, start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_golfers_tournament ON golfers (tournament_id)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_tournament ON teams (tournament_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tour_cards_season ON tour_cards (season_id)`,
}
