package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movietix/internal/data/entity"
	"movietix/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// PgStore is the persistent backend. Every call is one or more parameterized
// queries against the pool; CreateBooking runs inside a transaction with a
// conditional seat update so a concurrent booking of the same seat loses
// cleanly instead of double-booking.
type PgStore struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPgStore(db database.PgxIface, log *zap.Logger) *PgStore {
	return &PgStore{
		db:  db,
		log: log.With(zap.String("store", "postgres")),
	}
}

// ==================== Movies ====================

const movieColumns = "id, title, genre, duration_mins, poster_url"

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var m entity.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.DurationMins, &m.PosterURL)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PgStore) ListMovies(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (s *PgStore) GetMovie(ctx context.Context, id int) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	m, err := scanMovie(s.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.Int("movie_id", id))
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

func (s *PgStore) CreateMovie(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	cp := *movie
	if cp.ID == 0 {
		query := `
			INSERT INTO movies (title, genre, duration_mins, poster_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := s.db.QueryRow(ctx, query, cp.Title, cp.Genre, cp.DurationMins, cp.PosterURL).Scan(&cp.ID); err != nil {
			s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", cp.Title))
			return nil, fmt.Errorf("create movie %q: %w", cp.Title, err)
		}
		return &cp, nil
	}

	query := `
		INSERT INTO movies (id, title, genre, duration_mins, poster_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query, cp.ID, cp.Title, cp.Genre, cp.DurationMins, cp.PosterURL); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.Int("movie_id", cp.ID))
		return nil, fmt.Errorf("create movie %d: %w", cp.ID, err)
	}
	return &cp, nil
}

// ==================== Showtimes ====================

const showtimeColumns = "id, movie_id, time, date"

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var st entity.Showtime
	err := row.Scan(&st.ID, &st.MovieID, &st.Time, &st.Date)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PgStore) ListShowtimes(ctx context.Context) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		st, err := scanShowtime(rows)
		if err != nil {
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, st)
	}
	return showtimes, rows.Err()
}

func (s *PgStore) GetShowtime(ctx context.Context, id int) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	st, err := scanShowtime(s.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get showtime", zap.Error(err), zap.Int("showtime_id", id))
		return nil, fmt.Errorf("get showtime %d: %w", id, err)
	}
	return st, nil
}

func (s *PgStore) ListShowtimesForMovie(ctx context.Context, movieID int) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE movie_id = $1 ORDER BY id`

	rows, err := s.db.Query(ctx, query, movieID)
	if err != nil {
		s.log.Error("Failed to list showtimes for movie", zap.Error(err), zap.Int("movie_id", movieID))
		return nil, fmt.Errorf("list showtimes for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	showtimes := []*entity.Showtime{}
	for rows.Next() {
		st, err := scanShowtime(rows)
		if err != nil {
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, st)
	}
	return showtimes, rows.Err()
}

func (s *PgStore) CreateShowtime(ctx context.Context, showtime *entity.Showtime) (*entity.Showtime, error) {
	cp := *showtime
	if cp.ID == 0 {
		query := `
			INSERT INTO showtimes (movie_id, time, date)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := s.db.QueryRow(ctx, query, cp.MovieID, cp.Time, cp.Date).Scan(&cp.ID); err != nil {
			s.log.Error("Failed to create showtime", zap.Error(err), zap.Int("movie_id", cp.MovieID))
			return nil, fmt.Errorf("create showtime for movie %d: %w", cp.MovieID, err)
		}
		return &cp, nil
	}

	query := `
		INSERT INTO showtimes (id, movie_id, time, date)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.Exec(ctx, query, cp.ID, cp.MovieID, cp.Time, cp.Date); err != nil {
		s.log.Error("Failed to create showtime", zap.Error(err), zap.Int("showtime_id", cp.ID))
		return nil, fmt.Errorf("create showtime %d: %w", cp.ID, err)
	}
	return &cp, nil
}

// ==================== Seats ====================

const seatColumns = "id, name, type, booked, showtime_id"

func scanSeat(row pgx.Row) (*entity.Seat, error) {
	var seat entity.Seat
	err := row.Scan(&seat.ID, &seat.Name, &seat.Type, &seat.Booked, &seat.ShowtimeID)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (s *PgStore) GetSeat(ctx context.Context, id int) (*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`

	seat, err := scanSeat(s.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get seat", zap.Error(err), zap.Int("seat_id", id))
		return nil, fmt.Errorf("get seat %d: %w", id, err)
	}
	return seat, nil
}

// ListSeatsForShowtime orders by section then seat number; comparing name
// length before name keeps G2 ahead of G10 without a numeric column.
func (s *PgStore) ListSeatsForShowtime(ctx context.Context, showtimeID int) ([]*entity.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats
		WHERE showtime_id = $1
		ORDER BY
			CASE type WHEN 'GOLD' THEN 0 WHEN 'RED' THEN 1 WHEN 'BLUE' THEN 2 ELSE 3 END,
			length(name), name, id
	`

	rows, err := s.db.Query(ctx, query, showtimeID)
	if err != nil {
		s.log.Error("Failed to list seats", zap.Error(err), zap.Int("showtime_id", showtimeID))
		return nil, fmt.Errorf("list seats for showtime %d: %w", showtimeID, err)
	}
	defer rows.Close()

	seats := []*entity.Seat{}
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

func (s *PgStore) CreateSeat(ctx context.Context, seat *entity.Seat) (*entity.Seat, error) {
	cp := *seat
	if cp.ID == 0 {
		query := `
			INSERT INTO seats (name, type, booked, showtime_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := s.db.QueryRow(ctx, query, cp.Name, cp.Type, cp.Booked, cp.ShowtimeID).Scan(&cp.ID); err != nil {
			s.log.Error("Failed to create seat", zap.Error(err), zap.String("name", cp.Name))
			return nil, fmt.Errorf("create seat %s: %w", cp.Name, err)
		}
		return &cp, nil
	}

	query := `
		INSERT INTO seats (id, name, type, booked, showtime_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query, cp.ID, cp.Name, cp.Type, cp.Booked, cp.ShowtimeID); err != nil {
		s.log.Error("Failed to create seat", zap.Error(err), zap.Int("seat_id", cp.ID))
		return nil, fmt.Errorf("create seat %d: %w", cp.ID, err)
	}
	return &cp, nil
}

func (s *PgStore) SetSeatBooked(ctx context.Context, id int, booked bool) (*entity.Seat, error) {
	query := `
		UPDATE seats SET booked = $2
		WHERE id = $1
		RETURNING ` + seatColumns

	seat, err := scanSeat(s.db.QueryRow(ctx, query, id, booked))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to update seat booking status",
			zap.Error(err),
			zap.Int("seat_id", id),
			zap.Bool("booked", booked),
		)
		return nil, fmt.Errorf("set seat %d booked=%t: %w", id, booked, err)
	}
	return seat, nil
}

// ==================== Bookings ====================

const bookingColumns = "id, movie_id, showtime_id, seats, total_amount, booking_date, user_id"

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var seatsJSON []byte
	err := row.Scan(&b.ID, &b.MovieID, &b.ShowtimeID, &seatsJSON, &b.TotalAmount, &b.BookingDate, &b.UserID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seatsJSON, &b.SeatIDs); err != nil {
		return nil, fmt.Errorf("decode booking seats: %w", err)
	}
	return &b, nil
}

func (s *PgStore) GetBooking(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(s.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", id))
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (s *PgStore) ListBookingsForUser(ctx context.Context, userID int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date, id
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		s.log.Error("Failed to list bookings for user", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateBooking inserts the booking and flips its seats inside one
// transaction. The seat update is conditional on booked = FALSE: zero rows
// affected means someone else won the seat and the whole booking rolls back
// with ErrSeatTaken.
func (s *PgStore) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	seatsJSON, err := json.Marshal(booking.SeatIDs)
	if err != nil {
		return nil, fmt.Errorf("encode booking seats: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO bookings (id, movie_id, showtime_id, seats, total_amount, booking_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, insert,
		booking.ID,
		booking.MovieID,
		booking.ShowtimeID,
		seatsJSON,
		booking.TotalAmount,
		booking.BookingDate,
		booking.UserID,
	)
	if err != nil {
		s.log.Error("Failed to insert booking", zap.Error(err), zap.String("booking_id", booking.ID))
		return nil, fmt.Errorf("insert booking %s: %w", booking.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrDuplicateBooking
	}

	flip := `UPDATE seats SET booked = TRUE WHERE id = $1 AND showtime_id = $2 AND booked = FALSE`
	for _, seatID := range booking.SeatIDs {
		tag, err := tx.Exec(ctx, flip, seatID, booking.ShowtimeID)
		if err != nil {
			s.log.Error("Failed to mark seat booked",
				zap.Error(err),
				zap.String("booking_id", booking.ID),
				zap.Int("seat_id", seatID),
			)
			return nil, fmt.Errorf("mark seat %d booked: %w", seatID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: seat %d", ErrSeatTaken, seatID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit booking", zap.Error(err), zap.String("booking_id", booking.ID))
		return nil, fmt.Errorf("commit booking %s: %w", booking.ID, err)
	}

	cp := *booking
	return &cp, nil
}

// ==================== Users ====================

const userColumns = "id, username, password"

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PgStore) GetUser(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.Int("user_id", id))
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *PgStore) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(s.db.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("get user by username %s: %w", username, err)
	}
	return u, nil
}

func (s *PgStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	cp := *user
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := s.db.QueryRow(ctx, query, cp.Username, cp.PasswordHash).Scan(&cp.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, cp.Username)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", cp.Username))
		return nil, fmt.Errorf("create user %s: %w", cp.Username, err)
	}
	return &cp, nil
}

// ==================== Schema & seeding ====================

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		genre TEXT NOT NULL,
		duration_mins INTEGER NOT NULL,
		poster_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS showtimes (
		id SERIAL PRIMARY KEY,
		movie_id INTEGER NOT NULL,
		time TEXT NOT NULL,
		date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		booked BOOLEAN NOT NULL DEFAULT FALSE,
		showtime_id INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		movie_id INTEGER NOT NULL,
		showtime_id INTEGER NOT NULL,
		seats JSONB NOT NULL,
		total_amount INTEGER NOT NULL,
		booking_date TIMESTAMPTZ NOT NULL,
		user_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
}

func (s *PgStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedInitialData creates the tables if needed and loads the sample
// catalogue. Seed rows carry explicit ids, so the serial sequences are bumped
// afterwards to keep later default-id inserts from colliding.
func (s *PgStore) SeedInitialData(ctx context.Context) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return fmt.Errorf("count movies: %w", err)
	}
	if count > 0 {
		s.log.Debug("Catalogue already seeded, skipping")
		return nil
	}

	movies := seedMovies()
	for _, m := range movies {
		if _, err := s.CreateMovie(ctx, m); err != nil {
			return err
		}
	}
	showtimes := seedShowtimes(movies)
	for _, st := range showtimes {
		if _, err := s.CreateShowtime(ctx, st); err != nil {
			return err
		}
		for _, seat := range generateSeats(st.ID) {
			if _, err := s.CreateSeat(ctx, seat); err != nil {
				return err
			}
		}
	}

	for _, table := range []string{"movies", "showtimes", "seats"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)
		if _, err := s.db.Exec(ctx, query); err != nil {
			return fmt.Errorf("advance %s id sequence: %w", table, err)
		}
	}

	s.log.Info("Catalogue seeded",
		zap.Int("movies", len(movies)),
		zap.Int("showtimes", len(showtimes)),
	)
	return nil
}
