package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}
	logger.Info("database schema initialized",
		zap.String("host", config.Host), zap.String("dbname", config.DBName))

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (email, password, fullname)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(query, user.Email, user.Password, user.Fullname).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating user: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password, fullname, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := s.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Fullname,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by email: %v", err)
	}

	return user, nil
}

func (s *PostgresStorage) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, fullname, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := s.db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.Fullname,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %v", err)
	}

	return user, nil
}

func (s *PostgresStorage) UpdateUser(user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, password = $2, fullname = $3, updated_at = $4
		WHERE id = $5`

	result, err := s.db.Exec(query, user.Email, user.Password, user.Fullname, time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) EmailExists(email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %v", err)
	}
	return exists, nil
}

func (s *PostgresStorage) CreateSchedule(schedule *models.Schedule) error {
	if schedule.Status == "" {
		schedule.Status = "active"
	}

	query := `
		INSERT INTO schedules (user_id, title, description, start_time, end_time,
			location, reminder_minutes, category, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(
		query,
		schedule.UserID,
		schedule.Title,
		schedule.Description,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Location,
		schedule.ReminderMinutes,
		schedule.Category,
		schedule.Priority,
		schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating schedule: %v", err)
	}

	return nil
}

const scheduleColumns = `id, user_id, title, description, start_time, end_time,
	location, reminder_minutes, category, priority, status, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }) (*models.Schedule, error) {
	sc := &models.Schedule{}
	err := row.Scan(
		&sc.ID, &sc.UserID, &sc.Title, &sc.Description, &sc.StartTime, &sc.EndTime,
		&sc.Location, &sc.ReminderMinutes, &sc.Category, &sc.Priority, &sc.Status,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *PostgresStorage) GetSchedule(userID, id int64) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1 AND user_id = $2`

	sc, err := scanSchedule(s.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying schedule: %v", err)
	}

	return sc, nil
}

func (s *PostgresStorage) ListSchedules(userID int64) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = $1 ORDER BY start_time`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying schedules: %v", err)
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule: %v", err)
		}
		schedules = append(schedules, *sc)
	}

	return schedules, rows.Err()
}

func (s *PostgresStorage) ListSchedulesInRange(userID int64, from, to time.Time) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`

	rows, err := s.db.Query(query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying schedules in range: %v", err)
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule: %v", err)
		}
		schedules = append(schedules, *sc)
	}

	return schedules, rows.Err()
}

func (s *PostgresStorage) UpdateSchedule(schedule *models.Schedule) error {
	query := `
		UPDATE schedules
		SET title = $1, description = $2, start_time = $3, end_time = $4,
			location = $5, reminder_minutes = $6, category = $7, priority = $8,
			status = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12`

	result, err := s.db.Exec(
		query,
		schedule.Title,
		schedule.Description,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Location,
		schedule.ReminderMinutes,
		schedule.Category,
		schedule.Priority,
		schedule.Status,
		time.Now(),
		schedule.ID,
		schedule.UserID,
	)
	if err != nil {
		return fmt.Errorf("error updating schedule: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) DeleteSchedule(userID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM schedules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) SaveInteraction(interaction *models.Interaction) error {
	query := `
		INSERT INTO ai_interactions (id, user_id, user_message, reply, intent, confidence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := s.db.QueryRow(
		query,
		interaction.ID,
		interaction.UserID,
		interaction.UserMessage,
		interaction.Reply,
		interaction.Intent,
		interaction.Confidence,
	).Scan(&interaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving interaction: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ListInteractions(userID int64, limit int) ([]models.Interaction, error) {
	query := `
		SELECT id, user_id, user_message, reply, intent, confidence, created_at
		FROM ai_interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying interactions: %v", err)
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		in := models.Interaction{}
		err := rows.Scan(&in.ID, &in.UserID, &in.UserMessage, &in.Reply,
			&in.Intent, &in.Confidence, &in.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning interaction: %v", err)
		}
		interactions = append(interactions, in)
	}

	return interactions, rows.Err()
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
