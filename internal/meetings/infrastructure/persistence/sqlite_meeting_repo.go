package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	sharedPersistence "github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/persistence"
)

const meetingColumns = `id, name, responsible_person, description, category, meeting_type, start_unix, end_unix`

// SQLiteMeetingRepository implements domain.Repository using SQLite.
type SQLiteMeetingRepository struct {
	dbConn *sql.DB
	uow    *sharedPersistence.SQLiteUnitOfWork
}

// NewSQLiteMeetingRepository creates a new SQLite meeting repository. The
// schema must already be migrated.
func NewSQLiteMeetingRepository(dbConn *sql.DB) *SQLiteMeetingRepository {
	return &SQLiteMeetingRepository{
		dbConn: dbConn,
		uow:    sharedPersistence.NewSQLiteUnitOfWork(dbConn),
	}
}

func (r *SQLiteMeetingRepository) querier(ctx context.Context) sharedPersistence.DBTX {
	return sharedPersistence.SQLiteQuerier(ctx, r.dbConn)
}

// NextID increments the meetings sequence and returns the new value.
func (r *SQLiteMeetingRepository) NextID(ctx context.Context) (int, error) {
	var id int
	err := r.querier(ctx).QueryRowContext(ctx,
		`UPDATE id_sequence SET value = value + 1 WHERE name = 'meetings' RETURNING value`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next meeting id: %w", err)
	}
	return id, nil
}

// Save upserts the meeting row and rewrites its roster in one transaction.
func (r *SQLiteMeetingRepository) Save(ctx context.Context, meeting *domain.Meeting) error {
	return r.uow.Do(ctx, func(ctx context.Context) error {
		q := r.querier(ctx)
		_, err := q.ExecContext(ctx, `
			INSERT INTO meetings (`+meetingColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				responsible_person = excluded.responsible_person,
				description = excluded.description,
				category = excluded.category,
				meeting_type = excluded.meeting_type,
				start_unix = excluded.start_unix,
				end_unix = excluded.end_unix`,
			meeting.ID(),
			meeting.Name(),
			meeting.ResponsiblePerson(),
			meeting.Description(),
			string(meeting.Category()),
			string(meeting.Type()),
			meeting.StartDate().Unix(),
			meeting.EndDate().Unix(),
		)
		if err != nil {
			return fmt.Errorf("save meeting %d: %w", meeting.ID(), err)
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = ?`, meeting.ID()); err != nil {
			return fmt.Errorf("clear attendees of meeting %d: %w", meeting.ID(), err)
		}
		for pos, person := range meeting.Attendees() {
			_, err := q.ExecContext(ctx,
				`INSERT INTO meeting_attendees (meeting_id, position, person) VALUES (?, ?, ?)`,
				meeting.ID(), pos, person,
			)
			if err != nil {
				return fmt.Errorf("save attendee %q of meeting %d: %w", person, meeting.ID(), err)
			}
		}
		return nil
	})
}

// FindByID returns nil, nil when no meeting has the ID.
func (r *SQLiteMeetingRepository) FindByID(ctx context.Context, id int) (*domain.Meeting, error) {
	row := r.querier(ctx).QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)

	rec, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	attendees, err := r.loadAttendees(ctx, `WHERE meeting_id = ?`, id)
	if err != nil {
		return nil, err
	}
	return rec.toDomain(attendees[id]), nil
}

// FindAll returns every meeting ordered by ID, which is insertion order.
func (r *SQLiteMeetingRepository) FindAll(ctx context.Context) ([]*domain.Meeting, error) {
	rows, err := r.querier(ctx).QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	var records []meetingRecord
	for rows.Next() {
		rec, err := scanMeeting(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The pool holds a single connection; release it before the next query.
	rows.Close()

	attendees, err := r.loadAttendees(ctx, "")
	if err != nil {
		return nil, err
	}

	meetings := make([]*domain.Meeting, 0, len(records))
	for _, rec := range records {
		meetings = append(meetings, rec.toDomain(attendees[rec.id]))
	}
	return meetings, nil
}

// Delete removes the meeting and its roster.
func (r *SQLiteMeetingRepository) Delete(ctx context.Context, id int) error {
	return r.uow.Do(ctx, func(ctx context.Context) error {
		q := r.querier(ctx)
		if _, err := q.ExecContext(ctx, `DELETE FROM meeting_attendees WHERE meeting_id = ?`, id); err != nil {
			return fmt.Errorf("delete attendees of meeting %d: %w", id, err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete meeting %d: %w", id, err)
		}
		return nil
	})
}

func (r *SQLiteMeetingRepository) loadAttendees(ctx context.Context, where string, args ...any) (map[int][]string, error) {
	rows, err := r.querier(ctx).QueryContext(ctx,
		`SELECT meeting_id, person FROM meeting_attendees `+where+` ORDER BY meeting_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]string)
	for rows.Next() {
		var (
			meetingID int
			person    string
		)
		if err := rows.Scan(&meetingID, &person); err != nil {
			return nil, err
		}
		out[meetingID] = append(out[meetingID], person)
	}
	return out, rows.Err()
}

type meetingRecord struct {
	id                int
	name              string
	responsiblePerson string
	description       string
	category          string
	meetingType       string
	startUnix         int64
	endUnix           int64
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (meetingRecord, error) {
	var rec meetingRecord
	err := row.Scan(
		&rec.id,
		&rec.name,
		&rec.responsiblePerson,
		&rec.description,
		&rec.category,
		&rec.meetingType,
		&rec.startUnix,
		&rec.endUnix,
	)
	return rec, err
}

func (rec meetingRecord) toDomain(attendees []string) *domain.Meeting {
	return domain.RehydrateMeeting(
		rec.id,
		rec.name,
		rec.responsiblePerson,
		rec.description,
		domain.Category(rec.category),
		domain.Type(rec.meetingType),
		time.Unix(rec.startUnix, 0).In(time.Local),
		time.Unix(rec.endUnix, 0).In(time.Local),
		attendees,
	)
}
