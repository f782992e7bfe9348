package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CareLogRow is one care-diary entry joined with the booking context a
// member sees: which day of the stay it was recorded on and who was
// looking after which pet.
type CareLogRow struct {
	No            int64
	BookingNo     string
	RecordTime    time.Time
	Description   string
	BookingStatus string
	StayDay       *int
	Nights        *int
	PetName       *string
	SitterName    *string
}

type CareLogRepository interface {
	ListByMember(ctx context.Context, memberID string) ([]CareLogRow, error)
}

type PGCareLogRepository struct {
	db *pgxpool.Pool
}

func NewCareLogRepository(db *pgxpool.Pool) CareLogRepository {
	return &PGCareLogRepository{db: db}
}

func (r *PGCareLogRepository) ListByMember(ctx context.Context, memberID string) ([]CareLogRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			cl.c_no, cl.b_no, cl.record_time, cl.description,
			b.status,
			(cl.record_time::date - b.start_date) + 1 AS stay_day,
			(b.end_date - b.start_date) AS nights,
			p.name AS pet_name,
			s.e_name AS sitter_name
		FROM care_log cl
		JOIN booking b ON b.b_no = cl.b_no
		LEFT JOIN pet p ON p.p_id = cl.p_id
		LEFT JOIN sitter s ON s.s_id = b.s_id
		WHERE b.m_id = $1
		ORDER BY cl.b_no, cl.record_time`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]CareLogRow, 0)
	for rows.Next() {
		var l CareLogRow
		if err := rows.Scan(&l.No, &l.BookingNo, &l.RecordTime, &l.Description, &l.BookingStatus,
			&l.StayDay, &l.Nights, &l.PetName, &l.SitterName); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

var _ CareLogRepository = (*PGCareLogRepository)(nil)
