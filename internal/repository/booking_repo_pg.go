package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/ids"
)

// ErrNoRows is returned when a lookup matches nothing the caller may see.
var ErrNoRows = pgx.ErrNoRows

// OrderRow is one booking as shown in a member's order list, with the
// per-booking aggregates the UI needs.
type OrderRow struct {
	BookingNo    string
	SitterID     *string
	MemberID     string
	StartDate    *time.Time
	EndDate      *time.Time
	ReservedAt   time.Time
	TotalPrice   float64
	Status       string
	Nights       float64
	SitterName   *string
	ServiceNames *string
	PetNames     *string
}

// OrderItemRow is one line item joined with its service and pet names.
type OrderItemRow struct {
	BookingNo   string
	ServiceID   *string
	ServiceName *string
	PetID       string
	PetName     *string
	Amount      float64
	Price       float64
}

type BookingRepository interface {
	// Create persists one booking header and all its line items atomically,
	// assigning sequential b/hh identifiers inside the same transaction.
	Create(ctx context.Context, b *domain.Booking, lines []domain.BookingLine) error
	ListByMember(ctx context.Context, memberID string) ([]OrderRow, error)
	ItemsForMember(ctx context.Context, bookingNo, memberID string) ([]OrderItemRow, error)
	PendingSummary(ctx context.Context, memberID string) (count int64, total float64, err error)
}

// DB is the slice of the pgx pool the booking repository uses. Narrowing
// to an interface lets the transactional write path run against a fake.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking, lines []domain.BookingLine) error {
	if len(lines) == 0 {
		return errors.New("booking requires at least one line item")
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	bookingNo, err := nextID(ctx, tx, "booking", "b_no", "b")
	if err != nil {
		return err
	}
	b.No = bookingNo
	b.Status = domain.BookingStatusReserved

	if _, err := tx.Exec(ctx, `INSERT INTO booking (b_no, s_id, m_id, start_date, end_date, r_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.No, b.SitterID, b.MemberID, b.StartDate, b.EndDate, b.ReservedAt, b.TotalPrice, b.Status); err != nil {
		return err
	}

	// Line identifiers continue one numeric sequence across the whole
	// request, so the table is scanned once.
	next, err := nextNumber(ctx, tx, "booking_line", "b_id", "hh")
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].ID = ids.Format("hh", next)
		next++
		lines[i].BookingNo = b.No

		if _, err := tx.Exec(ctx, `INSERT INTO booking_line (b_id, b_no, s_no, p_id, amount, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			lines[i].ID, lines[i].BookingNo, lines[i].ServiceID, lines[i].PetID, lines[i].Amount, lines[i].Price); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// nextNumber locks the table against concurrent writers, scans every
// existing identifier and returns max+1. Postgres rejects FOR UPDATE on
// aggregates, so the serialization point is an EXCLUSIVE table lock held
// until the surrounding transaction commits or rolls back.
func nextNumber(ctx context.Context, tx pgx.Tx, table, column, prefix string) (int, error) {
	if _, err := tx.Exec(ctx, "LOCK TABLE "+table+" IN EXCLUSIVE MODE"); err != nil {
		return 0, err
	}

	rows, err := tx.Query(ctx, "SELECT "+column+" FROM "+table)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return ids.NextNumber(prefix, existing), nil
}

func nextID(ctx context.Context, tx pgx.Tx, table, column, prefix string) (string, error) {
	n, err := nextNumber(ctx, tx, table, column, prefix)
	if err != nil {
		return "", err
	}
	return ids.Format(prefix, n), nil
}

func (r *PGBookingRepository) ListByMember(ctx context.Context, memberID string) ([]OrderRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			b.b_no, b.s_id, b.m_id, b.start_date, b.end_date, b.r_date, b.total_price, b.status,
			COALESCE(MAX(bl.amount), 0) AS nights,
			si.e_name AS sitter_name,
			string_agg(DISTINCT sv.s_name, ', ') AS service_names,
			string_agg(DISTINCT p.name, ', ') AS pet_names
		FROM booking b
		LEFT JOIN sitter si ON si.s_id = b.s_id
		LEFT JOIN booking_line bl ON bl.b_no = b.b_no
		LEFT JOIN service sv ON sv.s_no = bl.s_no
		LEFT JOIN pet p ON p.p_id = bl.p_id
		WHERE b.m_id = $1
		GROUP BY b.b_no, b.s_id, b.m_id, b.start_date, b.end_date, b.r_date, b.total_price, b.status, si.e_name
		ORDER BY b.start_date DESC NULLS LAST`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderRow, 0)
	for rows.Next() {
		var o OrderRow
		if err := rows.Scan(&o.BookingNo, &o.SitterID, &o.MemberID, &o.StartDate, &o.EndDate, &o.ReservedAt,
			&o.TotalPrice, &o.Status, &o.Nights, &o.SitterName, &o.ServiceNames, &o.PetNames); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PGBookingRepository) ItemsForMember(ctx context.Context, bookingNo, memberID string) ([]OrderItemRow, error) {
	var owned string
	err := r.db.QueryRow(ctx, `SELECT b_no FROM booking WHERE b_no = $1 AND m_id = $2`, bookingNo, memberID).Scan(&owned)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT bl.b_no, bl.s_no, sv.s_name, bl.p_id, p.name, bl.amount, bl.price
		FROM booking_line bl
		LEFT JOIN service sv ON sv.s_no = bl.s_no
		LEFT JOIN pet p ON p.p_id = bl.p_id
		WHERE bl.b_no = $1
		ORDER BY bl.s_no NULLS FIRST, bl.p_id`, bookingNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemRow, 0)
	for rows.Next() {
		var it OrderItemRow
		if err := rows.Scan(&it.BookingNo, &it.ServiceID, &it.ServiceName, &it.PetID, &it.PetName, &it.Amount, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGBookingRepository) PendingSummary(ctx context.Context, memberID string) (int64, float64, error) {
	var count int64
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM booking WHERE status = $1 AND m_id = $2`, domain.BookingStatusReserved, memberID).Scan(&count, &total)
	return count, total, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
