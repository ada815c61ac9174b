package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"damq_travel/internal/adapters/observability"
	"damq_travel/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- tours ----

func (r *Repo) GetAll(ctx context.Context, col domain.Collection) ([]domain.Tour, error) {
	switch col {
	case domain.CollectionFullTours:
		return r.queryFullTours(ctx, getAllFullToursSQL)
	case domain.CollectionDayTours:
		return r.queryDayTours(ctx, getAllDayToursSQL)
	}
	return nil, domain.ErrBadCollection
}

func (r *Repo) ListPublic(ctx context.Context, col domain.Collection) ([]domain.Tour, error) {
	switch col {
	case domain.CollectionFullTours:
		return r.queryFullTours(ctx, listPublicFullToursSQL)
	case domain.CollectionDayTours:
		return r.queryDayTours(ctx, listPublicDayToursSQL)
	}
	return nil, domain.ErrBadCollection
}

func (r *Repo) Get(ctx context.Context, col domain.Collection, id string) (domain.Tour, error) {
	switch col {
	case domain.CollectionFullTours:
		return scanFullTour(r.db.QueryRowContext(ctx, getFullTourSQL, id))
	case domain.CollectionDayTours:
		return scanDayTour(r.db.QueryRowContext(ctx, getDayTourSQL, id))
	}
	return domain.Tour{}, domain.ErrBadCollection
}

func (r *Repo) Add(ctx context.Context, col domain.Collection, t domain.Tour) (string, error) {
	id := uuid.NewString()
	var err error
	switch col {
	case domain.CollectionFullTours:
		_, err = r.db.ExecContext(ctx, insertFullTourSQL,
			id, t.Title, t.Description, t.ImageURL, t.Duration, t.GroupSize,
			t.Price, t.Rating, t.Badge, t.Order, t.Featured, true)
	case domain.CollectionDayTours:
		_, err = r.db.ExecContext(ctx, insertDayTourSQL,
			id, t.Title, t.Description, t.ImageURL, t.Duration, t.GroupSize,
			t.Price, t.Badge, t.Location, t.Order, true)
	default:
		return "", domain.ErrBadCollection
	}
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", col, err)
	}
	observability.ObserveMutation(string(col), "add")
	return id, nil
}

func (r *Repo) Update(ctx context.Context, col domain.Collection, id string, t domain.Tour) error {
	var res sql.Result
	var err error
	switch col {
	case domain.CollectionFullTours:
		res, err = r.db.ExecContext(ctx, updateFullTourSQL,
			t.Title, t.Description, t.ImageURL, t.Duration, t.GroupSize,
			t.Price, t.Rating, t.Badge, t.Order, t.Featured, t.Active, id)
	case domain.CollectionDayTours:
		res, err = r.db.ExecContext(ctx, updateDayTourSQL,
			t.Title, t.Description, t.ImageURL, t.Duration, t.GroupSize,
			t.Price, t.Badge, t.Location, t.Order, t.Active, id)
	default:
		return domain.ErrBadCollection
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", col, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the id is missing or the row was unchanged; disambiguate.
		if _, gerr := r.Get(ctx, col, id); gerr != nil {
			return gerr
		}
	}
	observability.ObserveMutation(string(col), "update")
	return nil
}

func (r *Repo) Delete(ctx context.Context, col domain.Collection, id string) error {
	var table string
	switch col {
	case domain.CollectionFullTours:
		table = "full_tours"
	case domain.CollectionDayTours:
		table = "day_tours"
	default:
		return domain.ErrBadCollection
	}
	// Missing ids are a no-op: the delete verb is idempotent.
	_, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err == nil {
		observability.ObserveMutation(string(col), "delete")
	}
	return err
}

func (r *Repo) queryFullTours(ctx context.Context, q string) ([]domain.Tour, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Tour{}
	for rows.Next() {
		t, err := scanFullTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) queryDayTours(ctx context.Context, q string) ([]domain.Tour, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Tour{}
	for rows.Next() {
		t, err := scanDayTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanFullTour(row rowScanner) (domain.Tour, error) {
	var t domain.Tour
	var desc, img, dur, group, price, rating, badge sql.NullString
	var created sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &desc, &img, &dur, &group, &price,
		&rating, &badge, &t.Order, &t.Featured, &t.Active, &created)
	if err == sql.ErrNoRows {
		return domain.Tour{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Tour{}, err
	}
	t.Description = desc.String
	t.ImageURL = img.String
	t.Duration = dur.String
	t.GroupSize = group.String
	t.Price = price.String
	t.Rating = rating.String
	t.Badge = badge.String
	if created.Valid {
		t.CreatedAt = created.Time
	}
	return t, nil
}

func scanDayTour(row rowScanner) (domain.Tour, error) {
	var t domain.Tour
	var desc, img, dur, group, price, badge, loc sql.NullString
	var created sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &desc, &img, &dur, &group, &price,
		&badge, &loc, &t.Order, &t.Active, &created)
	if err == sql.ErrNoRows {
		return domain.Tour{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Tour{}, err
	}
	t.Description = desc.String
	t.ImageURL = img.String
	t.Duration = dur.String
	t.GroupSize = group.String
	t.Price = price.String
	t.Badge = badge.String
	t.Location = loc.String
	if created.Valid {
		t.CreatedAt = created.Time
	}
	return t, nil
}

// ---- reviews ----

type ReviewRepo struct{ db *sql.DB }

func NewReviews(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) GetAll(ctx context.Context) ([]domain.Review, error) {
	return r.queryReviews(ctx, getAllReviewsSQL)
}

func (r *ReviewRepo) ListApproved(ctx context.Context) ([]domain.Review, error) {
	return r.queryReviews(ctx, listApprovedReviewsSQL)
}

func (r *ReviewRepo) Add(ctx context.Context, rv domain.Review) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		id, rv.FirstName, rv.LastName, rv.Country, rv.Rating, rv.Text, rv.Approved)
	if err != nil {
		return "", fmt.Errorf("insert review: %w", err)
	}
	observability.ObserveMutation("reviews", "add")
	return id, nil
}

func (r *ReviewRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	res, err := r.db.ExecContext(ctx, setReviewApprovedSQL, approved, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if qerr := r.db.QueryRowContext(ctx, `SELECT 1 FROM reviews WHERE id = ?`, id).Scan(&exists); qerr == sql.ErrNoRows {
			return domain.ErrNotFound
		}
	}
	observability.ObserveMutation("reviews", "update")
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err == nil {
		observability.ObserveMutation("reviews", "delete")
	}
	return err
}

func (r *ReviewRepo) queryReviews(ctx context.Context, q string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		var country, text sql.NullString
		var created sql.NullTime
		if err := rows.Scan(&rv.ID, &rv.FirstName, &rv.LastName, &country,
			&rv.Rating, &text, &rv.Approved, &created); err != nil {
			return nil, err
		}
		rv.Country = country.String
		rv.Text = text.String
		if created.Valid {
			rv.CreatedAt = created.Time
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
