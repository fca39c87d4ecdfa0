package directory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. It exists for local
// development and demos; production runs on Postgres.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS businesses (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT NOT NULL,
	phone            TEXT NOT NULL,
	phone_normalized TEXT NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	branches_count   INTEGER NOT NULL DEFAULT 0,
	category         TEXT NOT NULL DEFAULT '',
	flag             TEXT NOT NULL DEFAULT '',
	verified         INTEGER NOT NULL DEFAULT 0,
	created_by_admin INTEGER NOT NULL DEFAULT 0,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS scam_reports (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	reference           TEXT NOT NULL UNIQUE,
	report_type         TEXT NOT NULL,
	phone               TEXT NOT NULL DEFAULT '',
	name_on_number      TEXT NOT NULL DEFAULT '',
	connected_page      TEXT NOT NULL DEFAULT '',
	platform            TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL,
	submitter_name      TEXT NOT NULL,
	submitter_phone     TEXT NOT NULL,
	evidence_url        TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL DEFAULT 'new',
	business_id         INTEGER REFERENCES businesses(id),
	converted_review_id INTEGER,
	converted_at        DATETIME,
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS flagged_numbers (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	phone          TEXT NOT NULL UNIQUE,
	name_on_number TEXT NOT NULL DEFAULT '',
	connected_page TEXT NOT NULL DEFAULT '',
	admin_note     TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'under_review',
	verified       INTEGER NOT NULL DEFAULT 1,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	business_id    INTEGER NOT NULL REFERENCES businesses(id),
	reviewer_name  TEXT NOT NULL,
	reviewer_phone TEXT NOT NULL,
	rating         INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	body           TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_businesses_phone_normalized ON businesses(phone_normalized);
CREATE INDEX IF NOT EXISTS idx_scam_reports_status ON scam_reports(status);
CREATE INDEX IF NOT EXISTS idx_reviews_business_id ON reviews(business_id);
`

// Migrate applies the directory schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// -- Scam reports --

func (s *SQLiteStore) CreateReport(ctx context.Context, r *ScamReport) error {
	if r.Reference == "" {
		r.Reference = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReportStatusNew
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO scam_reports (reference, report_type, phone, name_on_number, connected_page,
			platform, description, submitter_name, submitter_phone, evidence_url, status,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Reference, string(r.ReportType), r.Phone, r.NameOnNumber, r.ConnectedPage,
		r.Platform, r.Description, r.SubmitterName, r.SubmitterPhone, r.EvidenceURL, string(r.Status),
		now, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert report")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return eris.Wrap(err, "sqlite: report id")
	}
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, id int64) (*ScamReport, error) {
	return s.getReport(ctx, `WHERE id = ?`, id)
}

func (s *SQLiteStore) GetReportByReference(ctx context.Context, reference string) (*ScamReport, error) {
	return s.getReport(ctx, `WHERE reference = ?`, reference)
}

func (s *SQLiteStore) getReport(ctx context.Context, where string, arg any) (*ScamReport, error) {
	r := &ScamReport{}
	err := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM scam_reports `+where, arg).
		Scan(reportDests(r)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: get report")
	}
	return r, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context, filter ReportFilter) (Page[ScamReport], error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter.Status != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+reportColumns+` FROM scam_reports
			WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			string(filter.Status), PageSize, pageOffset(filter.Page))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+reportColumns+` FROM scam_reports
			ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			PageSize, pageOffset(filter.Page))
	}
	if err != nil {
		return Page[ScamReport]{}, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var reports []ScamReport
	for rows.Next() {
		var r ScamReport
		if err := rows.Scan(reportDests(&r)...); err != nil {
			return Page[ScamReport]{}, eris.Wrap(err, "sqlite: scan report")
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return Page[ScamReport]{}, eris.Wrap(err, "sqlite: list reports")
	}
	return newPage(reports, filter.Page), nil
}

func (s *SQLiteStore) UpdateReportStatus(ctx context.Context, id int64, status ReportStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE scam_reports SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update report status %d", id)
	}
	return nil
}

func (s *SQLiteStore) UpdateReportStatuses(ctx context.Context, ids []int64, status ReportStatus) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+2)
	args = append(args, string(status), time.Now().UTC())
	placeholders := ""
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id)
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE scam_reports SET status = ?, updated_at = ? WHERE id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return eris.Wrap(err, "sqlite: bulk update report status")
	}
	return nil
}

func (s *SQLiteStore) MarkReportResolved(ctx context.Context, id int64, convertedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE scam_reports SET status = ?, converted_at = ?, updated_at = ? WHERE id = ?`,
		string(ReportStatusResolved), convertedAt, time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark report %d resolved", id)
	}
	return nil
}

func (s *SQLiteStore) MarkReportConverted(ctx context.Context, id, businessID, reviewID int64, convertedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE scam_reports
		SET business_id = ?, converted_review_id = ?, converted_at = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		businessID, reviewID, convertedAt, string(ReportStatusResolved), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: mark report %d converted", id)
	}
	return nil
}

// -- Flagged numbers --

func (s *SQLiteStore) UpsertFlaggedNumber(ctx context.Context, fn *FlaggedNumber) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flagged_numbers (phone, name_on_number, connected_page, admin_note, status, verified,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phone) DO UPDATE SET
			name_on_number=excluded.name_on_number,
			connected_page=excluded.connected_page,
			admin_note=excluded.admin_note,
			status=excluded.status,
			verified=excluded.verified,
			updated_at=excluded.updated_at`,
		fn.Phone, fn.NameOnNumber, fn.ConnectedPage, fn.AdminNote, string(fn.Status), fn.Verified,
		now, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: upsert flagged number")
	}

	existing, err := s.GetFlaggedNumberByPhone(ctx, fn.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		*fn = *existing
	}
	return nil
}

func (s *SQLiteStore) GetFlaggedNumberByPhone(ctx context.Context, phone string) (*FlaggedNumber, error) {
	fn := &FlaggedNumber{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+flaggedColumns+` FROM flagged_numbers WHERE phone = ?`, phone).
		Scan(flaggedDests(fn)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get flagged number %s", phone)
	}
	return fn, nil
}

func (s *SQLiteStore) ListFlaggedNumbers(ctx context.Context, page int) (Page[FlaggedNumber], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+flaggedColumns+` FROM flagged_numbers
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		PageSize, pageOffset(page))
	if err != nil {
		return Page[FlaggedNumber]{}, eris.Wrap(err, "sqlite: list flagged numbers")
	}
	defer rows.Close()

	var flagged []FlaggedNumber
	for rows.Next() {
		var fn FlaggedNumber
		if err := rows.Scan(flaggedDests(&fn)...); err != nil {
			return Page[FlaggedNumber]{}, eris.Wrap(err, "sqlite: scan flagged number")
		}
		flagged = append(flagged, fn)
	}
	if err := rows.Err(); err != nil {
		return Page[FlaggedNumber]{}, eris.Wrap(err, "sqlite: list flagged numbers")
	}
	return newPage(flagged, page), nil
}

func (s *SQLiteStore) UpdateFlaggedNumberStatus(ctx context.Context, id int64, status FlagStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE flagged_numbers SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update flagged number status %d", id)
	}
	return nil
}

func (s *SQLiteStore) DeleteFlaggedNumber(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM flagged_numbers WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete flagged number %d", id)
	}
	return nil
}

// -- Businesses --

func (s *SQLiteStore) CreateBusiness(ctx context.Context, b *Business) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO businesses (name, phone, phone_normalized, location, branches_count, category,
			flag, verified, created_by_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.Phone, b.PhoneNormalized, b.Location, b.BranchesCount, b.Category,
		string(b.Flag), b.Verified, b.CreatedByAdmin, now, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert business")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return eris.Wrap(err, "sqlite: business id")
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) GetBusiness(ctx context.Context, id int64) (*Business, error) {
	b := &Business{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id).
		Scan(businessDests(b)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get business %d", id)
	}
	return b, nil
}

func (s *SQLiteStore) FindBusinessByPhone(ctx context.Context, normalizedPhone string) (*Business, error) {
	b := &Business{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+businessColumns+` FROM businesses
		WHERE phone_normalized = ? ORDER BY id LIMIT 1`, normalizedPhone).
		Scan(businessDests(b)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: find business by phone %s", normalizedPhone)
	}
	return b, nil
}

func (s *SQLiteStore) SearchBusinessesByName(ctx context.Context, name string, limit int) ([]Business, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+businessColumns+` FROM businesses
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY created_at DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search businesses by name")
	}
	defer rows.Close()

	var businesses []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(businessDests(&b)...); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan business")
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (s *SQLiteStore) ListBusinesses(ctx context.Context, filter BusinessFilter) (Page[Business], error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter.Query != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+businessColumns+` FROM businesses
			WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
			ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			filter.Query, PageSize, pageOffset(filter.Page))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+businessColumns+` FROM businesses
			ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			PageSize, pageOffset(filter.Page))
	}
	if err != nil {
		return Page[Business]{}, eris.Wrap(err, "sqlite: list businesses")
	}
	defer rows.Close()

	var businesses []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(businessDests(&b)...); err != nil {
			return Page[Business]{}, eris.Wrap(err, "sqlite: scan business")
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return Page[Business]{}, eris.Wrap(err, "sqlite: list businesses")
	}
	return newPage(businesses, filter.Page), nil
}

func (s *SQLiteStore) UpdateBusiness(ctx context.Context, b *Business) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE businesses SET
			name = ?, phone = ?, phone_normalized = ?, location = ?, branches_count = ?,
			category = ?, flag = ?, verified = ?, created_by_admin = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, b.Phone, b.PhoneNormalized, b.Location, b.BranchesCount,
		b.Category, string(b.Flag), b.Verified, b.CreatedByAdmin, time.Now().UTC(),
		b.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update business %d", b.ID)
	}
	return nil
}

func (s *SQLiteStore) UpdateBusinessFlag(ctx context.Context, id int64, flag BusinessFlag) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE businesses SET flag = ?, updated_at = ? WHERE id = ?`,
		string(flag), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update business flag %d", id)
	}
	return nil
}

// -- Reviews --

func (s *SQLiteStore) CreateReview(ctx context.Context, rv *Review) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (business_id, reviewer_name, reviewer_phone, rating, body, status,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rv.BusinessID, rv.ReviewerName, rv.ReviewerPhone, rv.Rating, rv.Body, string(rv.Status),
		now, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert review")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return eris.Wrap(err, "sqlite: review id")
	}
	rv.ID = id
	rv.CreatedAt = now
	rv.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) ListReviews(ctx context.Context, businessID int64, page int) (Page[Review], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE business_id = ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		businessID, PageSize, pageOffset(page))
	if err != nil {
		return Page[Review]{}, eris.Wrap(err, "sqlite: list reviews")
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(reviewDests(&rv)...); err != nil {
			return Page[Review]{}, eris.Wrap(err, "sqlite: scan review")
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return Page[Review]{}, eris.Wrap(err, "sqlite: list reviews")
	}
	return newPage(reviews, page), nil
}

func (s *SQLiteStore) UpdateReviewStatus(ctx context.Context, id int64, status ReviewStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update review status %d", id)
	}
	return nil
}

func (s *SQLiteStore) DeleteReview(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete review %d", id)
	}
	return nil
}
