package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/scamwatch/scamwatch-cli/internal/db"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore wraps an existing pool. Used by tests and callers that
// manage the pool themselves.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot triage operations.
var preparedStatements = map[string]string{
	"update_report_status": `UPDATE scam_reports SET status = $2, updated_at = now() WHERE id = $1`,
	"bulk_report_status":   `UPDATE scam_reports SET status = $2, updated_at = now() WHERE id = ANY($1)`,
	"find_business_phone":  `SELECT ` + businessColumns + ` FROM businesses WHERE phone_normalized = $1 ORDER BY id LIMIT 1`,
}

// NewPostgres creates a PostgresStore with its own connection pool.
func NewPostgres(ctx context.Context, connString string, maxConns, minConns int32) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	if minConns <= 0 {
		minConns = 2
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS businesses (
	id               BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	phone            TEXT NOT NULL,
	phone_normalized TEXT NOT NULL,
	location         TEXT NOT NULL DEFAULT '',
	branches_count   INT NOT NULL DEFAULT 0,
	category         TEXT NOT NULL DEFAULT '',
	flag             TEXT NOT NULL DEFAULT '',
	verified         BOOLEAN NOT NULL DEFAULT false,
	created_by_admin BOOLEAN NOT NULL DEFAULT false,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS scam_reports (
	id                  BIGSERIAL PRIMARY KEY,
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
	business_id         BIGINT REFERENCES businesses(id),
	converted_review_id BIGINT,
	converted_at        TIMESTAMPTZ,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS flagged_numbers (
	id             BIGSERIAL PRIMARY KEY,
	phone          TEXT NOT NULL UNIQUE,
	name_on_number TEXT NOT NULL DEFAULT '',
	connected_page TEXT NOT NULL DEFAULT '',
	admin_note     TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'under_review',
	verified       BOOLEAN NOT NULL DEFAULT true,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reviews (
	id             BIGSERIAL PRIMARY KEY,
	business_id    BIGINT NOT NULL REFERENCES businesses(id),
	reviewer_name  TEXT NOT NULL,
	reviewer_phone TEXT NOT NULL,
	rating         INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	body           TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_businesses_phone_normalized ON businesses(phone_normalized);
CREATE INDEX IF NOT EXISTS idx_businesses_created_at ON businesses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_scam_reports_status ON scam_reports(status);
CREATE INDEX IF NOT EXISTS idx_scam_reports_created_at ON scam_reports(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_flagged_numbers_created_at ON flagged_numbers(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_reviews_business_id ON reviews(business_id);
`

// Migrate applies the directory schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// -- Scam reports --

const reportColumns = `id, reference, report_type, phone, name_on_number, connected_page, platform,
	description, submitter_name, submitter_phone, evidence_url, status,
	business_id, converted_review_id, converted_at, created_at, updated_at`

func reportDests(r *ScamReport) []any {
	return []any{
		&r.ID, &r.Reference, &r.ReportType, &r.Phone, &r.NameOnNumber, &r.ConnectedPage, &r.Platform,
		&r.Description, &r.SubmitterName, &r.SubmitterPhone, &r.EvidenceURL, &r.Status,
		&r.BusinessID, &r.ConvertedReviewID, &r.ConvertedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

// CreateReport inserts a new scam report and sets its ID and reference.
func (s *PostgresStore) CreateReport(ctx context.Context, r *ScamReport) error {
	if r.Reference == "" {
		r.Reference = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReportStatusNew
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO scam_reports (
			reference, report_type, phone, name_on_number, connected_page, platform,
			description, submitter_name, submitter_phone, evidence_url, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		r.Reference, r.ReportType, r.Phone, r.NameOnNumber, r.ConnectedPage, r.Platform,
		r.Description, r.SubmitterName, r.SubmitterPhone, r.EvidenceURL, r.Status,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "directory: create report")
	}
	return nil
}

// GetReport fetches a report by ID.
func (s *PostgresStore) GetReport(ctx context.Context, id int64) (*ScamReport, error) {
	r := &ScamReport{}
	err := s.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM scam_reports WHERE id=$1`, id).
		Scan(reportDests(r)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "directory: get report %d", id)
	}
	return r, nil
}

// GetReportByReference fetches a report by its public reference code.
func (s *PostgresStore) GetReportByReference(ctx context.Context, reference string) (*ScamReport, error) {
	r := &ScamReport{}
	err := s.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM scam_reports WHERE reference=$1`, reference).
		Scan(reportDests(r)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "directory: get report by reference %s", reference)
	}
	return r, nil
}

// ListReports returns one page of reports, newest first.
func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) (Page[ScamReport], error) {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.Status != "" {
		rows, err = s.pool.Query(ctx, `
			SELECT `+reportColumns+` FROM scam_reports
			WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter.Status, PageSize, pageOffset(filter.Page))
	} else {
		rows, err = s.pool.Query(ctx, `
			SELECT `+reportColumns+` FROM scam_reports
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			PageSize, pageOffset(filter.Page))
	}
	if err != nil {
		return Page[ScamReport]{}, eris.Wrap(err, "directory: list reports")
	}
	defer rows.Close()

	var reports []ScamReport
	for rows.Next() {
		var r ScamReport
		if err := rows.Scan(reportDests(&r)...); err != nil {
			return Page[ScamReport]{}, eris.Wrap(err, "directory: scan report")
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return Page[ScamReport]{}, eris.Wrap(err, "directory: list reports")
	}
	return newPage(reports, filter.Page), nil
}

// UpdateReportStatus sets the status of a single report.
func (s *PostgresStore) UpdateReportStatus(ctx context.Context, id int64, status ReportStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE scam_reports SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return eris.Wrapf(err, "directory: update report status %d", id)
	}
	return nil
}

// UpdateReportStatuses sets the status of every report in ids in one batched
// statement; the batch succeeds or fails as a unit.
func (s *PostgresStore) UpdateReportStatuses(ctx context.Context, ids []int64, status ReportStatus) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE scam_reports SET status = $2, updated_at = now() WHERE id = ANY($1)`,
		ids, status)
	if err != nil {
		return eris.Wrap(err, "directory: bulk update report status")
	}
	return nil
}

// MarkReportResolved records a flagged-number conversion: status resolved and
// converted_at set, converted_review_id untouched.
func (s *PostgresStore) MarkReportResolved(ctx context.Context, id int64, convertedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE scam_reports SET status = $2, converted_at = $3, updated_at = now()
		WHERE id = $1`,
		id, ReportStatusResolved, convertedAt)
	if err != nil {
		return eris.Wrapf(err, "directory: mark report %d resolved", id)
	}
	return nil
}

// MarkReportConverted records a review conversion: business and review
// linkage, converted_at, and status resolved in one write.
func (s *PostgresStore) MarkReportConverted(ctx context.Context, id, businessID, reviewID int64, convertedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE scam_reports
		SET business_id = $2, converted_review_id = $3, converted_at = $4, status = $5, updated_at = now()
		WHERE id = $1`,
		id, businessID, reviewID, convertedAt, ReportStatusResolved)
	if err != nil {
		return eris.Wrapf(err, "directory: mark report %d converted", id)
	}
	return nil
}

// -- Flagged numbers --

const flaggedColumns = `id, phone, name_on_number, connected_page, admin_note, status, verified, created_at, updated_at`

func flaggedDests(fn *FlaggedNumber) []any {
	return []any{
		&fn.ID, &fn.Phone, &fn.NameOnNumber, &fn.ConnectedPage, &fn.AdminNote,
		&fn.Status, &fn.Verified, &fn.CreatedAt, &fn.UpdatedAt,
	}
}

// UpsertFlaggedNumber inserts or overwrites the flagged number keyed by
// phone. Last writer wins on every field.
func (s *PostgresStore) UpsertFlaggedNumber(ctx context.Context, fn *FlaggedNumber) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO flagged_numbers (phone, name_on_number, connected_page, admin_note, status, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (phone) DO UPDATE SET
			name_on_number=EXCLUDED.name_on_number,
			connected_page=EXCLUDED.connected_page,
			admin_note=EXCLUDED.admin_note,
			status=EXCLUDED.status,
			verified=EXCLUDED.verified,
			updated_at=now()
		RETURNING id, created_at, updated_at`,
		fn.Phone, fn.NameOnNumber, fn.ConnectedPage, fn.AdminNote, fn.Status, fn.Verified,
	).Scan(&fn.ID, &fn.CreatedAt, &fn.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "directory: upsert flagged number")
	}
	return nil
}

// GetFlaggedNumberByPhone fetches a flagged number by its exact phone.
func (s *PostgresStore) GetFlaggedNumberByPhone(ctx context.Context, phone string) (*FlaggedNumber, error) {
	fn := &FlaggedNumber{}
	err := s.pool.QueryRow(ctx, `SELECT `+flaggedColumns+` FROM flagged_numbers WHERE phone=$1`, phone).
		Scan(flaggedDests(fn)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "directory: get flagged number %s", phone)
	}
	return fn, nil
}

// ListFlaggedNumbers returns one page of flagged numbers, newest first.
func (s *PostgresStore) ListFlaggedNumbers(ctx context.Context, page int) (Page[FlaggedNumber], error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+flaggedColumns+` FROM flagged_numbers
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		PageSize, pageOffset(page))
	if err != nil {
		return Page[FlaggedNumber]{}, eris.Wrap(err, "directory: list flagged numbers")
	}
	defer rows.Close()

	var flagged []FlaggedNumber
	for rows.Next() {
		var fn FlaggedNumber
		if err := rows.Scan(flaggedDests(&fn)...); err != nil {
			return Page[FlaggedNumber]{}, eris.Wrap(err, "directory: scan flagged number")
		}
		flagged = append(flagged, fn)
	}
	if err := rows.Err(); err != nil {
		return Page[FlaggedNumber]{}, eris.Wrap(err, "directory: list flagged numbers")
	}
	return newPage(flagged, page), nil
}

// UpdateFlaggedNumberStatus sets the status of a flagged number.
func (s *PostgresStore) UpdateFlaggedNumberStatus(ctx context.Context, id int64, status FlagStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE flagged_numbers SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return eris.Wrapf(err, "directory: update flagged number status %d", id)
	}
	return nil
}

// DeleteFlaggedNumber removes a flagged number.
func (s *PostgresStore) DeleteFlaggedNumber(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM flagged_numbers WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "directory: delete flagged number %d", id)
	}
	return nil
}

// -- Businesses --

const businessColumns = `id, name, phone, phone_normalized, location, branches_count, category,
	flag, verified, created_by_admin, created_at, updated_at`

func businessDests(b *Business) []any {
	return []any{
		&b.ID, &b.Name, &b.Phone, &b.PhoneNormalized, &b.Location, &b.BranchesCount, &b.Category,
		&b.Flag, &b.Verified, &b.CreatedByAdmin, &b.CreatedAt, &b.UpdatedAt,
	}
}

// CreateBusiness inserts a new business and sets its ID.
func (s *PostgresStore) CreateBusiness(ctx context.Context, b *Business) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO businesses (name, phone, phone_normalized, location, branches_count, category,
			flag, verified, created_by_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		b.Name, b.Phone, b.PhoneNormalized, b.Location, b.BranchesCount, b.Category,
		b.Flag, b.Verified, b.CreatedByAdmin,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "directory: create business")
	}
	return nil
}

// GetBusiness fetches a business by ID.
func (s *PostgresStore) GetBusiness(ctx context.Context, id int64) (*Business, error) {
	b := &Business{}
	err := s.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id=$1`, id).
		Scan(businessDests(b)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "directory: get business %d", id)
	}
	return b, nil
}

// FindBusinessByPhone returns the first business whose normalized phone
// matches, or nil when none does.
func (s *PostgresStore) FindBusinessByPhone(ctx context.Context, normalizedPhone string) (*Business, error) {
	b := &Business{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+businessColumns+` FROM businesses
		WHERE phone_normalized = $1 ORDER BY id LIMIT 1`, normalizedPhone).
		Scan(businessDests(b)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "directory: find business by phone %s", normalizedPhone)
	}
	return b, nil
}

// SearchBusinessesByName finds businesses by case-insensitive name match.
func (s *PostgresStore) SearchBusinessesByName(ctx context.Context, name string, limit int) ([]Business, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+businessColumns+` FROM businesses
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2`, name, limit)
	if err != nil {
		return nil, eris.Wrap(err, "directory: search businesses by name")
	}
	defer rows.Close()
	return scanBusinesses(rows)
}

// ListBusinesses returns one page of businesses, newest first.
func (s *PostgresStore) ListBusinesses(ctx context.Context, filter BusinessFilter) (Page[Business], error) {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.Query != "" {
		rows, err = s.pool.Query(ctx, `
			SELECT `+businessColumns+` FROM businesses
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter.Query, PageSize, pageOffset(filter.Page))
	} else {
		rows, err = s.pool.Query(ctx, `
			SELECT `+businessColumns+` FROM businesses
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			PageSize, pageOffset(filter.Page))
	}
	if err != nil {
		return Page[Business]{}, eris.Wrap(err, "directory: list businesses")
	}
	defer rows.Close()

	businesses, err := scanBusinesses(rows)
	if err != nil {
		return Page[Business]{}, err
	}
	return newPage(businesses, filter.Page), nil
}

// UpdateBusiness updates an existing business record.
func (s *PostgresStore) UpdateBusiness(ctx context.Context, b *Business) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE businesses SET
			name=$2, phone=$3, phone_normalized=$4, location=$5, branches_count=$6,
			category=$7, flag=$8, verified=$9, created_by_admin=$10, updated_at=now()
		WHERE id=$1`,
		b.ID,
		b.Name, b.Phone, b.PhoneNormalized, b.Location, b.BranchesCount,
		b.Category, b.Flag, b.Verified, b.CreatedByAdmin,
	)
	if err != nil {
		return eris.Wrapf(err, "directory: update business %d", b.ID)
	}
	return nil
}

// UpdateBusinessFlag sets or clears the risk flag of a business.
func (s *PostgresStore) UpdateBusinessFlag(ctx context.Context, id int64, flag BusinessFlag) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE businesses SET flag = $2, updated_at = now() WHERE id = $1`,
		id, flag)
	if err != nil {
		return eris.Wrapf(err, "directory: update business flag %d", id)
	}
	return nil
}

func scanBusinesses(rows pgx.Rows) ([]Business, error) {
	var businesses []Business
	for rows.Next() {
		var b Business
		if err := rows.Scan(businessDests(&b)...); err != nil {
			return nil, eris.Wrap(err, "directory: scan business")
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "directory: scan businesses")
	}
	return businesses, nil
}

// -- Reviews --

const reviewColumns = `id, business_id, reviewer_name, reviewer_phone, rating, body, status, created_at, updated_at`

func reviewDests(rv *Review) []any {
	return []any{
		&rv.ID, &rv.BusinessID, &rv.ReviewerName, &rv.ReviewerPhone, &rv.Rating,
		&rv.Body, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt,
	}
}

// CreateReview inserts a new review and sets its ID.
func (s *PostgresStore) CreateReview(ctx context.Context, rv *Review) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO reviews (business_id, reviewer_name, reviewer_phone, rating, body, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		rv.BusinessID, rv.ReviewerName, rv.ReviewerPhone, rv.Rating, rv.Body, rv.Status,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "directory: create review")
	}
	return nil
}

// ListReviews returns one page of reviews for a business, newest first.
func (s *PostgresStore) ListReviews(ctx context.Context, businessID int64, page int) (Page[Review], error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE business_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		businessID, PageSize, pageOffset(page))
	if err != nil {
		return Page[Review]{}, eris.Wrap(err, "directory: list reviews")
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(reviewDests(&rv)...); err != nil {
			return Page[Review]{}, eris.Wrap(err, "directory: scan review")
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return Page[Review]{}, eris.Wrap(err, "directory: list reviews")
	}
	return newPage(reviews, page), nil
}

// UpdateReviewStatus sets the moderation status of a review.
func (s *PostgresStore) UpdateReviewStatus(ctx context.Context, id int64, status ReviewStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE reviews SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return eris.Wrapf(err, "directory: update review status %d", id)
	}
	return nil
}

// DeleteReview removes a review. Used by the conversion compensation path.
func (s *PostgresStore) DeleteReview(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "directory: delete review %d", id)
	}
	return nil
}
