package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/user"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, address, city, state, zip,
	role, sponsor_id, affiliate_name, affiliate_link, about, avatar, registered_at_show, created_at`

func scanUser(row scannable) (user.User, error) {
	var (
		u       user.User
		sponsor sql.NullInt64
		link    sql.NullString
		show    int
		created int64
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Address,
		&u.City, &u.State, &u.Zip, &u.Role, &sponsor, &u.AffiliateName, &link, &u.About, &u.Avatar,
		&show, &created)
	if err != nil {
		return u, err
	}
	u.SponsorID = sponsor.Int64
	u.AffiliateLink = link.String
	u.RegisteredAtShow = show != 0
	u.CreatedAt = fromMillis(created)
	return u, nil
}

func (s *Store) queryUsers(ctx context.Context, op, query string, args ...any) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get user %d", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return nil, notFoundWrap(err, "get user by email %s", email)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) (int64, error) {
	created := s.now().UTC()
	var sponsor, link any
	if u.SponsorID != 0 {
		sponsor = u.SponsorID
	}
	if u.AffiliateLink != "" {
		link = u.AffiliateLink
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, address, city, state, zip,
			role, sponsor_id, affiliate_name, affiliate_link, about, avatar, registered_at_show, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Address, u.City, u.State, u.Zip,
		string(u.Role), sponsor, u.AffiliateName, link, u.About, u.Avatar, boolInt(u.RegisteredAtShow),
		toMillis(created))
	if err != nil {
		return 0, conflictWrap(err, "create user %s", u.Email)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user: last insert id: %w", err)
	}
	u.ID, u.CreatedAt = id, fromMillis(toMillis(created))
	return id, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	return expectOne(res, err, "update password hash %d", id)
}

// --- Affiliates ---

func (s *Store) ListAffiliates(ctx context.Context) ([]user.User, error) {
	return s.queryUsers(ctx, "list affiliates",
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY affiliate_name ASC, id ASC`,
		string(user.RoleAffiliate))
}

func (s *Store) ListAffiliatesByID(ctx context.Context, ids []int64) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(user.RoleAffiliate))
	for _, id := range ids {
		args = append(args, id)
	}
	return s.queryUsers(ctx, "list affiliates by id",
		`SELECT `+userColumns+` FROM users WHERE role = ? AND id IN (`+placeholders(len(ids))+`)
		 ORDER BY affiliate_name ASC, id ASC`, args...)
}

func (s *Store) GetAffiliateByLink(ctx context.Context, link string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? AND affiliate_link = ?`, string(user.RoleAffiliate), link))
	if err != nil {
		return nil, notFoundWrap(err, "get affiliate by link %q", link)
	}
	return &u, nil
}

func (s *Store) AffiliateLinkExists(ctx context.Context, link string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE affiliate_link = ?)`, link).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check affiliate link %q: %w", link, err)
	}
	return exists != 0, nil
}

func (s *Store) CreateClick(ctx context.Context, c *affiliate.Click) (int64, error) {
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO affiliate_clicks (affiliate_id, ip_address, created_at) VALUES (?, ?, ?)`,
		c.AffiliateID, c.IPAddress, toMillis(created))
	if err != nil {
		return 0, fmt.Errorf("create click: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create click: last insert id: %w", err)
	}
	c.ID, c.CreatedAt = id, fromMillis(toMillis(created))
	return id, nil
}

func (s *Store) ListConversions(ctx context.Context, sponsor int64) ([]user.User, error) {
	return s.queryUsers(ctx, "list conversions",
		`SELECT `+userColumns+` FROM users WHERE sponsor_id = ? ORDER BY id DESC`, sponsor)
}
