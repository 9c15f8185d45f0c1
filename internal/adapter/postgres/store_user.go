package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/user"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, address, city, state, zip,
	role, sponsor_id, affiliate_name, affiliate_link, about, avatar, registered_at_show, created_at`

func scanUser(row scannable) (user.User, error) {
	var (
		u       user.User
		sponsor *int64
		link    *string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Address,
		&u.City, &u.State, &u.Zip, &u.Role, &sponsor, &u.AffiliateName, &link, &u.About, &u.Avatar,
		&u.RegisteredAtShow, &u.CreatedAt)
	if sponsor != nil {
		u.SponsorID = *sponsor
	}
	if link != nil {
		u.AffiliateLink = *link
	}
	return u, err
}

func (s *Store) queryUsers(ctx context.Context, op, query string, args ...any) ([]user.User, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		users = append(users, u)
	}
	return orEmpty(users), rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundWrap(err, "get user %d", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, notFoundWrap(err, "get user by email %s", email)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) (int64, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, address, city, state, zip,
			role, sponsor_id, affiliate_name, affiliate_link, about, avatar, registered_at_show)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Address, u.City, u.State, u.Zip,
		u.Role, nullIfZero(u.SponsorID), u.AffiliateName, nullIfEmpty(u.AffiliateLink), u.About, u.Avatar,
		u.RegisteredAtShow,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return 0, conflictWrap(err, "create user %s", u.Email)
	}
	return u.ID, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	return execExpectOne(tag, err, "update password hash %d", id)
}

// --- Affiliates ---

func (s *Store) ListAffiliates(ctx context.Context) ([]user.User, error) {
	return s.queryUsers(ctx, "list affiliates",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY affiliate_name ASC, id ASC`,
		user.RoleAffiliate)
}

func (s *Store) ListAffiliatesByID(ctx context.Context, ids []int64) ([]user.User, error) {
	return s.queryUsers(ctx, "list affiliates by id",
		`SELECT `+userColumns+` FROM users WHERE role = $1 AND id = ANY($2) ORDER BY affiliate_name ASC, id ASC`,
		user.RoleAffiliate, ids)
}

func (s *Store) GetAffiliateByLink(ctx context.Context, link string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 AND affiliate_link = $2`, user.RoleAffiliate, link))
	if err != nil {
		return nil, notFoundWrap(err, "get affiliate by link %q", link)
	}
	return &u, nil
}

func (s *Store) AffiliateLinkExists(ctx context.Context, link string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE affiliate_link = $1)`, link).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check affiliate link %q: %w", link, err)
	}
	return exists, nil
}

func (s *Store) CreateClick(ctx context.Context, c *affiliate.Click) (int64, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO affiliate_clicks (affiliate_id, ip_address) VALUES ($1, $2) RETURNING id, created_at`,
		c.AffiliateID, c.IPAddress,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("create click: %w", err)
	}
	return c.ID, nil
}

func (s *Store) ListConversions(ctx context.Context, sponsor int64) ([]user.User, error) {
	return s.queryUsers(ctx, "list conversions",
		`SELECT `+userColumns+` FROM users WHERE sponsor_id = $1 ORDER BY id DESC`, sponsor)
}
