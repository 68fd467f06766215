package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/WanderingWalnut/Grantly/core/db"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const organizationColumns = `id, legal_name, operating_name, cra_business_number, org_structure,
	naics_code, sector_tags, address, contact_email, website, created_at, updated_at`

const getOrganizationSQL = `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

const createOrganizationSQL = `INSERT INTO organizations (
	id, legal_name, operating_name, cra_business_number, org_structure,
	naics_code, sector_tags, address, contact_email, website
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + organizationColumns

const updateOrganizationSQL = `UPDATE organizations SET
	legal_name = $2, operating_name = $3, cra_business_number = $4, org_structure = $5,
	naics_code = $6, sector_tags = $7, address = $8, contact_email = $9, website = $10,
	updated_at = now()
WHERE id = $1
RETURNING ` + organizationColumns

const deleteOrganizationSQL = `DELETE FROM organizations WHERE id = $1`

const listOrganizationsSQL = `SELECT ` + organizationColumns + `
FROM organizations WHERE id > $1 ORDER BY id LIMIT $2`

type organizationStore struct {
	conn db.DBTX
}

func newOrganizationStore(conn db.DBTX) OrganizationStore {
	return &organizationStore{conn: conn}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := scanOrganization(s.conn.QueryRow(ctx, getOrganizationSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.conn.QueryRow(ctx, createOrganizationSQL, organizationArgs(org)...)
	created, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.conn.QueryRow(ctx, updateOrganizationSQL, organizationArgs(org)...)
	updated, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.conn.Exec(ctx, deleteOrganizationSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizationStore) List(ctx context.Context, afterID int64, limit int) ([]model.Organization, error) {
	rows, err := s.conn.Query(ctx, listOrganizationsSQL, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	defer rows.Close()

	orgs := []model.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func organizationArgs(org *model.Organization) []any {
	p := org.Profile
	tags := p.SectorTags
	if tags == nil {
		tags = []string{}
	}
	return []any{
		org.ID,
		p.LegalName,
		p.OperatingName,
		p.RegistrationNumber,
		string(p.Structure),
		p.NAICSCode,
		tags,
		p.Address,
		p.ContactEmail,
		p.Website,
	}
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var (
		org       model.Organization
		structure string
		address   *model.Address
		createdAt time.Time
		updatedAt time.Time
	)
	p := &org.Profile
	err := row.Scan(
		&org.ID,
		&p.LegalName,
		&p.OperatingName,
		&p.RegistrationNumber,
		&structure,
		&p.NAICSCode,
		&p.SectorTags,
		&address,
		&p.ContactEmail,
		&p.Website,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning organization: %w", err)
	}
	p.Structure = model.OrgStructure(structure)
	p.Address = address
	org.CreatedAt = createdAt
	org.UpdatedAt = updatedAt
	return &org, nil
}
