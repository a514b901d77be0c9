package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func (s *Store) CreateCommodity(namespace, mnemonic, fullName string, fraction int64) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO commodities (namespace, mnemonic, fullname, fraction)
		VALUES (?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(namespace, mnemonic, fullName, fraction).Scan(&newID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("commodity '%s::%s' is already existed : %w", namespace, mnemonic, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return newID, nil
}

func (s *Store) GetAllCommodities() ([]*Commodity, error) {
	rows, err := s.db.Query(`
		SELECT id, namespace, mnemonic, fullname, fraction
		FROM commodities
		ORDER BY namespace, mnemonic
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodities: %w", err)
	}
	defer rows.Close()

	var commodities []*Commodity
	for rows.Next() {
		c := &Commodity{}
		err := rows.Scan(&c.ID, &c.Namespace, &c.Mnemonic, &c.FullName, &c.Fraction)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commodity: %w", err)
		}
		commodities = append(commodities, c)
	}

	return commodities, rows.Err()
}

func (s *Store) CreateAccount(name, accType, commodityNS, commodityMnemonic, description string, parentID *int64) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO accounts (name, type, commodity_ns, commodity_mnemonic, description, parent_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(name, accType, commodityNS, commodityMnemonic, description, parentID).Scan(&newID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: accounts.name") {
			return 0, fmt.Errorf("account name '%s' : %w", name, ErrAccountExists)
		}
		return 0, fmt.Errorf("failed to executing SQL insertion : %w", err)
	}

	return newID, nil
}

func (s *Store) GetAllAccounts() ([]*Account, error) {
	rows, err := s.db.Query(`
		SELECT id, name, type, parent_id, commodity_ns, commodity_mnemonic, description, is_hidden
		FROM accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		acc := &Account{}
		var parentID sql.NullInt64

		err := rows.Scan(
			&acc.ID, &acc.Name, &acc.Type,
			&parentID, &acc.CommodityNS, &acc.CommodityMnemonic,
			&acc.Description, &acc.IsHidden,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}

		if parentID.Valid {
			acc.ParentID = &parentID.Int64
		}

		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

func (s *Store) GetAccountByName(name string) (*Account, error) {
	row := s.db.QueryRow(`
		SELECT id, name, type, parent_id, commodity_ns, commodity_mnemonic, description, is_hidden
		FROM accounts WHERE name = ?`, name)

	acc := &Account{}

	var parentID sql.NullInt64

	err := row.Scan(
		&acc.ID, &acc.Name, &acc.Type,
		&parentID, &acc.CommodityNS, &acc.CommodityMnemonic,
		&acc.Description, &acc.IsHidden,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s' : %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s' : %w", name, err)
	}

	if parentID.Valid {
		acc.ParentID = &parentID.Int64
	}

	return acc, nil
}

func (s *Store) AccountExists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(1) FROM accounts WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence : %w", err)
	}
	return count > 0, nil
}
