package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateTransactionWithSplits atomically inserts a transaction and its
// splits. When called on the root store it wraps itself in ExecTx.
func (s *Store) CreateTransactionWithSplits(tx Transaction, splits []Split) (int64, error) {
	if _, inTx := s.db.(*sql.Tx); !inTx {
		var newTxID int64
		err := s.ExecTx(func(r Repository) error {
			id, err := r.CreateTransactionWithSplits(tx, splits)
			newTxID = id
			return err
		})
		return newTxID, err
	}

	stmtTx, err := s.db.Prepare(`
        INSERT INTO transactions (timestamp, num, description, notes, currency, void_reason)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare transaction SQL: %w", err)
	}
	defer stmtTx.Close()

	var newTxID int64
	err = stmtTx.QueryRow(tx.Timestamp, tx.Num, tx.Description, tx.Notes, tx.Currency, tx.VoidReason).Scan(&newTxID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	stmtSplit, err := s.db.Prepare(`
        INSERT INTO splits (transaction_id, account_id, amount, value, memo, action, rec_state, rec_date)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?);
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare split SQL: %w", err)
	}
	defer stmtSplit.Close()

	for _, split := range splits {
		_, err := stmtSplit.Exec(newTxID, split.AccountID, split.Amount, split.Value,
			split.Memo, split.Action, split.RecState, split.RecDate)
		if err != nil {
			return 0, fmt.Errorf("failed to insert split (account_id: %d): %w", split.AccountID, err)
		}
	}

	return newTxID, nil
}

func (s *Store) GetTransactionByID(txID int64) (*Transaction, []*Split, error) {
	var tx Transaction
	err := s.db.QueryRow(`
        SELECT id, timestamp, num, description, notes, currency, void_reason
        FROM transactions
        WHERE id = ?
    `, txID).Scan(&tx.ID, &tx.Timestamp, &tx.Num, &tx.Description, &tx.Notes, &tx.Currency, &tx.VoidReason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("transaction with ID %d : %w", txID, ErrRecordNotFound)
		}
		return nil, nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT id, transaction_id, account_id, amount, value, memo, action, rec_state, rec_date
        FROM splits
        WHERE transaction_id = ?
        ORDER BY id
    `, txID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		err := rows.Scan(
			&split.ID,
			&split.TransactionID,
			&split.AccountID,
			&split.Amount,
			&split.Value,
			&split.Memo,
			&split.Action,
			&split.RecState,
			&split.RecDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating splits: %w", err)
	}

	return &tx, splits, nil
}

func (s *Store) GetAllTransactions(limit int) ([]*Transaction, error) {
	rows, err := s.db.Query(`
        SELECT id, timestamp, num, description, notes, currency, void_reason
        FROM transactions
        ORDER BY timestamp DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		err := rows.Scan(&tx.ID, &tx.Timestamp, &tx.Num, &tx.Description, &tx.Notes, &tx.Currency, &tx.VoidReason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func (s *Store) AddPrice(p Price) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO prices (commodity_ns, commodity_mnemonic, currency_ns, currency_mnemonic, value, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price SQL: %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(p.CommodityNS, p.CommodityMnemonic, p.CurrencyNS, p.CurrencyMnemonic, p.Value, p.Timestamp).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert price: %w", err)
	}

	return newID, nil
}

func (s *Store) GetAllPrices() ([]*Price, error) {
	rows, err := s.db.Query(`
		SELECT id, commodity_ns, commodity_mnemonic, currency_ns, currency_mnemonic, value, timestamp
		FROM prices
		ORDER BY timestamp
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	var prices []*Price
	for rows.Next() {
		p := &Price{}
		err := rows.Scan(&p.ID, &p.CommodityNS, &p.CommodityMnemonic,
			&p.CurrencyNS, &p.CurrencyMnemonic, &p.Value, &p.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}
