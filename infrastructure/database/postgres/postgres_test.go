package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasErrorCode(t *testing.T) {
	fkErr := &pq.Error{Code: ForeignKeyViolation, Message: "violates foreign key constraint"}

	assert.True(t, HasErrorCode(fkErr, ForeignKeyViolation))
	assert.True(t, HasErrorCode(fmt.Errorf("erro no banco de dados: %w", fkErr), ForeignKeyViolation))
	assert.False(t, HasErrorCode(fkErr, UniqueViolation))
	assert.False(t, HasErrorCode(errors.New("qualquer erro"), ForeignKeyViolation))
	assert.False(t, HasErrorCode(nil, ForeignKeyViolation))
}

func TestRunInTransaction(t *testing.T) {
	t.Run("commit quando a função não falha", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE clients").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		conn := &Connection{DB: db}
		err = conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.Exec("UPDATE clients SET status = 'active'")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback quando a função falha", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		conn := &Connection{DB: db}
		fnErr := errors.New("falhou")
		err = conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
