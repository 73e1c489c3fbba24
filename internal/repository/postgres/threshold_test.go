package postgres

import (
	"database/sql"
	"testing"
	"time"

	"thermobot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestThresholdRepo_GetThreshold(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "threshold set",
			mockRows: sqlmock.NewRows([]string{"min_temp", "max_temp", "updated_by", "updated_at"}).
				AddRow(18.0, 25.0, int64(123), time.Now()),
			expectedNil:   false,
			expectedError: false,
		},
		{
			name:          "no threshold",
			mockError:     sql.ErrNoRows,
			expectedNil:   true,
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewThresholdRepo(db)

			query := mock.ExpectQuery("SELECT min_temp, max_temp, updated_by, updated_at").
				WithArgs("G1", "D7")
			if tt.mockError != nil {
				query.WillReturnError(tt.mockError)
			} else {
				query.WillReturnRows(tt.mockRows)
			}

			threshold, err := repo.GetThreshold("G1", "D7")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, threshold)
			} else {
				assert.NotNil(t, threshold)
				assert.Equal(t, 18.0, threshold.Min)
				assert.Equal(t, 25.0, threshold.Max)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestThresholdRepo_SetThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewThresholdRepo(db)

	mock.ExpectExec("INSERT INTO thresholds").
		WithArgs("G1", "D7", 18.0, 25.0, int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetThreshold(&domain.Threshold{
		Group:     "G1",
		DeviceID:  "D7",
		Min:       18,
		Max:       25,
		UpdatedBy: 123,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThresholdRepo_SetGroupThresholds(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewThresholdRepo(db)

	mock.ExpectExec("UPDATE thresholds").
		WithArgs("G1", 18.0, 25.0, int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.NoError(t, repo.SetGroupThresholds("G1", 18, 25, 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThresholdRepo_SetGroupsThresholds(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewThresholdRepo(db)

	mock.ExpectExec("UPDATE thresholds").
		WithArgs(pq.Array([]string{"G1", "G2"}), 18.0, 25.0, int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 8))

	assert.NoError(t, repo.SetGroupsThresholds([]string{"G1", "G2"}, 18, 25, 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestThresholdRepo_SetAllThresholds(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewThresholdRepo(db)

	mock.ExpectExec("UPDATE thresholds").
		WithArgs(18.0, 25.0, int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 20))

	assert.NoError(t, repo.SetAllThresholds(18, 25, 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}
