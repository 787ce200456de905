package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeposit(t *testing.T, expected float64) *Deposit {
	t.Helper()
	deposit, err := NewDeposit(uuid.New(), uuid.New(), expected, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, err)
	return deposit
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	deposit := newDeposit(t, 1500)
	for _, amount := range []float64{0, -100} {
		_, err := deposit.RecordTransaction(DepositTransactionReceived, amount, time.Now().UTC(), "")
		require.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, deposit.Transactions)
}

func TestDepositRejectsUnknownKind(t *testing.T) {
	deposit := newDeposit(t, 1500)
	_, err := deposit.RecordTransaction("TRANSFERRED", 100, time.Now().UTC(), "")
	require.ErrorIs(t, err, ErrValidation)
}

// Balance held is a pure function of the ledger at every point of the
// sequence.
func TestDepositLedgerAdditivity(t *testing.T) {
	deposit := newDeposit(t, 2000)
	now := time.Now().UTC()

	steps := []struct {
		kind    DepositTransactionKind
		amount  float64
		balance float64
	}{
		{DepositTransactionReceived, 800, 800},
		{DepositTransactionReceived, 1200, 2000},
		{DepositTransactionDeducted, 150, 1850},
		{DepositTransactionRefunded, 1850, 0},
	}
	for _, step := range steps {
		_, err := deposit.RecordTransaction(step.kind, step.amount, now, "")
		require.NoError(t, err)
		assert.Equal(t, step.balance, deposit.BalanceHeld())
		assert.Equal(t, deposit.TotalReceived()-deposit.TotalRefunded()-deposit.TotalDeducted(), deposit.BalanceHeld())
	}
}

func TestDepositBalanceNeverGoesNegative(t *testing.T) {
	deposit := newDeposit(t, 1000)
	now := time.Now().UTC()

	_, err := deposit.RecordTransaction(DepositTransactionRefunded, 10, now, "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = deposit.RecordTransaction(DepositTransactionReceived, 500, now, "")
	require.NoError(t, err)

	_, err = deposit.RecordTransaction(DepositTransactionDeducted, 600, now, "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 500.0, deposit.BalanceHeld())
}

func TestDepositStatusRecomputation(t *testing.T) {
	deposit := newDeposit(t, 1500)
	now := time.Now().UTC()
	assert.Equal(t, DepositStatusPending, deposit.Status)

	_, err := deposit.RecordTransaction(DepositTransactionReceived, 1000, now, "wire 1")
	require.NoError(t, err)
	assert.Equal(t, DepositStatusPartiallyPaid, deposit.Status)

	_, err = deposit.RecordTransaction(DepositTransactionReceived, 500, now, "wire 2")
	require.NoError(t, err)
	assert.Equal(t, DepositStatusFullyPaid, deposit.Status)

	_, err = deposit.RecordTransaction(DepositTransactionDeducted, 200, now, "cleaning")
	require.NoError(t, err)
	assert.Equal(t, DepositStatusFullyPaid, deposit.Status)

	_, err = deposit.RecordTransaction(DepositTransactionRefunded, 1300, now, "final refund")
	require.NoError(t, err)
	assert.Equal(t, DepositStatusRefunded, deposit.Status)
	assert.Equal(t, 0.0, deposit.BalanceHeld())
}

// Walkthrough: expected 1500, received 1000 + 500, deducted 200.
func TestDepositScenario(t *testing.T) {
	deposit := newDeposit(t, 1500)
	now := time.Now().UTC()

	for _, amount := range []float64{1000, 500} {
		_, err := deposit.RecordTransaction(DepositTransactionReceived, amount, now, "")
		require.NoError(t, err)
	}
	_, err := deposit.RecordTransaction(DepositTransactionDeducted, 200, now, "")
	require.NoError(t, err)

	assert.Equal(t, 1500.0, deposit.TotalReceived())
	assert.Equal(t, 1300.0, deposit.BalanceHeld())
	assert.Equal(t, 0.0, deposit.Outstanding())
}
