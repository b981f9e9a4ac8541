package orchestrators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fringe/internal/domain/account"
)

// mockAccountStore implements AccountStoreForLogin.
type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore(accounts ...account.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]account.Account)}
	for _, a := range accounts {
		m.accounts[a.Email] = a
	}
	return m
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errNotFound
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

func testAccount(t *testing.T, password string) account.Account {
	t.Helper()
	a := account.Account{ID: "acct-1", Email: "admin@thefringe.co.nz", Role: account.RoleAdmin}
	require.NoError(t, a.SetPassword(password))
	return a
}

func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "correct horse battery"))

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@thefringe.co.nz",
		Password: "correct horse battery",
	}, LoginDeps{AccountStore: store})
	require.NoError(t, err)

	assert.Equal(t, "acct-1", result.AccountID)
	assert.Equal(t, account.RoleAdmin, result.Role)
}

func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "correct horse battery"))

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@thefringe.co.nz",
		Password: "wrong",
	}, LoginDeps{AccountStore: store})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, store.accounts["admin@thefringe.co.nz"].FailedLogins)
}

func TestExecuteLogin_UnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, LoginDeps{AccountStore: newMockAccountStore()})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExecuteLogin_EmptyInput(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{}, LoginDeps{AccountStore: newMockAccountStore()})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExecuteLogin_LockedAccount(t *testing.T) {
	a := testAccount(t, "correct horse battery")
	a.LockedUntil = time.Now().Add(10 * time.Minute)
	store := newMockAccountStore(a)

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@thefringe.co.nz",
		Password: "correct horse battery",
	}, LoginDeps{AccountStore: store})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestExecuteLogin_LockoutAfterMaxFailures(t *testing.T) {
	store := newMockAccountStore(testAccount(t, "correct horse battery"))

	for i := 0; i < account.MaxFailedLogins; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{
			Email:    "admin@thefringe.co.nz",
			Password: "wrong",
		}, LoginDeps{AccountStore: store})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@thefringe.co.nz",
		Password: "correct horse battery",
	}, LoginDeps{AccountStore: store})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestExecuteLogin_SuccessResetsFailures(t *testing.T) {
	a := testAccount(t, "correct horse battery")
	a.FailedLogins = 3
	store := newMockAccountStore(a)

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@thefringe.co.nz",
		Password: "correct horse battery",
	}, LoginDeps{AccountStore: store})
	require.NoError(t, err)
	assert.Zero(t, store.accounts["admin@thefringe.co.nz"].FailedLogins)
}
