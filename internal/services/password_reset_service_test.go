package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ardhi/internal/models"
)

func newResetServiceForTest(t *testing.T) (PasswordResetService, UserService, *fakeUserRepo, *fakeEmailService) {
	t.Helper()
	repo := newFakeUserRepo()
	emails := newFakeEmailService()
	auth := NewAuthService([]byte("test-secret"))
	users := NewUserService(repo, emails, auth)
	reset := NewPasswordResetService(repo, emails, auth)
	return reset, users, repo, emails
}

func TestRequestReset_SetsCodeAndEmails(t *testing.T) {
	reset, users, repo, emails := newResetServiceForTest(t)

	_, err := users.Register(&models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)

	require.NoError(t, reset.RequestReset("a@x.com"))

	u, _ := repo.GetByEmail("a@x.com")
	require.NotNil(t, u.ResetCode)
	require.NotNil(t, u.ResetCodeExpiry)

	n, err := strconv.Atoi(*u.ResetCode)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *u.ResetCodeExpiry, time.Minute)

	assert.Equal(t, *u.ResetCode, emails.resetCodes["a@x.com"])
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	reset, _, _, _ := newResetServiceForTest(t)

	err := reset.RequestReset("ghost@x.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestRequestReset_NewCodeOverwritesOld(t *testing.T) {
	reset, users, repo, _ := newResetServiceForTest(t)

	_, err := users.Register(&models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)

	require.NoError(t, reset.RequestReset("a@x.com"))
	u, _ := repo.GetByEmail("a@x.com")
	first := *u.ResetCode

	require.NoError(t, reset.RequestReset("a@x.com"))
	u, _ = repo.GetByEmail("a@x.com")

	// старый код погашен заменой, активен ровно один
	if first != *u.ResetCode {
		got, _ := repo.GetByActiveResetCode(first)
		assert.Nil(t, got)
	}
}

func TestRequestReset_MailFailureSurfaces(t *testing.T) {
	reset, users, _, emails := newResetServiceForTest(t)

	_, err := users.Register(&models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)

	emails.failSend = true
	err = reset.RequestReset("a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailNotFound)
}

func TestConfirmReset_HappyPathAndSingleUse(t *testing.T) {
	reset, users, repo, emails := newResetServiceForTest(t)

	_, err := users.Register(&models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)
	require.NoError(t, reset.RequestReset("a@x.com"))
	code := emails.resetCodes["a@x.com"]

	require.NoError(t, reset.ConfirmReset(code, "newpass99"))

	// пароль сменился, код одноразовый
	_, err = users.Authenticate("a@x.com", "newpass99")
	require.NoError(t, err)
	_, err = users.Authenticate("a@x.com", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	u, _ := repo.GetByEmail("a@x.com")
	assert.Nil(t, u.ResetCode)
	assert.Nil(t, u.ResetCodeExpiry)

	err = reset.ConfirmReset(code, "another99")
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestConfirmReset_ExpiredCode(t *testing.T) {
	reset, users, repo, emails := newResetServiceForTest(t)

	_, err := users.Register(&models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)
	require.NoError(t, reset.RequestReset("a@x.com"))
	code := emails.resetCodes["a@x.com"]

	// протухаем код вручную
	u, _ := repo.GetByEmail("a@x.com")
	past := time.Now().Add(-time.Minute)
	u.ResetCodeExpiry = &past

	err = reset.ConfirmReset(code, "newpass99")
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestConfirmReset_ShortPassword(t *testing.T) {
	reset, _, _, _ := newResetServiceForTest(t)

	err := reset.ConfirmReset("123456", "abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
