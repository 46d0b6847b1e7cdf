package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type migratorMock struct {
	mock.Mock
}

func (m *migratorMock) Up() error                  { return m.Called().Error(0) }
func (m *migratorMock) Steps(n int) error          { return m.Called(n).Error(0) }
func (m *migratorMock) Migrate(version uint) error { return m.Called(version).Error(0) }
func (m *migratorMock) Force(version int) error    { return m.Called(version).Error(0) }

func (m *migratorMock) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func exec(t *testing.T, name string, m *migratorMock, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := commands[name].run(m, args, &out, logging.NewNop())
	m.AssertExpectations(t)
	return out.String(), err
}

func TestCommands_Up(t *testing.T) {
	m := &migratorMock{}
	m.On("Up").Return(migrate.ErrNoChange).Once()
	_, err := exec(t, "up", m)
	assert.NoError(t, err)

	m = &migratorMock{}
	m.On("Up").Return(errors.New("dirty database version 1")).Once()
	_, err = exec(t, "up", m)
	assert.Error(t, err)
}

func TestCommands_Down(t *testing.T) {
	m := &migratorMock{}
	m.On("Steps", -1).Return(nil).Once()
	_, err := exec(t, "down", m)
	require.NoError(t, err)

	m = &migratorMock{}
	m.On("Steps", -3).Return(nil).Once()
	_, err = exec(t, "down", m, " 3 ")
	require.NoError(t, err)

	for _, bad := range []string{"0", "two", "-1"} {
		_, err = exec(t, "down", &migratorMock{}, bad)
		assert.Error(t, err, bad)
	}
}

func TestCommands_GotoAndForce(t *testing.T) {
	m := &migratorMock{}
	m.On("Migrate", uint(1)).Return(nil).Once()

	_, err := exec(t, "goto", m, "1")
	require.NoError(t, err)
	m.On("Force", 1).Return(nil).Once()
	_, err = exec(t, "force", m, "1")
	require.NoError(t, err)

	_, err = exec(t, "force", &migratorMock{})
	assert.ErrorContains(t, err, "requires a version")
}

func TestCommands_Version(t *testing.T) {
	m := &migratorMock{}
	m.On("Version").Return(uint(1), true, nil).Once()
	out, err := exec(t, "version", m)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\ndirty: true\n", out)

	m = &migratorMock{}
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
	out, err = exec(t, "version", m)
	require.NoError(t, err)
	assert.Contains(t, out, "version: none")
}

func TestRun_ValidatesBeforeConnecting(t *testing.T) {
	logger := logging.NewNop()

	assert.ErrorIs(t, run(nil, logger), errUsage)
	assert.ErrorIs(t, run([]string{"sideways"}, logger), errUsage)

	t.Setenv("APP_ENV", "dev")
	t.Setenv("DB_URL", "")
	err := run([]string{"up"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
}

func TestPrintUsage_ListsCommands(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out, "migration")
	for _, name := range []string{"up", "down [n]", "goto <version>", "force <version>", "version"} {
		assert.Contains(t, out.String(), name)
	}
}
