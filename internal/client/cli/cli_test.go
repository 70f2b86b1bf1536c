package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/postboard/internal/client/iocli"
)

func promptIO(password string, err error) *iocli.IOMock {
	return &iocli.IOMock{
		PrintfFunc:  func(format string, a ...any) {},
		PrintlnFunc: func(a ...any) {},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return password, err
		},
	}
}

// TestGetPassword_FromEnvVar проверяет чтение пароля из переменной окружения
func TestGetPassword_FromEnvVar(t *testing.T) {
	t.Setenv(PasswordEnv, "test_env_password_123")
	cli := &Cli{passwords: Passwords{FromArgs: "from-args"}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_env_password_123", password)
}

// TestGetPassword_FromFile проверяет чтение пароля из файла
func TestGetPassword_FromFile(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte("test_file_password_456\n"), 0o600))

	cli := &Cli{passwords: Passwords{FromFile: path, FromArgs: "from-args"}}
	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_file_password_456", password)
}

func TestGetPassword_FileErrors(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing.txt"), wantErr: "failed to read password file"},
		{name: "empty file", path: empty, wantErr: "password file is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &Cli{passwords: Passwords{FromFile: tt.path}}
			_, err := cli.getPassword("Password: ")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestGetPassword_FromCLIParam проверяет чтение пароля из CLI параметра
func TestGetPassword_FromCLIParam(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	mockIO := promptIO("", nil)
	cli := &Cli{io: mockIO, passwords: Passwords{FromArgs: "test_cli_password_789"}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_cli_password_789", password)
	assert.Empty(t, mockIO.ReadPasswordCalls(), "промпт не нужен")
}

func TestGetPassword_Prompt(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	t.Run("ok", func(t *testing.T) {
		mockIO := promptIO("typed-password", nil)
		cli := &Cli{io: mockIO}

		password, err := cli.getPassword("Password: ")
		require.NoError(t, err)
		assert.Equal(t, "typed-password", password)
		require.Len(t, mockIO.ReadPasswordCalls(), 1)
		assert.Equal(t, "Password: ", mockIO.ReadPasswordCalls()[0].Prompt)
	})

	t.Run("empty", func(t *testing.T) {
		cli := &Cli{io: promptIO("", nil)}
		_, err := cli.getPassword("Password: ")
		assert.EqualError(t, err, "password cannot be empty")
	})

	t.Run("read error", func(t *testing.T) {
		readErr := errors.New("tty closed")
		cli := &Cli{io: promptIO("", readErr)}
		_, err := cli.getPassword("Password: ")
		assert.ErrorIs(t, err, readErr)
	})
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)

	out := buf.String()
	for _, cmd := range []string{"signup", "login", "logout", "status", "whoami", "post", "posts", "like", "unlike"} {
		assert.Contains(t, out, "  "+cmd)
	}
	assert.Contains(t, out, PasswordEnv)
}
