// Package types — общее для команд клиента: доступ к приложению и ввод с терминала.
package types

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"passvault/internal/app/client"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type ctxKey string

// ClientAppKey — ключ контекста команды, под которым лежит *client.App
const ClientAppKey ctxKey = "client_app"

var stdin = bufio.NewReader(os.Stdin)

// App достает приложение из контекста команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return app, nil
}

// StdinIsTerminal сообщает, можно ли читать пароль без эха
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadPassword читает пароль без эха, а если ввод не терминал — строку
func ReadPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !StdinIsTerminal() {
		return readLine()
	}

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}

// ReadLine читает строку с обычным эхом
func ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readLine() (string, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
