package record

import (
	"context"
	"fmt"

	"passvault/cmd/client/cmd/types"
	"passvault/internal/app/client"

	"github.com/spf13/cobra"
)

var email string

// RecordCmd - родительская команда для разовых операций с записями.
// Каждая команда входит, выполняет действие и сразу выходит.
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Разовые операции с записями",
	Long: `Просмотр и создание записей без интерактивной оболочки.

Ключ шифрования не сохраняется между запусками, поэтому каждая команда
запрашивает пароль, входит и по завершении выходит.`,
}

func init() {
	RecordCmd.PersistentFlags().StringVarP(&email, "email", "e", "", "email аккаунта")
}

// withSession выполняет fn между входом и выходом
func withSession(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) (err error) {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}

	if email == "" {
		if email, err = types.ReadLine("Email: "); err != nil {
			return err
		}
	}
	password, err := types.ReadPassword("Пароль: ")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := app.Login(ctx, email, password); err != nil {
		return fmt.Errorf("ошибка аутентификации: %w", err)
	}
	defer func() {
		if lerr := app.Logout(ctx); lerr != nil && err == nil {
			err = lerr
		}
	}()

	return fn(ctx, app)
}
