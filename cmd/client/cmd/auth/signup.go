// cmd/client/cmd/auth/signup.go
package auth

import (
	"context"
	"fmt"
	"time"

	"passvault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var SignupCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Зарегистрироваться",
	Long: `Регистрация аккаунта на сервере passvault.

Пароль аккаунта одновременно служит источником ключа шифрования:
если его забыть, расшифровать записи будет невозможно.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var email string
		if len(args) == 1 {
			email = args[0]
		} else if email, err = types.ReadLine("Email: "); err != nil {
			return err
		}

		password, err := types.ReadPassword("Пароль: ")
		if err != nil {
			return err
		}
		confirm, err := types.ReadPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Signup(ctx, email, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println("✅ Аккаунт создан. Войдите: passvault shell")
		return nil
	},
}
