// cmd/client/cmd/shell.go
package cmd

import (
	"os"

	"passvault/cmd/client/cmd/types"
	"passvault/internal/app/client/shell"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Интерактивная оболочка",
	Long: `Интерактивная работа с хранилищем: вход, просмотр, добавление,
изменение и удаление записей, копирование паролей в буфер обмена.

Ключ шифрования хранится в памяти, пока открыта оболочка.`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}

	var opts []shell.Option
	if types.StdinIsTerminal() {
		opts = append(opts, shell.WithPasswordReader(types.ReadPassword))
	}

	return shell.New(app, os.Stdin, os.Stdout, opts...).Run(cmd.Context())
}
