package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для операций с аккаунтом
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление аккаунтом",
	Long:  `Регистрация аккаунта на сервере. Вход выполняется в оболочке или разовыми командами record.`,
}
