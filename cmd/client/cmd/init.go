// cmd/client/cmd/init.go
package cmd

import (
	"passvault/cmd/client/cmd/auth"
	"passvault/cmd/client/cmd/record"
)

func init() {
	// Добавляем команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.SignupCmd)

	// Добавляем разовые команды работы с записями
	rootCmd.AddCommand(record.RecordCmd)
	record.RecordCmd.AddCommand(record.ListCmd)
	record.RecordCmd.AddCommand(record.GetCmd)
	record.RecordCmd.AddCommand(record.CreateCmd)

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(generateCmd)
}
