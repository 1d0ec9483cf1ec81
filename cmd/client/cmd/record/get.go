// cmd/client/cmd/record/get.go
package record

import (
	"context"
	"fmt"
	"strconv"

	"passvault/internal/app/client"

	"github.com/spf13/cobra"
)

var showPassword bool

var GetCmd = &cobra.Command{
	Use:   "get [N | текст]",
	Short: "Просмотреть запись",
	Long: `Просмотр записи по номеру из списка list или по единственному
совпадению поиска. Пароль скрыт, если не указан флаг --show-password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			entries, err := app.Entries(ctx)
			if err != nil {
				return fmt.Errorf("ошибка получения записей: %w", err)
			}

			entry, err := pickEntry(entries, args[0])
			if err != nil {
				return err
			}
			printEntryHuman(entry, showPassword)
			return nil
		})
	},
}

func pickEntry(entries []client.Entry, arg string) (client.Entry, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(entries) {
			return client.Entry{}, fmt.Errorf("нет записи с номером %d", n)
		}
		return entries[n-1], nil
	}

	found := client.Search(entries, arg)
	switch len(found) {
	case 0:
		return client.Entry{}, fmt.Errorf("записи по запросу %q не найдены", arg)
	case 1:
		return found[0], nil
	default:
		return client.Entry{}, fmt.Errorf("найдено записей: %d, уточните запрос или укажите номер", len(found))
	}
}

// fieldValue подставляет пометку вместо поля, которое не удалось расшифровать
func fieldValue(e client.Entry, field, v string) string {
	for _, f := range e.Unavailable {
		if f == field {
			return unavailableMark
		}
	}
	return v
}

func printEntryHuman(e client.Entry, showPassword bool) {
	password := fieldValue(e, client.FieldPassword, "********")
	if showPassword {
		password = fieldValue(e, client.FieldPassword, e.Password)
	}

	fmt.Printf("Название:    %s\n", fieldValue(e, client.FieldTitle, e.Title))
	fmt.Printf("Логин:       %s\n", fieldValue(e, client.FieldUsername, e.Username))
	fmt.Printf("Пароль:      %s\n", password)
	fmt.Printf("URL:         %s\n", fieldValue(e, client.FieldURL, e.URL))
	fmt.Printf("Заметки:     %s\n", fieldValue(e, client.FieldNotes, e.Notes))
	fmt.Printf("Создано:     %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Обновлено:   %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}

func init() {
	GetCmd.Flags().BoolVarP(&showPassword, "show-password", "p", false, "показать пароль")
}
