// cmd/client/cmd/record/create.go
package record

import (
	"context"
	"fmt"

	"passvault/cmd/client/cmd/types"
	"passvault/internal/app/client"
	"passvault/internal/app/client/generator"

	"github.com/spf13/cobra"
)

var (
	recordTitle string
	username    string
	url         string
	notes       string
	generate    bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать новую запись",
	Long: `Создание записи. Недостающие поля запрашиваются интерактивно,
пароль записи вводится без эха или генерируется флагом --generate.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		draft, err := readDraft()
		if err != nil {
			return err
		}

		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			created, err := app.Add(ctx, draft)
			if err != nil {
				return fmt.Errorf("ошибка создания записи: %w", err)
			}
			fmt.Printf("✅ Запись %q создана\n", created.Title)
			return nil
		})
	},
}

func readDraft() (client.Draft, error) {
	d := client.Draft{Title: recordTitle, Username: username, URL: url, Notes: notes}
	var err error

	if d.Title == "" {
		if d.Title, err = types.ReadLine("Название: "); err != nil {
			return d, err
		}
	}
	if d.Username == "" {
		if d.Username, err = types.ReadLine("Логин: "); err != nil {
			return d, err
		}
	}

	if generate {
		if d.Password, err = generator.Generate(generator.DefaultOptions()); err != nil {
			return d, err
		}
		fmt.Println("Пароль сгенерирован")
	} else if d.Password, err = types.ReadPassword("Пароль записи: "); err != nil {
		return d, err
	}

	if d.Title == "" || d.Username == "" || d.Password == "" {
		return d, fmt.Errorf("название, логин и пароль обязательны")
	}
	return d, nil
}

func init() {
	CreateCmd.Flags().StringVarP(&recordTitle, "title", "t", "", "название")
	CreateCmd.Flags().StringVarP(&username, "username", "u", "", "логин")
	CreateCmd.Flags().StringVar(&url, "url", "", "адрес сайта")
	CreateCmd.Flags().StringVar(&notes, "notes", "", "заметки")
	CreateCmd.Flags().BoolVarP(&generate, "generate", "g", false, "сгенерировать пароль")
}
