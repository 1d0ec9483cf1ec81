// cmd/client/cmd/record/list.go
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"passvault/internal/app/client"

	"github.com/spf13/cobra"
)

const unavailableMark = "<недоступно>"

var (
	listFormat string
	searchTerm string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long: `Просмотр списка записей с фильтром по названию и логину.

Пароли в списке не выводятся, для них есть команда get.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(ctx context.Context, app *client.App) error {
			entries, err := app.Entries(ctx)
			if err != nil {
				return fmt.Errorf("ошибка получения списка записей: %w", err)
			}
			entries = client.Search(entries, searchTerm)

			switch listFormat {
			case "json":
				return printEntriesJSON(entries)
			case "table":
				return printEntriesTable(os.Stdout, entries)
			default:
				return printEntriesSimple(os.Stdout, entries)
			}
		})
	},
}

type listItem struct {
	N           int      `json:"n"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Username    string   `json:"username"`
	URL         string   `json:"url,omitempty"`
	Unavailable []string `json:"unavailable,omitempty"`
}

func printEntriesSimple(out io.Writer, entries []client.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, "Записи не найдены")
		return nil
	}

	fmt.Fprintf(out, "Найдено записей: %d\n\n", len(entries))
	for i, e := range entries {
		status := "✓"
		if e.Degraded() {
			status = "✗"
		}
		fmt.Fprintf(out, "%d. [%s] %s (%s)\n", i+1, status,
			fieldValue(e, client.FieldTitle, e.Title),
			fieldValue(e, client.FieldUsername, e.Username),
		)
	}
	return nil
}

func printEntriesTable(out io.Writer, entries []client.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, "Записи не найдены")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "N\tНазвание\tЛогин\tURL\tОбновлено\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			i+1,
			truncate(fieldValue(e, client.FieldTitle, e.Title), 30),
			truncate(fieldValue(e, client.FieldUsername, e.Username), 30),
			truncate(fieldValue(e, client.FieldURL, e.URL), 40),
			e.UpdatedAt.Local().Format("2006-01-02"),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nВсего записей: %d\n", len(entries))
	return nil
}

func printEntriesJSON(entries []client.Entry) error {
	items := make([]listItem, 0, len(entries))
	for i, e := range entries {
		items = append(items, listItem{
			N:           i + 1,
			ID:          e.ID,
			Title:       e.Title,
			Username:    e.Username,
			URL:         e.URL,
			Unavailable: e.Unavailable,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return strings.TrimSpace(string(r[:length-3])) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода: simple, table, json")
	ListCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "фильтр по названию и логину")
}
