// cmd/client/cmd/generate.go
package cmd

import (
	"fmt"

	"passvault/internal/app/client/generator"

	"github.com/spf13/cobra"
)

var genOpts = generator.DefaultOptions()

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Сгенерировать пароль",
	Long: fmt.Sprintf(`Генерация случайного пароля длиной от %d до %d символов.
Для выбора символов используется crypto/rand.`, generator.MinLength, generator.MaxLength),
	// генератору не нужны ни сервер, ни конфигурация
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		password, err := generator.Generate(genOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&genOpts.Length, "length", "l", generator.DefaultLength, "длина пароля")
	generateCmd.Flags().BoolVar(&genOpts.IncludeNumbers, "numbers", true, "включать цифры")
	generateCmd.Flags().BoolVar(&genOpts.IncludeSymbols, "symbols", true, "включать спецсимволы")
	generateCmd.Flags().BoolVar(&genOpts.ExcludeLookAlikes, "no-lookalikes", true, "исключить похожие символы (l, o, I, O, 0, 1)")
}
