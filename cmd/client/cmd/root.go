// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"passvault/cmd/client/cmd/types"
	"passvault/internal/app/client"
	"passvault/internal/app/client/config"
	"passvault/internal/utils/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "passvault",
	Short: "passvault — клиент хранилища паролей",
	Long: `passvault — клиент хранилища паролей со сквозным шифрованием.

Все поля записей шифруются на клиенте ключом, выведенным из пароля входа.
Ключ живет только в памяти: после выхода из оболочки нужно войти заново.
Без аргументов запускается интерактивная оболочка.`,
	PersistentPreRunE: setupApp,
	RunE:              runShell,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	log := logger.WithLevel(cfg.Env, level)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml, json, toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервера passvault")
}
