// Package shell — интерактивная оболочка клиента хранилища.
//
// Ключ шифрования живет, пока работает оболочка: после выхода из нее
// нужно войти заново, даже если cookie сессии еще действителен.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"passvault/internal/app/client"
	"passvault/internal/app/client/generator"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
)

const DefaultClipboardTTL = 15 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	msgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
)

// Vault — операции контроллера, доступные из оболочки
type Vault interface {
	Unlocked() bool
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Entries(ctx context.Context) ([]client.Entry, error)
	Add(ctx context.Context, d client.Draft) (client.Entry, error)
	Update(ctx context.Context, id string, p client.Patch) (client.Entry, error)
	Delete(ctx context.Context, id string) error
}

// PasswordReader читает пароль без эха
type PasswordReader func(prompt string) (string, error)

type Option func(*Shell)

// WithPasswordReader задает чтение паролей, по умолчанию строка из ввода
func WithPasswordReader(r PasswordReader) Option {
	return func(s *Shell) { s.readPassword = r }
}

// WithClipboard подменяет запись в буфер обмена
func WithClipboard(write func(string) error, ttl time.Duration) Option {
	return func(s *Shell) {
		s.writeClipboard = write
		s.clipboardTTL = ttl
	}
}

type Shell struct {
	vault          Vault
	in             *bufio.Reader
	out            io.Writer
	readPassword   PasswordReader
	writeClipboard func(string) error
	clipboardTTL   time.Duration

	mu         sync.Mutex
	clearTimer *time.Timer
	// последний показанный список, номера в командах ссылаются на него
	listed []client.Entry
}

func New(v Vault, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		vault:          v,
		in:             bufio.NewReader(in),
		out:            out,
		writeClipboard: clipboard.WriteAll,
		clipboardTTL:   DefaultClipboardTTL,
	}
	s.readPassword = s.readLinePassword

	for _, opt := range opts {
		opt(s)
	}
	return s
}

type command struct {
	usage     string
	help      string
	protected bool
	public    bool
	run       func(ctx context.Context, args []string) error
}

func (s *Shell) commands() map[string]command {
	return map[string]command{
		"signup": {usage: "signup <email>", help: "регистрация", public: true, run: s.signup},
		"login":  {usage: "login <email>", help: "вход и разблокировка хранилища", public: true, run: s.login},
		"logout": {usage: "logout", help: "выход и уничтожение ключа", run: s.logout},
		"list":   {usage: "list", help: "список записей", protected: true, run: s.list},
		"search": {usage: "search <текст>", help: "поиск по названию и логину", protected: true, run: s.search},
		"show":   {usage: "show N", help: "показать запись", protected: true, run: s.show},
		"add":    {usage: "add", help: "добавить запись", protected: true, run: s.add},
		"edit":   {usage: "edit N", help: "изменить запись", protected: true, run: s.edit},
		"delete": {usage: "delete N", help: "удалить запись", protected: true, run: s.delete},
		"copy":   {usage: "copy N", help: "скопировать пароль в буфер обмена", protected: true, run: s.copy},
		"gen":    {usage: "gen [длина]", help: "сгенерировать пароль", run: s.generate},
	}
}

var commandOrder = []string{"signup", "login", "logout", "list", "search", "show", "add", "edit", "delete", "copy", "gen"}

// Run читает команды до quit или конца ввода
func (s *Shell) Run(ctx context.Context) error {
	defer s.stopClipboardTimer()

	s.println(titleStyle.Render("passvault") + dimStyle.Render("  help — список команд"))
	cmds := s.commands()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.prompt()
		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				s.println("")
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		name, args := strings.ToLower(parts[0]), parts[1:]
		switch name {
		case "quit", "exit", "q":
			s.println("Выход.")
			return nil
		case "help", "?":
			s.help()
			continue
		}

		cmd, ok := cmds[name]
		if !ok {
			s.fail(fmt.Sprintf("Неизвестная команда %q, help — список команд", name))
			continue
		}
		if cmd.protected && !s.vault.Unlocked() {
			s.fail("Хранилище заблокировано. Выполните login <email>")
			continue
		}
		if cmd.public && s.vault.Unlocked() {
			s.fail("Вы уже вошли. Сначала выполните logout")
			continue
		}

		if err := cmd.run(ctx, args); err != nil {
			s.report(err)
		}
	}
}

func (s *Shell) help() {
	cmds := s.commands()
	s.println(titleStyle.Render("Команды"))
	for _, name := range commandOrder {
		c := cmds[name]
		s.println(fmt.Sprintf("  %-18s %s", c.usage, dimStyle.Render(c.help)))
	}
	s.println(fmt.Sprintf("  %-18s %s", "quit", dimStyle.Render("выход")))
}

func (s *Shell) signup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("signup <email>")
	}
	password, err := s.readPassword("Пароль: ")
	if err != nil {
		return err
	}
	confirm, err := s.readPassword("Повторите пароль: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("пароли не совпадают")
	}

	if err := s.vault.Signup(ctx, args[0], password); err != nil {
		return err
	}
	s.ok("Аккаунт создан. Теперь выполните login " + args[0])
	return nil
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("login <email>")
	}
	password, err := s.readPassword("Пароль: ")
	if err != nil {
		return err
	}

	if err := s.vault.Login(ctx, args[0], password); err != nil {
		return err
	}
	s.ok("Вход выполнен, хранилище разблокировано.")
	return s.list(ctx, nil)
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	s.mu.Lock()
	s.listed = nil
	s.mu.Unlock()

	err := s.vault.Logout(ctx)
	s.ok("Хранилище заблокировано.")
	return err
}

func (s *Shell) list(ctx context.Context, _ []string) error {
	entries, err := s.vault.Entries(ctx)
	if err != nil {
		return err
	}
	s.render(entries)
	return nil
}

func (s *Shell) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage("search <текст>")
	}
	entries, err := s.vault.Entries(ctx)
	if err != nil {
		return err
	}
	s.render(client.Search(entries, strings.Join(args, " ")))
	return nil
}

func (s *Shell) render(entries []client.Entry) {
	s.mu.Lock()
	s.listed = entries
	s.mu.Unlock()

	if len(entries) == 0 {
		s.println(dimStyle.Render("Записей нет."))
		return
	}

	s.println(titleStyle.Render(fmt.Sprintf("Записи (%d)", len(entries))))
	for i, e := range entries {
		line := fmt.Sprintf("%3d) %s  %s", i+1, display(e, client.FieldTitle, e.Title), dimStyle.Render(display(e, client.FieldUsername, e.Username)))
		if e.Degraded() {
			line += " " + errStyle.Render("[!]")
		}
		s.println(line)
	}
}

func (s *Shell) show(_ context.Context, args []string) error {
	e, err := s.pick(args, "show N")
	if err != nil {
		return err
	}

	s.println(titleStyle.Render(display(e, client.FieldTitle, e.Title)))
	for _, f := range []struct {
		label, field, value string
	}{
		{"Логин", client.FieldUsername, e.Username},
		{"Пароль", client.FieldPassword, e.Password},
		{"URL", client.FieldURL, e.URL},
		{"Заметки", client.FieldNotes, e.Notes},
	} {
		s.println(labelStyle.Render(f.label+":") + " " + display(e, f.field, f.value))
	}
	if !e.UpdatedAt.IsZero() {
		s.println(dimStyle.Render("Изменена: " + e.UpdatedAt.Local().Format(time.DateTime)))
	}
	return nil
}

func (s *Shell) add(ctx context.Context, _ []string) error {
	var d client.Draft
	var err error

	if d.Title, err = s.ask("Название: "); err != nil {
		return err
	}
	if d.Username, err = s.ask("Логин: "); err != nil {
		return err
	}
	if d.Password, err = s.readPassword("Пароль (Enter — сгенерировать): "); err != nil {
		return err
	}
	if d.Password == "" {
		if d.Password, err = generator.Generate(generator.DefaultOptions()); err != nil {
			return err
		}
		s.println(dimStyle.Render("Пароль сгенерирован."))
	}
	if d.URL, err = s.ask("URL: "); err != nil {
		return err
	}
	if d.Notes, err = s.ask("Заметки: "); err != nil {
		return err
	}

	if _, err := s.vault.Add(ctx, d); err != nil {
		return err
	}
	s.ok("Запись добавлена.")
	return s.list(ctx, nil)
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	e, err := s.pick(args, "edit N")
	if err != nil {
		return err
	}

	s.println(dimStyle.Render("Enter — оставить как есть, \"-\" — очистить."))

	var p client.Patch
	changed := false
	for _, f := range []struct {
		label  string
		secret bool
		cur    string
		dst    **string
	}{
		{"Название", false, e.Title, &p.Title},
		{"Логин", false, e.Username, &p.Username},
		{"Пароль", true, e.Password, &p.Password},
		{"URL", false, e.URL, &p.URL},
		{"Заметки", false, e.Notes, &p.Notes},
	} {
		var answer string
		if f.secret {
			answer, err = s.readPassword(f.label + ": ")
		} else {
			answer, err = s.ask(fmt.Sprintf("%s [%s]: ", f.label, f.cur))
		}
		if err != nil {
			return err
		}

		switch answer {
		case "":
			continue
		case "-":
			answer = ""
		}
		if answer == f.cur {
			continue
		}
		value := answer
		*f.dst = &value
		changed = true
	}

	if !changed {
		s.println(dimStyle.Render("Нет изменений."))
		return nil
	}

	if _, err := s.vault.Update(ctx, e.ID, p); err != nil {
		return err
	}
	s.ok("Запись обновлена.")
	return s.list(ctx, nil)
}

func (s *Shell) delete(ctx context.Context, args []string) error {
	e, err := s.pick(args, "delete N")
	if err != nil {
		return err
	}

	answer, err := s.ask(fmt.Sprintf("Удалить %q? [y/N]: ", e.Title))
	if err != nil {
		return err
	}
	if a := strings.ToLower(answer); a != "y" && a != "yes" && a != "д" && a != "да" {
		s.println(dimStyle.Render("Отменено."))
		return nil
	}

	if err := s.vault.Delete(ctx, e.ID); err != nil {
		return err
	}
	s.ok("Запись удалена.")
	return s.list(ctx, nil)
}

func (s *Shell) copy(_ context.Context, args []string) error {
	e, err := s.pick(args, "copy N")
	if err != nil {
		return err
	}
	if e.Password == "" {
		return errors.New("пароль записи недоступен")
	}

	if err := s.copyToClipboard(e.Password); err != nil {
		return fmt.Errorf("буфер обмена недоступен: %w", err)
	}
	s.ok(fmt.Sprintf("Пароль скопирован. Буфер будет очищен через %s.", s.clipboardTTL))
	return nil
}

func (s *Shell) generate(_ context.Context, args []string) error {
	opts := generator.DefaultOptions()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage("gen [длина]")
		}
		opts.Length = n
	}

	password, err := generator.Generate(opts)
	if err != nil {
		return err
	}
	s.println(password)
	return nil
}

// copyToClipboard кладет значение в буфер и планирует очистку;
// новое копирование переносит срок очистки
func (s *Shell) copyToClipboard(value string) error {
	if err := s.writeClipboard(value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(s.clipboardTTL, func() {
		_ = s.writeClipboard("")
	})
	return nil
}

// stopClipboardTimer очищает буфер сразу, если очистка еще не произошла
func (s *Shell) stopClipboardTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearTimer != nil && s.clearTimer.Stop() {
		_ = s.writeClipboard("")
	}
	s.clearTimer = nil
}

func (s *Shell) pick(args []string, usage string) (client.Entry, error) {
	if len(args) != 1 {
		return client.Entry{}, errUsage(usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return client.Entry{}, errUsage(usage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.listed) {
		return client.Entry{}, fmt.Errorf("нет записи с номером %d, выполните list", n)
	}
	return s.listed[n-1], nil
}

func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) readLinePassword(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) prompt() {
	if s.vault.Unlocked() {
		fmt.Fprint(s.out, msgStyle.Render("passvault")+"> ")
		return
	}
	fmt.Fprint(s.out, dimStyle.Render("passvault (locked)")+"> ")
}

func (s *Shell) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		s.fail(apiErr.Message)
	case errors.Is(err, client.ErrLocked), errors.Is(err, client.ErrSessionExpired):
		s.fail("Сессия завершена. Выполните login <email>")
	default:
		s.fail(err.Error())
	}
}

func (s *Shell) ok(msg string) {
	s.println(msgStyle.Render(msg))
}

func (s *Shell) fail(msg string) {
	s.println(errStyle.Render(msg))
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func display(e client.Entry, field, value string) string {
	for _, f := range e.Unavailable {
		if f == field {
			return errStyle.Render("<недоступно>")
		}
	}
	return value
}

func errUsage(usage string) error {
	return fmt.Errorf("использование: %s", usage)
}
