package admin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/auth"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/database"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/repository"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/cli/bootstrap"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
	email      string
	name       string
	password   string
	force      bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative account tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newSeedCommand())

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin account",
		Long: `Create an ADMIN account. Refuses when an admin already exists unless --force is given.
The password is read from the terminal when --password is omitted.`,
		RunE: runSeed,
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted when empty)")
	cmd.Flags().BoolVar(&force, "force", false, "Create another admin even if one exists")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	if password == "" {
		p, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		password = p
	}

	cfg, log, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	userRepo := repository.NewUserRepository(database.Get(), log)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	uc := usecases.NewSeedAdminUseCase(userRepo, hasher, log)

	result, err := uc.Execute(cmd.Context(), usecases.SeedAdminCommand{
		Email:    email,
		Name:     name,
		Password: password,
		Force:    force,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Admin %s created (id %d)\n", result.Email, result.ID)
	return nil
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("password is required")
	}
	return line, nil
}
