// Command useradmin creates an account directly in the database, bypassing
// the public registration endpoint. Its main use is seeding the first admin.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/yogabook/internal/server/auth"
	"github.com/dmitrijs2005/yogabook/internal/server/config"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/repomanager"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "useradmin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	dsn := flag.String("d", defaults.DatabaseDSN, "database DSN")
	email := flag.String("email", "", "account email (required)")
	firstName := flag.String("first", "", "first name (required)")
	lastName := flag.String("last", "", "last name (required)")
	admin := flag.Bool("admin", false, "grant the admin flag")
	flag.Parse()

	if *email == "" || *firstName == "" || *lastName == "" {
		flag.Usage()
		return errors.New("email, first and last are required")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	hash, err := auth.NewBcryptHasher(defaults.BcryptCost).Hash(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  hash,
		Admin:     *admin,
	}
	if _, err := rm.Users(db).Create(ctx, user); err != nil {
		return err
	}

	fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
	return nil
}

// promptPassword reads the password twice without echo and requires both
// entries to match.
func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}
