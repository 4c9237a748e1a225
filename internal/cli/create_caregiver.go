package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/terraincognita07/dosely/internal/db"
	"github.com/terraincognita07/dosely/internal/services"
)

// RunCreateCaregiverCommand registers a caregiver account from the terminal,
// prompting twice for the password with echo disabled.
func RunCreateCaregiverCommand(dbPath string, email string, firstName string, lastName string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirmation, err := promptPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	auth := services.NewAuthService(repos.Users, repos.Caregivers)
	caregiver, err := auth.RegisterCaregiver(services.RegisterInput{
		Email:     normalizedEmail,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return fmt.Errorf("create caregiver: %w", err)
	}

	fmt.Printf("Caregiver account %d created for %s\n", caregiver.ID, caregiver.Email)
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	value, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(value) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(value), nil
}
