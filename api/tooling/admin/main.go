// Command admin groups the operational chores: schema migration, seed data,
// bootstrapping the first company owner and purging expired sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"

	"github.com/jcpaschoal/manfix/business/domain/companybus"
	"github.com/jcpaschoal/manfix/business/domain/companybus/stores/companydb"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus/stores/sessiondb"
	"github.com/jcpaschoal/manfix/business/domain/userbus"
	"github.com/jcpaschoal/manfix/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/manfix/business/sdk/migrate"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/password"
	"github.com/jcpaschoal/manfix/business/types/role"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"manfix"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, create-owner, purge-sessions")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "seed":
		return runSeed(ctx, db)
	case "create-owner":
		return runCreateOwner(ctx, log, db, os.Args[2:])
	case "purge-sessions":
		return runPurgeSessions(ctx, log, db)
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runSeed(ctx context.Context, db *sqlx.DB) error {
	if err := migrate.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	fmt.Println("seed data complete")
	return nil
}

func runCreateOwner(ctx context.Context, log *logger.Logger, db *sqlx.DB, args []string) error {
	cmd := flag.NewFlagSet("create-owner", flag.ExitOnError)
	companyStr := cmd.String("company", "", "Company name (Required)")
	nameStr := cmd.String("name", "", "Owner full name (Required)")
	emailStr := cmd.String("email", "", "Owner email (Required)")
	passStr := cmd.String("password", "", "Owner password (Required)")
	cmd.Parse(args)

	if *companyStr == "" || *nameStr == "" || *emailStr == "" || *passStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	companyName, err := name.Parse(*companyStr)
	if err != nil {
		return fmt.Errorf("invalid company name: %w", err)
	}

	ownerName, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	pass, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	companyBus := companybus.NewCore(companydb.NewStore(log, db))
	userBus := userbus.NewCore(userdb.NewStore(log, db))

	cmp, err := companyBus.GetOrCreate(ctx, companybus.NewCompany{Name: companyName})
	if err != nil {
		return fmt.Errorf("get or create company: %w", err)
	}

	usr, err := userBus.Create(ctx, userbus.NewUser{
		CompanyID: cmp.ID,
		Name:      ownerName,
		Email:     *addr,
		Role:      role.CompanyOwner,
		Password:  pass,
	})
	if err != nil {
		return fmt.Errorf("create owner: %w", err)
	}

	fmt.Printf("\nSUCCESS: Owner created!\nCompany: %s (%s)\nUser: %s\nEmail: %s\n", cmp.Name, cmp.ID, usr.ID, usr.Email.Address)
	return nil
}

func runPurgeSessions(ctx context.Context, log *logger.Logger, db *sqlx.DB) error {
	sessionBus := sessionbus.NewCore(sessiondb.NewStore(log, db))

	n, err := sessionBus.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}

	fmt.Printf("purged %d expired sessions\n", n)
	return nil
}

// go run api/tooling/admin/main.go migrate
// go run api/tooling/admin/main.go seed
// go run api/tooling/admin/main.go create-owner -company "Oficina Central" -name "Dona da Oficina" -email "owner@example.com" -password "gophers123"
// go run api/tooling/admin/main.go purge-sessions
