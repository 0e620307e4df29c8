// Command cli is an operator console for the ledger: register users, open
// accounts, move funds and inspect balances without going through HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/openbank/ledger/infra"
	"github.com/openbank/ledger/infra/events"
	infrarepo "github.com/openbank/ledger/infra/repository"
	"github.com/openbank/ledger/pkg/config"
	"github.com/openbank/ledger/pkg/logging"
	"github.com/openbank/ledger/pkg/repository"
	accountsvc "github.com/openbank/ledger/pkg/service/account"
	ledgersvc "github.com/openbank/ledger/pkg/service/ledger"
	usersvc "github.com/openbank/ledger/pkg/service/user"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail("failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		fail("failed to connect to database: %v", err)
	}
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		register(ctx, uow, logger)
	case "create-account":
		createAccount(ctx, uow, logger)
	case "transfer-in":
		transferIn(ctx, uow, logger)
	case "transfer-out":
		transferOut(ctx, uow, logger)
	case "balance":
		balance(ctx, uow, logger)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>                          (prompts for password)")
	fmt.Println("  create-account <owner_id> <name>")
	fmt.Println("  transfer-in <account_number> <amount> [description]")
	fmt.Println("  transfer-out <owner_id> <account_id> <amount> [description]")
	fmt.Println("  balance <owner_id> <account_id>")
}

func register(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) {
	if len(os.Args) < 4 {
		fail("usage: register <username> <email>")
	}
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fail("failed to read password: %v", err)
	}
	u, err := usersvc.NewService(uow, logger).CreateUser(ctx, os.Args[2], os.Args[3], string(password))
	if err != nil {
		fail("failed to register user: %v", err)
	}
	color.Green("registered user %s (%s)", u.Username, u.ID)
}

func createAccount(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) {
	if len(os.Args) < 4 {
		fail("usage: create-account <owner_id> <name>")
	}
	ownerID := mustUUID(os.Args[2])
	a, err := accountsvc.NewService(uow, logger).CreateAccount(ctx, ownerID, os.Args[3])
	if err != nil {
		fail("failed to create account: %v", err)
	}
	color.Green("created account %s", a.ID)
	fmt.Printf("number: %s\n", a.Number)
}

func transferIn(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) {
	if len(os.Args) < 4 {
		fail("usage: transfer-in <account_number> <amount> [description]")
	}
	amount := mustAmount(os.Args[3])
	svc := ledgersvc.NewService(uow, events.NopPublisher{}, logger)
	if err := svc.ApplyIncoming(ctx, os.Args[2], amount, description(4)); err != nil {
		fail("transfer rejected: %v", err)
	}
	color.Green("credited %s to account %s", amount, os.Args[2])
}

func transferOut(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) {
	if len(os.Args) < 5 {
		fail("usage: transfer-out <owner_id> <account_id> <amount> [description]")
	}
	ownerID := mustUUID(os.Args[2])
	accountID := mustUUID(os.Args[3])
	amount := mustAmount(os.Args[4])
	svc := ledgersvc.NewService(uow, events.NopPublisher{}, logger)
	if err := svc.ApplyOutgoing(ctx, ownerID, accountID, amount, description(5)); err != nil {
		fail("transfer rejected: %v", err)
	}
	color.Green("debited %s from account %s", amount, accountID)
}

func balance(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) {
	if len(os.Args) < 4 {
		fail("usage: balance <owner_id> <account_id>")
	}
	ownerID := mustUUID(os.Args[2])
	accountID := mustUUID(os.Args[3])
	svc := ledgersvc.NewService(uow, events.NopPublisher{}, logger)
	bal, err := svc.GetBalance(ctx, ownerID, accountID)
	if err != nil {
		fail("failed to fetch balance: %v", err)
	}
	fmt.Printf("account %s balance: %s\n", accountID, bal.StringFixed(2))
}

func description(arg int) string {
	if len(os.Args) > arg {
		return os.Args[arg]
	}
	return ""
}

func mustUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		fail("invalid id %q: %v", s, err)
	}
	return id
}

func mustAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		fail("invalid amount %q: %v", s, err)
	}
	return d
}

func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
