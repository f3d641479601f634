package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"expensetracker/internal/auth"
	"expensetracker/internal/config"
	"expensetracker/internal/db"
	"expensetracker/internal/logging"
	"expensetracker/internal/model"
	"expensetracker/internal/repository"
	"expensetracker/internal/service"
)

const (
	demoName      = "Demo User"
	demoEmail     = "demo@example.com"
	demoPhone     = "5550100100"
	demoWorkspace = "Personal"
)

type seedExpense struct {
	day         int
	amount      float64
	description string
	category    string
}

var demoExpenses = []seedExpense{
	{day: 1, amount: 1200, description: "Rent share", category: "Housing"},
	{day: 2, amount: 42.5, description: "Groceries", category: "Food"},
	{day: 3, amount: 18, description: "Metro card top-up", category: "Transport"},
	{day: 5, amount: 9.99, description: "Music subscription", category: "Entertainment"},
	{day: 6, amount: 27.3, description: "Dinner with friends", category: "Food"},
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo-password"
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	ctx := context.Background()
	summary, err := seed(ctx, gormDB, password, time.Now().UTC())
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	logger.Info("seed completed",
		zap.String("email", demoEmail),
		zap.Bool("user_created", summary.userCreated),
		zap.Bool("workspace_created", summary.workspaceCreated),
		zap.Int("expenses_created", summary.expensesCreated),
	)
}

type seedSummary struct {
	userCreated      bool
	workspaceCreated bool
	expensesCreated  int
}

// seed creates the demo user, workspace and expenses. Running it again leaves
// existing rows alone.
func seed(ctx context.Context, gormDB *gorm.DB, password string, now time.Time) (seedSummary, error) {
	var summary seedSummary

	userRepo := repository.NewUserRepository(gormDB)
	workspaceRepo := repository.NewWorkspaceRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = createDemoUser(ctx, userRepo, password)
		if err != nil {
			return summary, err
		}
		summary.userCreated = true
	case err != nil:
		return summary, fmt.Errorf("find demo user: %w", err)
	}

	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo)
	workspaces, _, err := workspaceService.List(ctx, user.ID)
	if err != nil {
		return summary, fmt.Errorf("list workspaces: %w", err)
	}
	for _, w := range workspaces {
		if w.Title == demoWorkspace {
			return summary, nil
		}
	}

	workspace, err := workspaceService.Create(ctx, user.ID, demoWorkspace, "Everyday spending")
	if err != nil {
		return summary, fmt.Errorf("create workspace: %w", err)
	}
	summary.workspaceCreated = true

	expenseService := service.NewExpenseService(expenseRepo, workspaceRepo)
	for _, e := range demoExpenses {
		_, err := expenseService.Create(ctx, user.ID, service.CreateExpenseCommand{
			WorkspaceID: workspace.ID,
			Amount:      e.amount,
			Description: e.description,
			Category:    e.category,
			Date:        model.NewDate(time.Date(now.Year(), now.Month(), e.day, 0, 0, 0, 0, time.UTC)),
		})
		if err != nil {
			return summary, fmt.Errorf("create expense %q: %w", e.description, err)
		}
		summary.expensesCreated++
	}

	return summary, nil
}

func createDemoUser(ctx context.Context, repo repository.UserRepository, password string) (*model.User, error) {
	hashedPassword, err := auth.Hash(password, auth.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashedPhone, err := auth.Hash(demoPhone, auth.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash phone: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: hashedPassword,
		PhoneHash:    hashedPhone,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	if err := repo.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("verify demo user: %w", err)
	}
	user.IsVerified = true
	return user, nil
}
