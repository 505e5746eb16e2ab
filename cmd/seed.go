package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/finvoice/dashboard/internal/config"
	"github.com/finvoice/dashboard/internal/db"
	"github.com/finvoice/dashboard/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers, invoices, and revenue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQL(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo data...")

		if err := seedCustomers(sqlDB); err != nil {
			return err
		}
		if err := seedInvoices(sqlDB); err != nil {
			return err
		}
		if err := seedRevenue(sqlDB); err != nil {
			return err
		}
		if err := seedUser(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedCustomers inserts deterministic demo customers (idempotent upsert on id).
func seedCustomers(dbx *sqlx.DB) error {
	customers := []model.Customer{
		{ID: "cus_delba", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{ID: "cus_lee", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{ID: "cus_hector", Name: "Hector Simpson", Email: "hector@simpson.com", ImageURL: "/customers/hector-simpson.png"},
		{ID: "cus_steven", Name: "Steven Tey", Email: "steven@tey.com", ImageURL: "/customers/steven-tey.png"},
		{ID: "cus_amy", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{ID: "cus_balazs", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}

	const q = `
INSERT INTO customers (id, name, email, image_url, created_at)
VALUES (?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE
    name      = VALUES(name),
    email     = VALUES(email),
    image_url = VALUES(image_url)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range customers {
		if _, err := tx.Exec(q, c.ID, c.Name, c.Email, c.ImageURL); err != nil {
			return fmt.Errorf("insert customer %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}

// seedInvoices inserts demo invoices with a spread of dates, statuses, and
// amounts (cents). Idempotent on id.
func seedInvoices(dbx *sqlx.DB) error {
	type row struct {
		id, customer string
		amount       int64
		status       model.InvoiceStatus
		date         string
	}
	invoices := []row{
		{"inv_0001", "cus_delba", 15795, model.StatusPending, "2024-12-06"},
		{"inv_0002", "cus_lee", 20348, model.StatusPending, "2024-11-14"},
		{"inv_0003", "cus_amy", 306620, model.StatusPaid, "2024-10-29"},
		{"inv_0004", "cus_hector", 44800, model.StatusPaid, "2024-09-10"},
		{"inv_0005", "cus_steven", 34577, model.StatusPending, "2024-08-05"},
		{"inv_0006", "cus_balazs", 54246, model.StatusPending, "2024-07-16"},
		{"inv_0007", "cus_delba", 66666, model.StatusPending, "2024-06-27"},
		{"inv_0008", "cus_lee", 32545, model.StatusPaid, "2024-06-09"},
		{"inv_0009", "cus_amy", 1250, model.StatusPaid, "2024-06-17"},
		{"inv_0010", "cus_hector", 8546, model.StatusPaid, "2024-06-07"},
		{"inv_0011", "cus_steven", 50000, model.StatusPaid, "2024-08-19"},
		{"inv_0012", "cus_balazs", 8945, model.StatusPaid, "2024-06-03"},
		{"inv_0013", "cus_delba", 100000, model.StatusPending, "2024-06-05"},
	}

	const q = `
INSERT INTO invoices (id, customer_id, amount, status, date, created_at)
VALUES (?, ?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE
    customer_id = VALUES(customer_id),
    amount      = VALUES(amount),
    status      = VALUES(status),
    date        = VALUES(date)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, inv := range invoices {
		if _, err := tx.Exec(q, inv.id, inv.customer, inv.amount, inv.status.String(), inv.date); err != nil {
			return fmt.Errorf("insert invoice %q: %w", inv.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit invoices: %w", err)
	}
	return nil
}

// seedRevenue fills the precomputed monthly aggregate table.
func seedRevenue(dbx *sqlx.DB) error {
	months := []model.Revenue{
		{Month: "Jan", Revenue: 2000}, {Month: "Feb", Revenue: 1800},
		{Month: "Mar", Revenue: 2200}, {Month: "Apr", Revenue: 2500},
		{Month: "May", Revenue: 2300}, {Month: "Jun", Revenue: 3200},
		{Month: "Jul", Revenue: 3500}, {Month: "Aug", Revenue: 3700},
		{Month: "Sep", Revenue: 2500}, {Month: "Oct", Revenue: 2800},
		{Month: "Nov", Revenue: 3000}, {Month: "Dec", Revenue: 4800},
	}

	const q = `
INSERT INTO revenue (month, revenue)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE revenue = VALUES(revenue)
`
	for _, m := range months {
		if _, err := dbx.Exec(q, m.Month, m.Revenue); err != nil {
			return fmt.Errorf("insert revenue %q: %w", m.Month, err)
		}
	}
	return nil
}

// seedUser creates the demo login. The password is hashed here so no hash
// material lives in the repo.
func seedUser(dbx *sqlx.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	const q = `
INSERT INTO users (id, name, email, password)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE name = VALUES(name), password = VALUES(password)
`
	if _, err := dbx.Exec(q, "usr_admin", "User", "user@nextmail.com", string(hash)); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
