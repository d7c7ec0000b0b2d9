package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jcpaschoal/whereabouts/app/sdk/auth"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
	"github.com/jcpaschoal/whereabouts/business/domain/officebus/stores/officedb"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus"
	"github.com/jcpaschoal/whereabouts/business/domain/presencebus/stores/presencedb"
	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
	"github.com/jcpaschoal/whereabouts/business/sdk/detach"
	"github.com/jcpaschoal/whereabouts/business/sdk/sqldb"
	"github.com/jcpaschoal/whereabouts/business/types/name"
	"github.com/jcpaschoal/whereabouts/business/types/password"
	"github.com/jcpaschoal/whereabouts/business/types/role"
	"github.com/jcpaschoal/whereabouts/foundation/keystore"
	"github.com/jcpaschoal/whereabouts/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
)

// Config replicates necessary DB and auth config structure
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"whereabouts"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"whereabouts"`
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

	// Init DB
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

	// Init Domains. The tool runs out of band, so the buses get a private
	// in-memory cache instead of the shared one.
	cache := cachestore.NewMemory(time.Minute)
	defer cache.Close()

	detacher := detach.New(log, 5*time.Second)
	defer detacher.Wait()

	officeBus := officebus.NewCore(officedb.NewStore(log, db))
	presenceBus := presencebus.NewCore(presencebus.Config{
		Log:      log,
		Storer:   presencedb.NewStore(log, db),
		Cache:    cache,
		Detacher: detacher,
	})

	// CLI Parsing
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, create-office, add-member, gen-token")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(db)
	case "create-office":
		return runCreateOffice(ctx, officeBus, os.Args[2:])
	case "add-member":
		return runAddMember(ctx, presenceBus, os.Args[2:])
	case "gen-token":
		return runGenToken(log, officeBus, cfg, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(db *sqlx.DB) error {
	if err := sqldb.Migrate(db); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}

	fmt.Println("\nSUCCESS: Migrations complete")
	return nil
}

func runCreateOffice(ctx context.Context, ob *officebus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-office", flag.ExitOnError)
	idStr := cmd.String("id", "", "Office ID, used in the login form (Required)")
	nameStr := cmd.String("name", "", "Office display name (Required)")
	passStr := cmd.String("password", "", "Member password (Required)")
	adminStr := cmd.String("admin-password", "", "Admin password (Required)")
	public := cmd.Bool("public", false, "List the office in the public directory")
	cmd.Parse(args)

	if *idStr == "" || *nameStr == "" || *passStr == "" || *adminStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	// Parsing Types using Domain Types
	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	ap, err := password.Parse(*adminStr)
	if err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}

	newOffice := officebus.NewOffice{
		ID:            *idStr,
		Name:          n,
		Password:      p,
		AdminPassword: ap,
		IsPublic:      *public,
	}

	ofc, err := ob.Create(ctx, newOffice)
	if err != nil {
		return fmt.Errorf("create office failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Office created!\nID: %s\nName: %s\nPublic: %v\n", ofc.ID, ofc.Name, ofc.IsPublic)
	return nil
}

func runAddMember(ctx context.Context, pb *presencebus.Core, args []string) error {
	cmd := flag.NewFlagSet("add-member", flag.ExitOnError)
	officeStr := cmd.String("office", "", "Office ID (Required)")
	idStr := cmd.String("id", "", "Member ID (Required)")
	nameStr := cmd.String("name", "", "Member display name (Required)")
	groupStr := cmd.String("group", "", "Board group the member sits under")
	orderInt := cmd.Int("order", 0, "Display order inside the group")
	hoursStr := cmd.String("work-hours", "", "Work hours label")
	extStr := cmd.String("ext", "", "Phone extension")
	cmd.Parse(args)

	if *officeStr == "" || *idStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	mem := presencebus.Member{
		ID:        *idStr,
		Name:      *nameStr,
		Group:     *groupStr,
		Order:     *orderInt,
		WorkHours: *hoursStr,
		Ext:       *extStr,
	}

	if err := pb.Create(ctx, *officeStr, mem); err != nil {
		return fmt.Errorf("add member failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Member %s added to office %s\n", mem.ID, *officeStr)
	return nil
}

func runGenToken(log *logger.Logger, ob *officebus.Core, cfg Config, args []string) error {
	cmd := flag.NewFlagSet("gen-token", flag.ExitOnError)
	officeStr := cmd.String("office", "admin", "Subject office ID for the token")
	roleStr := cmd.String("role", "superAdmin", "Token role (user, officeAdmin, superAdmin)")
	cmd.Parse(args)

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	a := auth.New(auth.Config{
		Log:       log,
		OfficeBus: ob,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
	})

	token, err := a.GenerateToken(cfg.Auth.ActiveKID, *officeStr, *officeStr, r)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Printf("\nSUCCESS: Token generated\n%s\n", token)
	return nil
}

//go run api/tooling/admin/main.go migrate

//go run api/tooling/admin/main.go create-office -id "tokyo-3f" -name "営業部 3F" -password "member123" -admin-password "admin123" -public

//go run api/tooling/admin/main.go add-member -office "tokyo-3f" -id "m1" -name "田中" -group "営業一課" -order 1

//go run api/tooling/admin/main.go gen-token -office "tokyo-3f" -role "superAdmin"
