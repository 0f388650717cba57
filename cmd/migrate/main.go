// cmd/migrate/main.go
//
// Schema migration runner over golang-migrate.
//
// Usage
// -----
//
//	migrate up          apply everything pending
//	migrate down 1      roll back one step
//	migrate version     print the current schema version
//
// The DSN comes from the same config layers as the API, so the runner
// works against whatever environment the service is pointed at.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/ppghub/ppghub/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	src := "file://" + filepath.Join(cfg.Paths.Root, "migrations")
	m, err := migrate.New(src, "mysql://"+cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil {
				log.Fatalf("bad step count %q", os.Args[2])
			}
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil {
			log.Fatalf("version: %v", verr)
		}
		fmt.Printf("version %d (dirty=%v)\n", v, dirty)
		return
	default:
		log.Fatalf("unknown command %q (want up, down, or version)", cmd)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("migrate %s: %v", cmd, err)
	}
	log.Printf("migrate %s: done", cmd)
}
