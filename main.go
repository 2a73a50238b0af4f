package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mkrogh/project-calculator/domain"
	"github.com/mkrogh/project-calculator/handler"
	_pg "github.com/mkrogh/project-calculator/repository/pg"
	"github.com/mkrogh/project-calculator/service"
	"github.com/mkrogh/project-calculator/util"
	"github.com/mkrogh/project-calculator/util/middleware"
)

func initDatabase() *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(fmt.Sprintf(
		"postgres://%s:%s@%s:5432/%s",
		os.Getenv("DATABASE_USER"),
		os.Getenv("DATABASE_PASSWORD"),
		os.Getenv("DATABASE_HOST"),
		os.Getenv("DATABASE_NAME"),
	))

	if err != nil {
		log.Fatalln("Unable to parse database config. error:", err)
	}

	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.Logger = &util.DatabaseLogger{}
	poolConfig.ConnConfig.LogLevel = pgx.LogLevelDebug

	ctx, cancel := util.GetContextWithTimeout(context.Background())
	defer cancel()
	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalln("Unable to create connection pool. error:", err)
	}

	queries := []string{
		_pg.CreateProjectTable(),
		_pg.CreateSubProjectTable(),
		_pg.CreateTaskTable(),
		_pg.CreateSubTaskTable(),
	}

	for _, q := range queries {
		ctx, cancel = util.GetContextWithTimeout(context.Background())
		defer cancel()
		if _, err := pool.Exec(ctx, q); err != nil {
			log.Fatalln(err)
		}
	}

	return pool
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	pool := initDatabase()
	defer pool.Close()

	nodeRepo := _pg.NewNodePostgresRepository(pool)
	nodeService := service.NewNodeService(nodeRepo)

	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	handler.NewNodeHandler(r, nodeService, domain.LevelProject)
	handler.NewNodeHandler(r, nodeService, domain.LevelSubProject)
	handler.NewNodeHandler(r, nodeService, domain.LevelTask)
	handler.NewNodeHandler(r, nodeService, domain.LevelSubTask)

	http.Handle("/", r)
	log.Fatal(http.ListenAndServe(os.Getenv("API_LISTEN_ADDR"), r))
}
