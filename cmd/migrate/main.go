package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"gopharma/config"
	"gopharma/internal/pkg/database"
)

// Cria o esquema de leitura num banco local (desenvolvimento e testes).
// Em produção o esquema pertence ao backend principal.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema: %v", err)
	}

	cfg := config.LoadConfig()
	flag.Parse()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o DB: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	if err := database.RunMigrations(db, cfg.DatabaseDriver, command, arguments[1:]...); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("goose %s concluído\n", command)
}
