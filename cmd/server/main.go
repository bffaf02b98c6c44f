package main

import (
	"flag"
	"log"

	"github.com/benbeisheim/capturechess-backend/internal/config"
	"github.com/benbeisheim/capturechess-backend/internal/controller"
	"github.com/benbeisheim/capturechess-backend/internal/repl"
	"github.com/benbeisheim/capturechess-backend/internal/service"
)

func main() {
	addr := flag.String("addr", config.Getenv("CHESS_ADDR", ":3000"), "HTTP listen address")
	sshAddr := flag.String("ssh-addr", config.Getenv("CHESS_SSH_ADDR", ""), "SSH listen address for the text interface (empty disables)")
	hostKey := flag.String("ssh-host-key", config.Getenv("CHESS_SSH_HOST_KEY", ""), "SSH host key file (empty generates one)")
	depth := flag.Int("depth", config.GetenvInt("CHESS_ENGINE_DEPTH", 2), "engine search depth in plies")
	noise := flag.Float64("noise", config.GetenvFloat("CHESS_ENGINE_NOISE", 0.1), "engine leaf noise amplitude")
	origins := flag.String("origins", config.Getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	accessLog := flag.Bool("access-log", config.GetenvBool("CHESS_ACCESS_LOG", true), "log every HTTP request")
	flag.Parse()

	if *depth < 1 {
		log.Fatalf("depth must be at least 1, got %d", *depth)
	}

	if *sshAddr != "" {
		sshServer, err := repl.NewSSHServer(*sshAddr, *hostKey, repl.Config{Depth: *depth, Noise: *noise})
		if err != nil {
			log.Fatalf("ssh init: %v", err)
		}
		go func() {
			log.Printf("SSH listening on %s", *sshAddr)
			if err := sshServer.ListenAndServe(); err != nil {
				log.Fatalf("ssh: %v", err)
			}
		}()
	}

	gameManager := service.NewGameManager(service.EngineConfig{Depth: *depth, Noise: *noise})
	gameService := service.NewGameService(gameManager)
	app := controller.NewApp(gameService, controller.AppConfig{
		AllowedOrigins: *origins,
		AccessLog:      *accessLog,
	})

	log.Printf("HTTP listening on %s", *addr)
	log.Fatal(app.Listen(*addr))
}
