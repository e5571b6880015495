package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"x-letters/backend/internal/adapter/in/ws"
	"x-letters/backend/internal/camera"
	"x-letters/backend/internal/core/domain/service"
	"x-letters/backend/internal/effects"
	"x-letters/backend/internal/game"
	"x-letters/backend/internal/motion"
	"x-letters/backend/internal/telemetry"
)

func main() {
	addr := flag.String("addr", ":8080", "адрес HTTP сервера")
	tps := flag.Int("tps", 30, "частота тиков симуляции")
	staticDir := flag.String("static", "./web", "директория со статикой фронтенда")
	moveSpeed := flag.Float64("speed", motion.DefaultMoveSpeed, "скорость полета букв")
	enableTelemetry := flag.Bool("telemetry", false, "печатать телеметрию движения букв")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	// Собираем сцену: контроллер движения, камера, конфетти, сервис
	controller := motion.NewController(*moveSpeed, logger)
	cam := camera.New()
	emitter := effects.NewEmitter(logger)
	saver := service.NewSaverService(controller, cam, emitter, logger)

	adapter := ws.NewWSAdapter(saver, logger)

	// Цикл симуляции: движение, анимации, конфетти, рассылка
	ticker := game.NewTicker(*tps, logger)
	ticker.RegisterSystem(game.NewMotionSystem(saver))
	ticker.RegisterSystem(game.NewAnimationSystem(saver))
	ticker.RegisterSystem(game.NewConfettiSystem(saver))
	ticker.RegisterSystem(game.NewBroadcastSystem(adapter, 2))

	if *enableTelemetry {
		telemetry.Global.SetEnabled(true)
		ticker.RegisterSystem(game.NewTelemetrySystem(telemetry.Global))
	}

	if err := ticker.Start(); err != nil {
		logger.Fatalf("Не удалось запустить цикл симуляции: %v", err)
	}
	defer ticker.Stop()

	http.HandleFunc("/ws", adapter.HandleWS)

	if _, err := os.Stat(*staticDir); os.IsNotExist(err) {
		logger.Printf("Warning: Directory %s does not exist", *staticDir)
	}

	fs := http.FileServer(http.Dir(*staticDir))
	http.Handle("/", http.StripPrefix("/", fs))

	logger.Printf("Serving static files from: %s", *staticDir)
	logger.Printf("Server starting on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatal(err)
	}
}
