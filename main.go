package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/veandco/go-sdl2/sdl"

	"onroad-options/pkg/carstate"
	"onroad-options/pkg/config"
	"onroad-options/pkg/params"
	"onroad-options/pkg/paramsync"
	"onroad-options/pkg/performance"
	"onroad-options/screens/root"
)

const (
	targetFPS      = 60
	fallbackWidth  = 1920
	fallbackHeight = 1080
	statsInterval  = 30 * time.Second
	backupTimeout  = 15 * time.Second
)

func main() {
	// SDL2 calls must stay on the main thread
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	cfg := config.Load()

	store, err := params.Open(cfg.ParamsBackend, cfg.ParamsLocation())
	if err != nil {
		log.Fatalf("Failed to open params: %v", err)
	}
	defer store.Close()

	if seeded, err := params.SeedDefaults(store); err != nil {
		log.Printf("Warning: Failed to seed default params: %v", err)
	} else if len(seeded) > 0 {
		log.Printf("Seeded default params: %v", seeded)
	}

	deviceID, err := params.EnsureDeviceID(store)
	if err != nil {
		log.Printf("Warning: No device id: %v", err)
	}

	watcher := params.NewWatcher(store, cfg.ParamsWatchInterval)
	cars := carstate.NewFileSource(cfg.CarParamsPath, time.Second)
	cp := cars.CarParams()
	log.Printf("Car: %q openpilotLongitudinal=%t experimentalAvailable=%t",
		cp.CarName, cp.OpenpilotLongitudinalControl, cp.ExperimentalLongitudinalAvailable)

	if err := initializeSDL2(); err != nil {
		log.Fatalf("Failed to initialize SDL2: %v", err)
	}
	defer func() {
		log.Println("Shutting down SDL2...")
		sdl.Quit()
	}()

	screenWidth, screenHeight := getDisplayDimensions()
	log.Printf("Starting %s | Resolution: %dx%d | Params: %s %s",
		cfg.WindowTitle, screenWidth, screenHeight, cfg.ParamsBackend, cfg.ParamsLocation())

	window, err := createWindow(cfg.WindowTitle, screenWidth, screenHeight)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := createRenderer(window)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	screen := root.NewRootScreen(window, renderer, root.Deps{
		Store:     store,
		Watcher:   watcher,
		Cars:      cars,
		Closeable: cfg.Closeable,
	})
	defer screen.Close()

	runLoop(screen)

	if cfg.BackupEnabled() && deviceID != "" {
		backupParams(cfg, store, deviceID)
	}

	log.Printf("%s shutting down...", cfg.WindowTitle)
}

// backupParams uploads the current options to S3 before exit
func backupParams(cfg config.Config, store *params.Params, deviceID string) {
	client, err := paramsync.NewClientFromEnv()
	if err != nil {
		log.Printf("Warning: Skipping params backup: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := paramsync.New(client, cfg.BackupBucket, cfg.BackupPrefix).Backup(ctx, store, deviceID); err != nil {
		log.Printf("Warning: Params backup failed: %v", err)
	}
}

// driverHints are applied before trying each video driver.
var driverHints = map[string]map[string]string{
	"cocoa": {
		"SDL_VIDEO_COCOA_ALLOW_SCREENSAVER": "1",
		sdl.HINT_RENDER_DRIVER:              "opengl",
	},
	"kmsdrm": {
		"SDL_KMSDRM_REQUIRE_DRM_MASTER": "1",
		"SDL_VIDEO_KMSDRM_DEVINDEX":     "0",
		sdl.HINT_RENDER_DRIVER:          "opengles2",
	},
	"fbcon": {
		"SDL_FBDEV":            "/dev/fb0",
		sdl.HINT_RENDER_DRIVER: "software",
	},
	"wayland": {
		"SDL_VIDEO_WAYLAND_WMCLASS": "onroad-options",
		sdl.HINT_RENDER_DRIVER:      "software",
	},
	"x11": {
		"SDL_VIDEO_X11_NET_WM_BYPASS_COMPOSITOR": "0",
		sdl.HINT_RENDER_DRIVER:                   "software",
	},
	"software": {
		"SDL_FRAMEBUFFER_ACCELERATION": "0",
		sdl.HINT_RENDER_DRIVER:         "software",
	},
	"dummy": {
		sdl.HINT_RENDER_DRIVER: "software",
	},
}

// videoDrivers lists the drivers to try, honoring SDL_VIDEODRIVER first
func videoDrivers() []string {
	var drivers []string
	if env := os.Getenv("SDL_VIDEODRIVER"); env != "" {
		log.Printf("Using environment SDL_VIDEODRIVER: %s", env)
		drivers = append(drivers, env)
	}
	if runtime.GOOS == "darwin" {
		return append(drivers, "cocoa", "software", "dummy")
	}
	return append(drivers, "kmsdrm", "fbcon", "wayland", "x11", "software", "dummy")
}

// initializeSDL2 initializes SDL2 with fallback video drivers
func initializeSDL2() error {
	for _, driver := range videoDrivers() {
		log.Printf("Attempting SDL2 initialization with %s driver", driver)
		if err := trySDLInitialization(driver); err != nil {
			log.Printf("SDL2 initialization failed with %s driver: %v", driver, err)
			continue
		}
		log.Printf("SDL2 successfully initialized with %s driver", driver)
		return nil
	}
	return fmt.Errorf("all SDL2 video drivers failed")
}

func trySDLInitialization(driver string) error {
	sdl.Quit()

	sdl.SetHint(sdl.HINT_VIDEODRIVER, driver)
	for name, value := range driverHints[driver] {
		sdl.SetHint(name, value)
	}
	sdl.SetHint(sdl.HINT_RENDER_BATCHING, "1")
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("SDL_INIT_VIDEO failed: %v", err)
	}

	driverName, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		return fmt.Errorf("failed to get video driver: %v", err)
	}
	log.Printf("Video driver initialized: %s", driverName)
	return nil
}

// getDisplayDimensions returns the screen dimensions or fallback values
func getDisplayDimensions() (int32, int32) {
	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		log.Printf("Warning: Failed to get display mode, using fallback: %v", err)
		return fallbackWidth, fallbackHeight
	}
	return displayMode.W, displayMode.H
}

// createWindow creates a fullscreen SDL2 window
func createWindow(title string, width, height int32) (*sdl.Window, error) {
	return sdl.CreateWindow(title, 0, 0, width, height, sdl.WINDOW_SHOWN|sdl.WINDOW_FULLSCREEN)
}

// createRenderer prefers an accelerated renderer and falls back to software
func createRenderer(window *sdl.Window) (*sdl.Renderer, error) {
	currentDriver, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		currentDriver = "unknown"
	}

	var renderer *sdl.Renderer
	if currentDriver == "kmsdrm" || currentDriver == "cocoa" {
		var flags uint32 = sdl.RENDERER_ACCELERATED
		// VSync on kmsdrm triggers async flip errors on VC4
		if currentDriver != "kmsdrm" {
			flags |= sdl.RENDERER_PRESENTVSYNC
		}
		renderer, err = sdl.CreateRenderer(window, -1, flags)
		if err != nil {
			log.Printf("Hardware acceleration failed, trying software: %v", err)
		}
	}

	if renderer == nil {
		log.Printf("Using software renderer for %s driver", currentDriver)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, err
		}
	}

	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return renderer, nil
}

// runLoop executes the main SDL2 loop
func runLoop(screen *root.RootScreen) {
	frameTime := time.Second / targetFPS
	monitor := performance.NewFrameMonitor(targetFPS*2, frameTime)
	lastStats := time.Now()

	for {
		frameStart := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				return
			case *sdl.WindowEvent:
				screen.Invalidate()
			}
		}

		if err := screen.Update(); err != nil {
			log.Printf("Update error: %v", err)
			return
		}
		updateDone := time.Now()

		if err := screen.Draw(); err != nil {
			log.Printf("Draw error: %v", err)
			return
		}
		drawDone := time.Now()

		monitor.RecordFrame(updateDone.Sub(frameStart), drawDone.Sub(updateDone))
		if time.Since(lastStats) >= statsInterval {
			performance.LogStats(monitor)
			lastStats = time.Now()
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
