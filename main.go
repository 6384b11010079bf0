// gridpeek is a desktop app for browsing textures on a virtual world grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-retryablehttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mkoiev/gridpeek/internal/app/pcache"
	"github.com/mkoiev/gridpeek/internal/app/session"
	"github.com/mkoiev/gridpeek/internal/app/storage"
	"github.com/mkoiev/gridpeek/internal/app/texture"
	"github.com/mkoiev/gridpeek/internal/app/trans"
	"github.com/mkoiev/gridpeek/internal/app/ui"
	"github.com/mkoiev/gridpeek/internal/app/uiimages"
)

const (
	appID                 = "io.github.mkoiev.gridpeek"
	assetServerURLDefault = "https://assets.osgrid.org"
	cacheCleanUpTimeout   = time.Hour
	httpCacheTimeout      = 24 * time.Hour
)

// defined flags
var (
	levelFlag     logLevelFlag
	assetURLFlag  = flag.String("asset-url", assetServerURLDefault, "Base URL of the asset server")
	debugFlag     = flag.Bool("debug", false, "Show additional debug information")
	godlikeFlag   = flag.Bool("godlike", false, "Enable elevated operator privileges")
	logFileFlag   = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	offlineFlag   = flag.Bool("offline", false, "Serve textures from cache only")
	showDirsFlag  = flag.Bool("show-dirs", false, "Show directories where user data is stored")
	uninstallFlag = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	fyneApp := app.NewWithID(appID)
	ad := newAppDirs(fyneApp)
	if *showDirsFlag {
		fmt.Printf("Database: %s\n", ad.data)
		fmt.Printf("Cache: %s\n", ad.cache)
		fmt.Printf("Logs: %s\n", ad.log)
		fmt.Printf("Settings: %s\n", ad.settings)
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.deleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Println("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		fn, err := ad.initLogFile()
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   fn,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	if *debugFlag {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	dsn, err := ad.initDSN()
	if err != nil {
		log.Fatal(err)
	}
	db, err := storage.InitDB(dsn)
	if err != nil {
		log.Fatalf("Failed to initialize database %s: %s", dsn, err)
	}
	defer db.Close()
	st := storage.New(db)
	pc := pcache.New(st, cacheCleanUpTimeout)
	defer pc.Close()

	rhc := retryablehttp.NewClient()
	rhc.Logger = slog.Default()
	rhc.ResponseLogHook = logResponse
	rhc.HTTPClient.Transport = &httpcache.Transport{
		Cache:               newCacheAdapter(pc, "http-", httpCacheTimeout),
		Transport:           rhc.HTTPClient.Transport,
		MarkCachedResponses: true,
	}
	httpClient := rhc.StandardClient()

	tm := texture.New(pc, httpClient, *assetURLFlag, *offlineFlag)
	defer tm.Close()

	images := uiimages.NewRegistry(tm)
	images.Register("icon_folder", theme.FolderIcon())
	images.Register("icon_broken", theme.BrokenImageIcon())
	images.Register("icon_file", theme.FileImageIcon())

	tr, err := trans.New(os.Getenv("LANG"))
	if err != nil {
		log.Fatal(err)
	}

	agent := session.New(uuid.New(), "local agent")
	agent.SetGodlike(*godlikeFlag)

	u := ui.NewUI(fyneApp)
	u.TextureManager = tm
	u.Images = images
	u.Trans = tr
	u.Agent = agent
	u.Init()
	u.ShowAndRun()
}
