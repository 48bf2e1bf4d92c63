package main

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	_ "erdgen/internal/db/extractors"

	"erdgen/internal/analyze"
	"erdgen/internal/db"
	"erdgen/internal/logger"
	"erdgen/internal/model"
	"erdgen/internal/render"
	"erdgen/internal/resolve"
	"erdgen/internal/source"
	"erdgen/pkg/config"
)

var (
	activeMu      sync.RWMutex
	activeDiagram *model.ERDiagram
	defaultPort   = 8080
)

// setActive stores the diagram served by /api/diagram.
func setActive(d model.ERDiagram) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeDiagram = &d
}

// getActive returns the active diagram, if any parse happened yet.
func getActive() *model.ERDiagram {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeDiagram
}

func main() {
	// .env is optional; real env vars win over file entries either way.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env")
	}

	// flags
	cfgPath := flag.String("config", filepath.Join(".", "configs", "example.yaml"), "path to config YAML")
	input := flag.String("input", "", "input file to convert (yaml/json declaration facts or Go source)")
	frontend := flag.String("frontend", "", "frontend override (yaml,json,go); default picked from file extension")
	format := flag.String("format", "", "output format (mermaid,d2,drawio)")
	out := flag.String("out", "", "output file (defaults to stdout)")
	title := flag.String("title", "", "diagram title override")
	serve := flag.Bool("serve", false, "run the HTTP server even when -input is set")
	port := flag.Int("port", 0, "http port (overrides config, default"+fmt.Sprintf(" %d)", defaultPort))
	driverFlag := flag.String("driver", "", "db driver override (postgres,mysql,sqlite,sqlserver,godror)")
	dsnFlag := flag.String("dsn", "", "dsn override")
	timeout := flag.Int("timeout", 10, "db connect timeout seconds")
	webdir := flag.String("web", filepath.Join(".", "web"), "web ui directory")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()
	logger.SetDebug(*verbose)

	// attempt to load config file (optional)
	var appCfg config.AppConfig
	if cfgPath != nil {
		logger.Debug("config file %s", *cfgPath)
		if c, err := config.LoadFile(*cfgPath); err == nil {
			appCfg = c
		} else {
			logger.Error("error reading config file: %v", err)
		}
	}

	// allow CLI overrides
	if *driverFlag != "" && *dsnFlag != "" {
		appCfg.Database.Type = *driverFlag
		appCfg.Database.DSN = *dsnFlag
	}
	if *format != "" {
		appCfg.Generator.Format = *format
	}
	if *title != "" {
		appCfg.Generator.Title = *title
	}

	if !*serve && (*input != "" || appCfg.Database.Type != "") {
		if err := runOnce(*input, *frontend, *out, *timeout, appCfg); err != nil {
			logger.Fatal("%v", err)
		}
		return
	}

	*port = cmp.Or(*port, envInt("ERDGEN_PORT"), appCfg.Server.Port, defaultPort)
	runServer(*port, *webdir, *timeout, appCfg)
}

// runOnce converts one input to one output string and exits.
func runOnce(input, frontendName, out string, timeout int, appCfg config.AppConfig) error {
	var (
		diagram model.ERDiagram
		err     error
	)
	if input != "" {
		diagram, err = buildFromFile(input, frontendName, appCfg.Generator.Title)
	} else {
		diagram, err = buildFromDB(appCfg.Database, timeout, appCfg.Generator.Title)
	}
	if err != nil {
		return err
	}
	logger.Info("parsed %d entities, %d relationships", len(diagram.Entities), len(diagram.Relationships))

	text, err := renderDiagram(diagram, appCfg.Generator)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("wrote %s", out)
	return nil
}

// buildFromFile parses one input file into a diagram snapshot.
func buildFromFile(path, frontendName, title string) (model.ERDiagram, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return model.ERDiagram{}, err
	}
	var f source.Frontend
	if frontendName != "" {
		f, err = source.New(frontendName)
	} else {
		f, err = source.ForFile(path)
	}
	if err != nil {
		return model.ERDiagram{}, err
	}
	decls, err := f.Parse(filepath.Base(path), src)
	if err != nil {
		return model.ERDiagram{}, err
	}
	entities := resolve.Entities(decls)
	meta := model.Metadata{Title: title, SourceFiles: []string{filepath.Base(path)}}
	return analyze.BuildDiagram(entities, meta), nil
}

// buildFromDB extracts a live schema and converts it to a diagram snapshot.
func buildFromDB(dbCfg config.DBConfig, timeout int, title string) (model.ERDiagram, error) {
	driver, dsn, err := config.BuildDriverAndDSN(dbCfg)
	if err != nil {
		return model.ERDiagram{}, err
	}
	schema, err := db.ConnectAndExtract(driver, dsn, timeout)
	if err != nil {
		return model.ERDiagram{}, err
	}
	entities := source.EntitiesFromSchema(schema)
	meta := model.Metadata{Title: title, SourceFiles: []string{driver}}
	return analyze.BuildDiagram(entities, meta), nil
}

// renderDiagram renders with the configured format and options.
func renderDiagram(d model.ERDiagram, gen config.GeneratorConfig) (string, error) {
	format := gen.Format
	if format == "" {
		format = "mermaid"
	}
	g, err := render.New(format)
	if err != nil {
		return "", err
	}
	return g.Generate(d, optionsFrom(gen)), nil
}

func optionsFrom(gen config.GeneratorConfig) render.Options {
	opts := render.DefaultOptions()
	opts.Title = gen.Title
	opts.ShowProperties = !gen.HideProperties
	if gen.Direction != "" {
		opts.Direction = gen.Direction
	}
	if gen.Shape != "" {
		opts.Shape = gen.Shape
	}
	if gen.EntitiesPerRow > 0 {
		opts.EntitiesPerRow = gen.EntitiesPerRow
	}
	if gen.HSpacing > 0 {
		opts.HSpacing = gen.HSpacing
	}
	if gen.VSpacing > 0 {
		opts.VSpacing = gen.VSpacing
	}
	return opts
}

func envInt(key string) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return 0
}

type countsResponse struct {
	OK            bool            `json:"ok"`
	Entities      int             `json:"entities"`
	Relationships int             `json:"relationships"`
	Diagram       model.ERDiagram `json:"diagram"`
}

func runServer(port int, webdir string, timeout int, appCfg config.AppConfig) {
	// static web
	fs := http.FileServer(http.Dir(webdir))
	http.Handle("/", fs)

	// parse endpoint: user posts source text to build the active diagram
	http.HandleFunc("/api/parse", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Frontend string `json:"frontend"`
			Filename string `json:"filename"`
			Source   string `json:"source"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		var (
			f   source.Frontend
			err error
		)
		if req.Frontend != "" {
			f, err = source.New(req.Frontend)
		} else {
			f, err = source.ForFile(req.Filename)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		decls, err := f.Parse(cmp.Or(req.Filename, "request"), []byte(req.Source))
		if err != nil {
			http.Error(w, "parse failed: "+err.Error(), http.StatusBadRequest)
			return
		}
		entities := resolve.Entities(decls)
		diagram := analyze.BuildDiagram(entities, model.Metadata{
			Title:       appCfg.Generator.Title,
			SourceFiles: []string{cmp.Or(req.Filename, "request")},
		})
		setActive(diagram)
		writeCounts(w, diagram)
	})

	// connect endpoint: user posts DB params to build the active diagram
	http.HandleFunc("/api/connect", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var dbReq config.DBConfig
		if err := json.NewDecoder(r.Body).Decode(&dbReq); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		diagram, err := buildFromDB(dbReq, timeout, appCfg.Generator.Title)
		if err != nil {
			http.Error(w, "connection failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		setActive(diagram)
		writeCounts(w, diagram)
	})

	// diagram endpoint renders the active diagram in the requested format
	http.HandleFunc("/api/diagram", func(w http.ResponseWriter, r *http.Request) {
		d := getActive()
		if d == nil {
			http.Error(w, "no active diagram; POST /api/parse or /api/connect first", http.StatusBadRequest)
			return
		}
		gen := appCfg.Generator
		if f := r.URL.Query().Get("format"); f != "" {
			gen.Format = f
		}
		text, err := renderDiagram(*d, gen)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			OK            bool   `json:"ok"`
			Format        string `json:"format"`
			Output        string `json:"output"`
			Entities      int    `json:"entities"`
			Relationships int    `json:"relationships"`
		}{true, render.NormalizeFormat(cmp.Or(gen.Format, "mermaid")), text, len(d.Entities), len(d.Relationships)})
	})

	// formats endpoint lists registered generators, frontends and dialects
	http.HandleFunc("/api/formats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Formats   []string `json:"formats"`
			Frontends []string `json:"frontends"`
			Dialects  []string `json:"dialects"`
		}{render.Formats(), source.RegisteredFrontends(), db.RegisteredDialects()})
	})

	// HTTP server
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info("listening on %s, serving %s", addr, webdir)
	logger.Info("registered formats: %v", render.Formats())
	logger.Info("registered dialects: %v", db.RegisteredDialects())
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("%v", err)
	}
}

func writeCounts(w http.ResponseWriter, d model.ERDiagram) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(countsResponse{
		OK:            true,
		Entities:      len(d.Entities),
		Relationships: len(d.Relationships),
		Diagram:       d,
	})
}
