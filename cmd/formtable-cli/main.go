package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/formspec"
	"github.com/goliatone/go-formtable/pkg/openapiform"
	"github.com/goliatone/go-formtable/pkg/platform"
	"github.com/goliatone/go-formtable/pkg/prompt"
	"github.com/goliatone/go-formtable/pkg/render"
)

func main() {
	specPath := flag.String("spec", "", "YAML form definition")
	openapiPath := flag.String("openapi", "", "OpenAPI document to derive inputs from")
	operation := flag.String("operation", "", "operation ID used with -openapi")
	configPath := flag.String("config", "", "site configuration (YAML)")
	output := flag.String("output", "", "output file (stdout if empty)")
	header := flag.String("header", "", "header rendered above the first table")
	formID := flag.String("id", "", "form identity; overrides the definition")
	action := flag.String("action", "", "URL the form posts to")
	fill := flag.Bool("fill", false, "prompt for values and render the validated submission")
	verbose := flag.Bool("v", false, "log token activity")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s -spec form.yaml | -openapi api.yaml -operation id [flags]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *specPath == "" && *openapiPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	site, err := platform.NewSite(cfg, platform.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to configure site: %v", err)
	}

	var page *http.Request
	if *action != "" {
		page, err = http.NewRequest(http.MethodGet, *action, nil)
		if err != nil {
			log.Fatalf("Invalid action %q: %v", *action, err)
		}
	}
	services := site.ForRequest(page)
	f := services.NewForm()

	var renderOpts []render.Option
	id := *formID

	if *specPath != "" {
		doc, err := formspec.Load(*specPath)
		if err != nil {
			log.Fatalf("Failed to load form definition: %v", err)
		}
		if id == "" {
			id = doc.ID
		}
		doc.ID = ""
		if err := doc.Apply(f); err != nil {
			log.Fatalf("Failed to build form: %v", err)
		}
		renderOpts = append(renderOpts, doc.RenderOptions()...)
	}

	if *openapiPath != "" {
		if *operation == "" {
			log.Fatalf("-operation is required with -openapi")
		}
		data, err := os.ReadFile(*openapiPath)
		if err != nil {
			log.Fatalf("Failed to read OpenAPI document: %v", err)
		}
		inputs, err := openapiform.Inputs(ctx, data, *operation, openapiform.WithRegistry(f.Registry()))
		if err != nil {
			log.Fatalf("Failed to derive inputs: %v", err)
		}
		f.Add(inputs...)
		if id == "" {
			id = *operation
		}
	}

	if id == "" && f.AutomaticToken() && isTerminal(os.Stdin) {
		id, err = prompt.SurveyDriver{}.Input(ctx, prompt.InputConfig{
			Message: "Form id",
			Help:    "Names the form and keys its anti-forgery token.",
		})
		if err != nil {
			log.Fatalf("Failed to read form id: %v", err)
		}
	}
	if id != "" {
		if err := f.SetID(id); err != nil {
			log.Fatalf("Failed to set form id: %v", err)
		}
	}

	if *header != "" {
		renderOpts = append(renderOpts, render.WithHeader(*header))
	}

	if *fill {
		if err := submit(ctx, f, *action); err != nil {
			log.Fatalf("Submission failed: %v", err)
		}
	}

	html := f.Open() + "\n" + f.RenderTable(renderOpts...) + f.Close() + "\n"
	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Print(html)
}

func loadConfig(path string) (platform.Config, error) {
	if path != "" {
		return platform.LoadConfig(path)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return platform.Config{}, err
	}
	return platform.Config{Secret: hex.EncodeToString(secret)}, nil
}

// submit collects values interactively and posts them back to f so the
// rendered table shows the accepted values and any validation errors.
func submit(ctx context.Context, f *form.Form, action string) error {
	values, err := prompt.Collect(ctx, prompt.SurveyDriver{}, f.Inputs())
	if err != nil {
		return err
	}
	if action == "" {
		action = "/"
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", form.EncodingURLEncoded)
	if !f.IsSubmission(r) {
		return errors.New("no form values submitted")
	}
	return f.AcceptSubmission(r)
}

func isTerminal(file *os.File) bool {
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
