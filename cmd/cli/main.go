package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"bundlegraph/internal/app"
	"bundlegraph/internal/cli"
	"bundlegraph/internal/config"
	"bundlegraph/internal/hclconf"
	"bundlegraph/internal/tomlconf"
)

// main is the entrypoint for the bundlegraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader, err := loaderForPath(appConfig.ManifestPath)
	if err != nil {
		return err
	}
	bundleApp := app.NewApp(outW, appConfig, loader)

	return bundleApp.Run(context.Background())
}

// loaderForPath selects the manifest loader from the file extension.
func loaderForPath(path string) (config.Loader, error) {
	switch filepath.Ext(path) {
	case ".hcl":
		return hclconf.NewLoader(), nil
	case ".toml":
		return tomlconf.NewLoader(), nil
	default:
		return nil, &cli.ExitError{
			Code:    2,
			Message: fmt.Sprintf("unsupported manifest format %q: want .hcl or .toml", filepath.Ext(path)),
		}
	}
}
