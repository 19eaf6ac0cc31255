// Command pagekit runs a keyword suite against a live browser using the
// generic page objects and the project configuration. Suites that need
// project-specific page objects embed the library instead; see
// examples/custom-pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/pagekit/pkg/api"
	"github.com/entrhq/pagekit/pkg/browser"
	"github.com/entrhq/pagekit/pkg/capability"
	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/logging"
	"github.com/entrhq/pagekit/pkg/pageobject"
	"github.com/entrhq/pagekit/pkg/runner"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", config.DefaultFileName, "path to the project file")
	suitePath := flag.String("suite", "", "path to the suite file to run (required)")
	headed := flag.Bool("headed", false, "run the browser with a visible window")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagekit %s\n", version)
		return
	}
	if *suitePath == "" {
		fmt.Fprintln(os.Stderr, "error: -suite is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *suitePath, *headed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, suitePath string, headed bool) error {
	log, err := logging.New("pagekit")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer log.Close()

	project, err := config.Load(configPath)
	if err != nil {
		return err
	}
	suite, err := runner.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupts
		log.Warnf("interrupted, shutting down")
		cancel()
	}()

	driver, err := browser.Launch(browser.Options{
		Headless: project.Browser.Headless && !headed,
		Timeout:  project.Browser.TimeoutMs,
	})
	if err != nil {
		return err
	}
	defer driver.Close()

	host := runner.New(log)
	lib := pageobject.New(capability.Set{
		Host:    host,
		API:     api.New(project.APIBase(), project.API.Version, project.API.Token),
		Browser: driver,
		BaseURL: project.BaseURL,
	},
		pageobject.WithNamespace(project.Namespace),
		pageobject.WithLogger(log),
	)
	host.Bind(lib)

	result, err := host.Run(ctx, suite)
	if err != nil {
		return err
	}

	for i, step := range result.Steps {
		status := "PASS"
		if step.Err != nil {
			status = fmt.Sprintf("FAIL (%v)", step.Err)
		}
		fmt.Printf("%3d  %-30s %s\n", i+1, step.Step.Keyword, status)
	}
	if !result.OK() {
		return fmt.Errorf("suite %q: %d step(s) failed", result.Suite, result.Failed)
	}
	fmt.Printf("suite %q passed (%d steps)\n", result.Suite, len(result.Steps))
	return nil
}
