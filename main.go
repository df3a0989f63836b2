package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"fintalk/config"
	"fintalk/inbox"
	"fintalk/logger"
	"fintalk/narration"
	"fintalk/pipeline"
	"fintalk/report"
	"fintalk/roundtable"
	"fintalk/server"
	"fintalk/summarizer"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	envPath := flag.String("env", ".env", "path to .env file")
	topic := flag.String("topic", "", "discussion topic")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	watch := flag.Bool("watch", false, "watch the inbox dir for topic files")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	if err := config.LoadEnvFile(*envPath); err != nil {
		fail(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Web server mode
	if *serve {
		runner, err := buildRunner(cfg, log, nil)
		if err != nil {
			fail(err)
		}
		srv, err := server.New(runner, cfg.OutputDir, log)
		if err != nil {
			fail(err)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		httpSrv := &http.Server{Addr: listen, Handler: srv.Routes()}
		go func() {
			<-ctx.Done()
			_ = httpSrv.Shutdown(context.Background())
		}()
		log.Info().Str("addr", listen).Msg("starting web server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail(err)
		}
		return
	}

	// Inbox mode
	if *watch {
		runner, err := buildRunner(cfg, log, nil)
		if err != nil {
			fail(err)
		}
		w, err := inbox.New(cfg.Inbox.Dir, inbox.TopicHandler(runner, cfg.OutputDir), log)
		if err != nil {
			fail(err)
		}
		defer w.Stop()
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fail(err)
		}
		return
	}

	if *topic == "" {
		*topic = promptTopic()
	}
	runner, err := buildRunner(cfg, log, func(t roundtable.Turn) {
		fmt.Println(renderTurn(t))
	})
	if err != nil {
		fail(err)
	}

	fmt.Println("🧩 FinTalk simulation started...")
	out, err := runner.Run(ctx, *topic)
	if err != nil {
		fail(err)
	}
	fmt.Print(renderOutcome(out))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func promptTopic() string {
	fmt.Print("What's discussion topic ?\n>")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func buildRunner(cfg *config.Config, log zerolog.Logger, onTurn func(roundtable.Turn)) (*pipeline.Runner, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	seq, err := roundtable.NewSequencer(llm)
	if err != nil {
		return nil, err
	}
	seq.OnTurn = onTurn

	sum, err := summarizer.New(summarizer.Settings{
		Provider: cfg.Summary.Provider,
		Model:    cfg.Summary.Model,
		APIKey:   cfg.Summary.APIKey,
		BaseURL:  cfg.Summary.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	discussion, err := roundtable.NewDiscussion(seq, sum)
	if err != nil {
		return nil, err
	}

	var reportOpts []report.Option
	if cfg.Report.FontFile != "" {
		reportOpts = append(reportOpts, report.WithFontFile(cfg.Report.FontFile))
	}
	exporter, err := report.NewExporter(cfg.OutputDir, cfg.Report.Formats, reportOpts...)
	if err != nil {
		return nil, err
	}

	var narrator *narration.Generator
	if !cfg.Narration.Disabled {
		synth, err := narration.NewOpenAISpeech(narration.Settings{
			Model:   cfg.Narration.Model,
			APIKey:  cfg.Narration.APIKey,
			BaseURL: cfg.Narration.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		narrator, err = narration.NewGenerator(synth, cfg.Narration.Voices, cfg.Narration.Concurrency, log)
		if err != nil {
			return nil, err
		}
	}

	return pipeline.New(discussion, exporter, narrator, log)
}

func buildLLM(cfg *config.Config) (roundtable.LLMClient, error) {
	switch cfg.LLM.Provider {
	case "local":
		return roundtable.NewLocalLLMFromConfig(&roundtable.LLMSettings{
			Provider:    cfg.LLM.Provider,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
		})
	case "mock":
		// 离线调试用，不访问任何模型服务。
		return roundtable.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
