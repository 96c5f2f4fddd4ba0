package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/staticserve/staticserve"
	"github.com/staticserve/staticserve/audit"
)

var (
	configFilenameFlag string
	hostFlag           string
	portFlag           int
	rootFlag           string
	indexFlag          string
	logFileFlag        string
	dbFileFlag         string
	providerFlag       string
	readTimeoutFlag    time.Duration
	verbosityTraceFlag bool
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.StringVar(&hostFlag, "host", "", "Host to listen on (overrides config, default 127.0.0.1)")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config, default 8080)")
	flag.StringVar(&rootFlag, "root", "", "Directory to serve files from (default working directory)")
	flag.StringVar(&indexFlag, "index", "", "Document served for the / target (default index.html)")
	flag.StringVar(&logFileFlag, "log", "", "Audit log location for the file provider (default log.txt)")
	flag.StringVar(&dbFileFlag, "db", "", "Audit database location for the sqlite provider (default ./audit.db)")
	flag.StringVar(&providerFlag, "provider", "", "Audit log provider to use: file, sqlite or memory (default file)")
	flag.DurationVar(&readTimeoutFlag, "read-timeout", 0, "Time to wait for a request on a new connection, 0 to wait forever")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
}

func main() {
	flag.Parse()

	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	var config Config

	if configFilenameFlag != "" {
		var err error
		config, err = getConfig(configFilenameFlag)
		if err != nil {
			panic(err)
		}
	}

	// flags override the config file, defaults fill the rest
	config = mergeConfig(Config{
		Host:            hostFlag,
		Port:            portFlag,
		Root:            rootFlag,
		DefaultDocument: indexFlag,
		LogFile:         logFileFlag,
		DBFile:          dbFileFlag,
		Provider:        providerFlag,
	}, config)

	// use configured provider, the file sink truncates its log on open
	var sink audit.Sink
	switch config.Provider {
	case "file":
		fileSink, err := audit.NewFileSink(config.LogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open audit log")
		}
		sink = fileSink
	case "sqlite":
		sink = audit.NewSQLiteSink(config.DBFile)
	case "memory":
		sink = audit.NewMemSink()
	default:
		log.Fatal().Msgf("Unsupported audit provider: %s", config.Provider)
	}

	server := staticserve.New(staticserve.Config{
		Addr:            fmt.Sprintf("%s:%d", config.Host, config.Port),
		Root:            config.Root,
		DefaultDocument: config.DefaultDocument,
		ServerID:        config.ServerID,
		Sink:            sink,
		MediaTypes:      config.MediaTypes,
		ReadTimeout:     readTimeoutFlag,
	})

	// an interrupt stops the accept loop; in-flight connections finish
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Info().Msg("Shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	if err := server.Run(); err != nil {
		panic(err)
	}

	if err := sink.Close(); err != nil {
		log.Error().Err(err).Msg("Could not close audit log")
	}
}
