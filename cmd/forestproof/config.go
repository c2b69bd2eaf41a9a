package main

import (
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcutil"
	flags "github.com/jessevdk/go-flags"

	"github.com/larkmoor/forestproof/logger"
	"github.com/larkmoor/forestproof/node"
	"github.com/larkmoor/forestproof/rootstore"
)

var defaultDataDir = btcutil.AppDataDir("forestproof", false)

type config struct {
	DataDir string `short:"b" long:"datadir" description:"Directory holding the root store and logs"`

	Listen string `long:"listen" description:"Interface and port the proof server listens on" default:"0.0.0.0:8338"`

	Connect string `short:"c" long:"connect" description:"Proof server to submit requests to" default:"127.0.0.1:8338"`

	Proxy string `long:"proxy" description:"Connect through a SOCKS5 proxy (host:port)"`

	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`

	NoLogFile bool `long:"nologfile" description:"Don't keep a rotating log file in the datadir"`
}

const usageTrailer = `
Commands:
  commit <height> <leaf file>  build the forest over the 32 byte leaf
                               hashes in the file and commit its roots
                               at the given height
  serve                        answer proof submissions against the
                               best committed root set
  submit <request file>        send a serialized proof request to a
                               server and print the verdict
`

// loadConfig parses the flags, finishes the derived paths and wires
// up logging.  Returns the leftover args, which name the command.
func loadConfig(args []string) (*config, []string, error) {
	cfg := config{DataDir: defaultDataDir}
	parser := flags.NewParser(&cfg, flags.Default)
	remaining, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.NoLogFile {
		err = logger.InitLogRotator(filepath.Join(cfg.DataDir, "forestproof.log"))
		if err != nil {
			return nil, nil, err
		}
	}
	if !logger.SetLogLevels(cfg.DebugLevel) {
		return nil, nil, fmt.Errorf("invalid debuglevel %s", cfg.DebugLevel)
	}
	rootstore.UseLogger(logger.StoreLog)
	node.UseLogger(logger.NodeLog)

	return &cfg, remaining, nil
}

// storePath is where the root store database lives under the datadir.
func (cfg *config) storePath() string {
	return filepath.Join(cfg.DataDir, "rootstore")
}
